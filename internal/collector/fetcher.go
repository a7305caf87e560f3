package collector

import (
	"errors"

	"finover/internal/model"
)

// ErrNotFound signals that the provider has no price history for the
// requested symbol.
var ErrNotFound = errors.New("symbol not found")

// Fetcher defines the interface for retrieving price history.
type Fetcher interface {
	FetchHistory(symbol string) (*model.PriceSeries, error)
	Name() string
}
