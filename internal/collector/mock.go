package collector

import (
	"fmt"
	"time"

	"finover/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Series map[string]*model.PriceSeries
	Err    error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(symbol string) (*model.PriceSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Series == nil {
		return GenerateMockSeries(symbol, 100, 300), nil
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("fetch history %s: %w", symbol, ErrNotFound)
}

// GenerateMockSeries builds a gently oscillating daily series ending
// today, useful for local runs without an API key.
func GenerateMockSeries(symbol string, basePrice float64, days int) *model.PriceSeries {
	points := make([]model.PricePoint, days)
	start := time.Now().UTC().Truncate(24 * time.Hour).AddDate(0, 0, -days)
	for i := 0; i < days; i++ {
		p := basePrice * (1 + float64(i-days/2)*0.001)
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: p}
	}
	s, _ := model.NewPriceSeries(symbol, points)
	return s
}
