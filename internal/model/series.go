package model

import (
	"fmt"
	"time"
)

// PricePoint is a single (date, close) observation.
type PricePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries holds the ordered close-price history for one symbol.
// It is immutable once constructed; derived data (returns, rolling
// statistics) are computed views that never touch the original points.
type PriceSeries struct {
	Symbol string
	points []PricePoint
}

// NewPriceSeries validates and constructs a price series. Dates must be
// strictly increasing and every close must be positive.
func NewPriceSeries(symbol string, points []PricePoint) (*PriceSeries, error) {
	if symbol == "" {
		return nil, fmt.Errorf("price series: empty symbol")
	}
	for i, p := range points {
		if p.Close <= 0 {
			return nil, fmt.Errorf("price series %s: non-positive close %.4f at %s",
				symbol, p.Close, p.Date.Format("2006-01-02"))
		}
		if i > 0 && !points[i-1].Date.Before(p.Date) {
			return nil, fmt.Errorf("price series %s: dates not strictly increasing at %s",
				symbol, p.Date.Format("2006-01-02"))
		}
	}
	owned := make([]PricePoint, len(points))
	copy(owned, points)
	return &PriceSeries{Symbol: symbol, points: owned}, nil
}

// Len returns the number of observations.
func (s *PriceSeries) Len() int { return len(s.points) }

// At returns the observation at index i.
func (s *PriceSeries) At(i int) PricePoint { return s.points[i] }

// Closes returns a copy of the close prices in date order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.points))
	for i, p := range s.points {
		closes[i] = p.Close
	}
	return closes
}

// Dates returns a copy of the observation dates in order.
func (s *PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.points))
	for i, p := range s.points {
		dates[i] = p.Date
	}
	return dates
}

// Extend returns a new series with one additional observation appended.
// The receiver is left untouched.
func (s *PriceSeries) Extend(p PricePoint) (*PriceSeries, error) {
	points := make([]PricePoint, len(s.points), len(s.points)+1)
	copy(points, s.points)
	return NewPriceSeries(s.Symbol, append(points, p))
}

// ReturnSeries holds daily percentage changes aligned with a price
// series. It is one element shorter than its source: the first
// observation has no prior close.
type ReturnSeries struct {
	Symbol  string
	Dates   []time.Time
	Returns []float64
}
