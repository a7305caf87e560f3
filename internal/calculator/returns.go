package calculator

import (
	"finover/internal/model"
)

// Returns computes daily percentage changes from a price series. The
// result is one element shorter than the input: the first observation
// has no prior close and yields no return.
func Returns(s *model.PriceSeries) *model.ReturnSeries {
	n := s.Len()
	if n < 2 {
		return &model.ReturnSeries{Symbol: s.Symbol}
	}
	rs := &model.ReturnSeries{
		Symbol:  s.Symbol,
		Dates:   s.Dates()[1:],
		Returns: make([]float64, n-1),
	}
	closes := s.Closes()
	for i := 1; i < n; i++ {
		rs.Returns[i-1] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return rs
}

// pctChanges computes percentage changes over an already-aligned close
// sequence. Used by the beta calculator after the date join.
func pctChanges(closes []float64) []float64 {
	if len(closes) < 2 {
		return nil
	}
	out := make([]float64, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		out[i-1] = (closes[i] - closes[i-1]) / closes[i-1]
	}
	return out
}
