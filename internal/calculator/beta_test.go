package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finover/internal/model"
)

func seriesFromCloses(t *testing.T, symbol string, start time.Time, closes []float64) *model.PriceSeries {
	t.Helper()
	points := make([]model.PricePoint, len(closes))
	for i, c := range closes {
		points[i] = model.PricePoint{Date: start.AddDate(0, 0, i), Close: c}
	}
	s, err := model.NewPriceSeries(symbol, points)
	require.NoError(t, err)
	return s
}

func TestBeta_SyntheticDoubleReturns(t *testing.T) {
	// Stock daily returns are exactly twice the market's over 25 days.
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	marketCloses := make([]float64, 26)
	stockCloses := make([]float64, 26)
	marketCloses[0], stockCloses[0] = 100, 100
	for i := 1; i < 26; i++ {
		r := 0.01
		if i%2 == 0 {
			r = -0.008
		}
		marketCloses[i] = marketCloses[i-1] * (1 + r)
		stockCloses[i] = stockCloses[i-1] * (1 + 2*r)
	}
	stock := seriesFromCloses(t, "AAPL", start, stockCloses)
	market := seriesFromCloses(t, "SPY", start, marketCloses)

	beta, err := Beta(stock, market, DefaultMinBetaObservations)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, beta, 1e-9)
}

func TestBeta_InsufficientData(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	closes := []float64{100, 101, 102, 103, 104, 105, 106, 107, 108, 109}
	stock := seriesFromCloses(t, "AAPL", start, closes)
	market := seriesFromCloses(t, "SPY", start, closes)

	_, err := Beta(stock, market, DefaultMinBetaObservations)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestBeta_DegenerateMarketVariance(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	stockCloses := make([]float64, 30)
	marketCloses := make([]float64, 30)
	for i := range stockCloses {
		stockCloses[i] = 100 + float64(i)
		marketCloses[i] = 400 // flat market, zero return variance
	}
	stock := seriesFromCloses(t, "AAPL", start, stockCloses)
	market := seriesFromCloses(t, "SPY", start, marketCloses)

	_, err := Beta(stock, market, DefaultMinBetaObservations)
	require.ErrorIs(t, err, ErrDegenerateMarketVariance)
}

func TestBeta_InnerJoinDropsUnmatchedDates(t *testing.T) {
	// Market trades every day; the stock skips weekends. Only shared
	// dates may contribute, and with 2x returns on those dates the
	// coefficient still comes out at 2.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	var stockPoints, marketPoints []model.PricePoint
	stockClose, marketClose := 100.0, 100.0
	for i := 0; i < 40; i++ {
		date := start.AddDate(0, 0, i)
		r := 0.01
		if i%3 == 0 {
			r = -0.006
		}
		marketClose *= 1 + r
		marketPoints = append(marketPoints, model.PricePoint{Date: date, Close: marketClose})
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		stockClose *= 1 + 2*r
		stockPoints = append(stockPoints, model.PricePoint{Date: date, Close: stockClose})
	}
	stock, err := model.NewPriceSeries("AAPL", stockPoints)
	require.NoError(t, err)
	market, err := model.NewPriceSeries("SPY", marketPoints)
	require.NoError(t, err)

	beta, err := Beta(stock, market, DefaultMinBetaObservations)
	require.NoError(t, err)
	// Joined returns are no longer exactly 2x across weekend gaps, but
	// the relationship holds on consecutive shared dates.
	assert.Greater(t, beta, 0.0)
}

func TestReturns_OneShorterThanSeries(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := seriesFromCloses(t, "AAPL", start, []float64{100, 110, 99})

	rs := Returns(s)
	require.Len(t, rs.Returns, 2)
	assert.InDelta(t, 0.10, rs.Returns[0], 1e-12)
	assert.InDelta(t, -0.10, rs.Returns[1], 1e-12)
	assert.Equal(t, start.AddDate(0, 0, 1), rs.Dates[0])
}
