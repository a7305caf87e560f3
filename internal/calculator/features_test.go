package calculator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finover/internal/model"
)

func TestBuildFeatures_BetaBroadcast(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i%7)
	}
	s := seriesFromCloses(t, "AAPL", start, closes)

	rows := BuildFeatures(s, 1.3, DefaultWindows())
	require.Len(t, rows, 30)
	for _, row := range rows {
		assert.Equal(t, 1.3, row.Beta)
	}
	// Prefix rows lack a full window and must not be complete.
	assert.False(t, rows[0].Complete())
	assert.False(t, rows[18].Complete())
	assert.True(t, rows[19].Complete())
}

func TestBuildFeatures_MissingBetaExcludesAllRows(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100 + float64(i%5)
	}
	s := seriesFromCloses(t, "AAPL", start, closes)

	rows := BuildFeatures(s, model.Missing, DefaultWindows())
	for _, row := range rows {
		assert.False(t, row.Complete())
	}
}

func TestBuildFeatures_IdempotentOnExtension(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 * (1 + 0.002*float64(i) - 0.01*float64(i%3))
	}
	s := seriesFromCloses(t, "AAPL", start, closes)
	before := BuildFeatures(s, 0.9, DefaultWindows())

	extended, err := s.Extend(model.PricePoint{Date: start.AddDate(0, 0, 40), Close: 123.45})
	require.NoError(t, err)
	after := BuildFeatures(extended, 0.9, DefaultWindows())

	require.Len(t, after, 41)
	for i := range before {
		assert.Equal(t, before[i].Date, after[i].Date)
		assertSameValue(t, before[i].RSI, after[i].RSI)
		assertSameValue(t, before[i].SMA, after[i].SMA)
		assertSameValue(t, before[i].Volatility, after[i].Volatility)
	}
}

// assertSameValue treats two undefined values as equal.
func assertSameValue(t *testing.T, want, got float64) {
	t.Helper()
	if !model.Defined(want) {
		assert.False(t, model.Defined(got))
		return
	}
	assert.Equal(t, want, got)
}
