package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finover/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_UpsertFeaturesIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	records := []FeatureRecord{
		{
			Row: model.FeatureRow{
				Date: date, Close: 100, RSI: 55, SMA: 98, Volatility: 1.5, Beta: 1.1,
			},
			Level: model.RiskMedium,
		},
		{
			// Prefix row with undefined features persists as NULLs.
			Row: model.FeatureRow{
				Date: date.AddDate(0, 0, 1), Close: 101,
				RSI: model.Missing, SMA: model.Missing, Volatility: model.Missing, Beta: 1.1,
			},
		},
	}
	require.NoError(t, s.UpsertFeatures("AAPL", records))
	// Re-writing the same dates must replace, not duplicate.
	require.NoError(t, s.UpsertFeatures("AAPL", records))

	var count int
	require.NoError(t, s.db.QueryRow(
		`SELECT COUNT(*) FROM feature_rows WHERE symbol = ?`, "AAPL").Scan(&count))
	assert.Equal(t, 2, count)
}

func TestSQLiteStore_LatestAssessmentsOrdered(t *testing.T) {
	s := newTestStore(t)
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, s.SaveAssessment(model.RiskAssessment{
		Symbol: "TSLA", Date: date, Level: model.RiskHigh, Score: 0.8,
	}))
	require.NoError(t, s.SaveAssessment(model.RiskAssessment{
		Symbol: "KO", Date: date, Level: model.RiskLow, Score: 0.2,
	}))
	require.NoError(t, s.SaveAssessment(model.RiskAssessment{
		Symbol: "MSFT", Date: date, Level: model.RiskMedium, Score: 0.5,
	}))
	// Replacing an existing symbol keeps one row per symbol.
	require.NoError(t, s.SaveAssessment(model.RiskAssessment{
		Symbol: "TSLA", Date: date.AddDate(0, 0, 1), Level: model.RiskMedium, Score: 0.5,
	}))

	got, err := s.LatestAssessments(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "KO", got[0].Symbol)
	assert.Equal(t, "MSFT", got[1].Symbol)
	assert.Equal(t, model.RiskLow, got[0].Level)
}
