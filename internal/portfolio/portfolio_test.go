package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finover/internal/model"
)

func TestAggregate_WeightedRisk(t *testing.T) {
	positions := []model.Position{
		{Symbol: "AAPL", Quantity: 3, Price: 100, RiskScore: 0.8},
		{Symbol: "MSFT", Quantity: 2, Price: 250, RiskScore: 0.3},
	}
	report := Aggregate(positions)

	assert.InDelta(t, 800, report.TotalValue, 1e-9)
	// 0.8*(300/800) + 0.3*(500/800) = 0.3 + 0.1875
	assert.InDelta(t, 0.4875, report.PortfolioRisk, 1e-12)

	require.Len(t, report.Details, 2)
	assert.Equal(t, "AAPL", report.Details[0].Symbol)
	assert.Equal(t, "MSFT", report.Details[1].Symbol)

	var weightSum float64
	for _, d := range report.Details {
		weightSum += d.Weight
	}
	assert.InDelta(t, 1.0, weightSum, 1e-9)
}

func TestAggregate_ZeroValuePortfolio(t *testing.T) {
	report := Aggregate(nil)
	assert.Equal(t, 0.0, report.PortfolioRisk)
	assert.Empty(t, report.Details)

	report = Aggregate([]model.Position{{Symbol: "AAPL", Quantity: 0, Price: 100, RiskScore: 0.9}})
	assert.Equal(t, 0.0, report.PortfolioRisk)
	assert.Empty(t, report.Details)
}

func TestAggregate_SinglePositionEqualsOwnScore(t *testing.T) {
	report := Aggregate([]model.Position{{Symbol: "NVDA", Quantity: 1.5, Price: 80, RiskScore: 0.67}})
	require.Len(t, report.Details, 1)
	assert.Equal(t, 1.0, report.Details[0].Weight)
	assert.Equal(t, 0.67, report.PortfolioRisk)
}

func TestAggregate_RiskIncreasesWithScore(t *testing.T) {
	base := []model.Position{
		{Symbol: "A", Quantity: 1, Price: 100, RiskScore: 0.1},
		{Symbol: "B", Quantity: 1, Price: 100, RiskScore: 0.1},
	}
	low := Aggregate(base).PortfolioRisk

	for i := range base {
		base[i].RiskScore = 0.3
	}
	high := Aggregate(base).PortfolioRisk

	assert.Greater(t, high, low)
}

func TestAggregateWithThreshold_FlagsHighRisk(t *testing.T) {
	positions := []model.Position{
		{Symbol: "AAPL", Quantity: 1, Price: 100, RiskScore: 0.9},
		{Symbol: "MSFT", Quantity: 1, Price: 100, RiskScore: 0.2},
		{Symbol: "TSLA", Quantity: 2, Price: 100, RiskScore: 0.7},
	}
	report := AggregateWithThreshold(positions, 0.6)

	require.NotNil(t, report.HighRisk)
	assert.Equal(t, []string{"AAPL", "TSLA"}, report.HighRisk.Symbols)
	assert.InDelta(t, 0.75, report.HighRisk.CombinedWeight, 1e-12)
}

func TestAggregateWithThreshold_NoneFlagged(t *testing.T) {
	positions := []model.Position{{Symbol: "KO", Quantity: 1, Price: 50, RiskScore: 0.1}}
	report := AggregateWithThreshold(positions, 0.5)

	require.NotNil(t, report.HighRisk)
	assert.Empty(t, report.HighRisk.Symbols)
	assert.Equal(t, 0.0, report.HighRisk.CombinedWeight)
}
