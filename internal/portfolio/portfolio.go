package portfolio

import "finover/internal/model"

// Aggregate computes the value-weighted portfolio risk. Each position
// contributes its risk score scaled by its share of total market value;
// the breakdown preserves the input order so callers can explain the
// aggregate. A portfolio with zero total value is a defined zero-risk
// result with an empty breakdown, not an error.
func Aggregate(positions []model.Position) model.PortfolioReport {
	var totalValue float64
	for _, p := range positions {
		totalValue += p.Value()
	}
	if totalValue == 0 {
		return model.PortfolioReport{Details: []model.BreakdownEntry{}}
	}

	report := model.PortfolioReport{
		TotalValue: totalValue,
		Details:    make([]model.BreakdownEntry, 0, len(positions)),
	}
	for _, p := range positions {
		weight := p.Value() / totalValue
		weighted := p.RiskScore * weight
		report.PortfolioRisk += weighted
		report.Details = append(report.Details, model.BreakdownEntry{
			Symbol:       p.Symbol,
			Weight:       weight,
			WeightedRisk: weighted,
		})
	}
	return report
}

// AggregateWithThreshold runs Aggregate and additionally flags the
// positions whose risk score strictly exceeds threshold, reporting
// their symbols and combined portfolio weight.
func AggregateWithThreshold(positions []model.Position, threshold float64) model.PortfolioReport {
	report := Aggregate(positions)
	summary := &model.HighRiskSummary{Symbols: []string{}}
	for i, p := range positions {
		if p.RiskScore <= threshold {
			continue
		}
		summary.Symbols = append(summary.Symbols, p.Symbol)
		if i < len(report.Details) {
			summary.CombinedWeight += report.Details[i].Weight
		}
	}
	report.HighRisk = summary
	return report
}
