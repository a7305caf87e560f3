package model

// Position is one portfolio holding submitted for evaluation. Quantity
// may be fractional; RiskScore is typically in [0,1] (a categorical
// level mapped through RiskLevel.Score is acceptable).
type Position struct {
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
	RiskScore float64 `json:"risk_score"`
}

// Value returns the position's market value.
func (p Position) Value() float64 { return p.Quantity * p.Price }

// BreakdownEntry explains one position's contribution to the aggregate.
type BreakdownEntry struct {
	Symbol       string  `json:"symbol"`
	Weight       float64 `json:"weight"`
	WeightedRisk float64 `json:"weighted_risk"`
}

// HighRiskSummary lists the positions whose risk score exceeded the
// caller-supplied threshold, with their combined portfolio weight.
type HighRiskSummary struct {
	Symbols        []string `json:"symbols"`
	CombinedWeight float64  `json:"combined_weight"`
}

// PortfolioReport is the aggregate result of one portfolio evaluation.
// Details preserve the input position order. A zero-value portfolio is
// a defined result (risk 0.0, empty details), not an error.
type PortfolioReport struct {
	TotalValue    float64          `json:"total_value"`
	PortfolioRisk float64          `json:"portfolio_risk"`
	Details       []BreakdownEntry `json:"details"`
	HighRisk      *HighRiskSummary `json:"high_risk,omitempty"`
}
