package risk

import "finover/internal/model"

// Thresholds are the categorical classification boundaries. They are
// price-scale dependent, so callers configure them per deployment
// rather than relying on the defaults.
type Thresholds struct {
	VolatilityHigh   float64 `yaml:"volatility_high"`
	VolatilityMedium float64 `yaml:"volatility_medium"`
	BetaHigh         float64 `yaml:"beta_high"`
	BetaLow          float64 `yaml:"beta_low"`
}

// DefaultThresholds returns the canonical volatility+beta scheme.
func DefaultThresholds() Thresholds {
	return Thresholds{
		VolatilityHigh:   5.0,
		VolatilityMedium: 2.0,
		BetaHigh:         1.2,
		BetaLow:          0.8,
	}
}

// Weights are the convex weights of the continuous score. They should
// sum to at most 1 so the clamped result stays interpretable.
type Weights struct {
	Volatility float64 `yaml:"volatility"`
	Beta       float64 `yaml:"beta"`
	RSI        float64 `yaml:"rsi"`
}

// DefaultWeights returns the standard continuous weighting.
func DefaultWeights() Weights {
	return Weights{Volatility: 0.4, Beta: 0.3, RSI: 0.2}
}

// Scorer turns feature rows into risk assessments. Scoring is a pure
// function of its inputs: no randomness, no shared state, safe for
// concurrent use across symbols.
type Scorer struct {
	Thresholds Thresholds
	Weights    Weights
}

// NewScorer builds a scorer with the given thresholds and weights.
func NewScorer(t Thresholds, w Weights) *Scorer {
	return &Scorer{Thresholds: t, Weights: w}
}

// ClassifyRow maps one complete feature row to a categorical level.
// The second return is false when the row has an undefined field and
// cannot be scored.
func (s *Scorer) ClassifyRow(row model.FeatureRow) (model.RiskLevel, bool) {
	if !row.Complete() {
		return "", false
	}
	t := s.Thresholds
	switch {
	case row.Volatility > t.VolatilityHigh || row.Beta > t.BetaHigh:
		return model.RiskHigh, true
	case row.Volatility > t.VolatilityMedium || (row.Beta > t.BetaLow && row.Beta <= t.BetaHigh):
		return model.RiskMedium, true
	default:
		return model.RiskLow, true
	}
}

// Classify scores every complete row of a symbol categorically.
// Incomplete rows are excluded from the output, never defaulted.
func (s *Scorer) Classify(symbol string, rows []model.FeatureRow) []model.RiskAssessment {
	out := make([]model.RiskAssessment, 0, len(rows))
	for _, row := range rows {
		level, ok := s.ClassifyRow(row)
		if !ok {
			continue
		}
		out = append(out, model.RiskAssessment{
			Symbol: symbol,
			Date:   row.Date,
			Level:  level,
			Score:  level.Score(),
		})
	}
	return out
}

// ScoreContinuous scores every complete row on a [0,1] scale. The
// volatility and beta terms are normalized by the maximum observed
// value in this batch, so the score is dataset-relative; the RSI term
// is inverted (lower RSI contributes more risk).
func (s *Scorer) ScoreContinuous(symbol string, rows []model.FeatureRow) []model.RiskAssessment {
	var maxVol, maxBeta float64
	for _, row := range rows {
		if !row.Complete() {
			continue
		}
		if row.Volatility > maxVol {
			maxVol = row.Volatility
		}
		if row.Beta > maxBeta {
			maxBeta = row.Beta
		}
	}

	out := make([]model.RiskAssessment, 0, len(rows))
	for _, row := range rows {
		if !row.Complete() {
			continue
		}
		var volTerm, betaTerm float64
		if maxVol > 0 {
			volTerm = row.Volatility / maxVol
		}
		if maxBeta > 0 {
			betaTerm = row.Beta / maxBeta
		}
		score := s.Weights.Volatility*volTerm +
			s.Weights.Beta*betaTerm +
			s.Weights.RSI*(1.0-row.RSI/100.0)
		score = clamp01(score)

		out = append(out, model.RiskAssessment{
			Symbol: symbol,
			Date:   row.Date,
			Level:  LevelFromScore(score),
			Score:  score,
		})
	}
	return out
}

// LevelFromScore buckets a [0,1] score into thirds, matching the
// percentage bands the risk frontend displays.
func LevelFromScore(score float64) model.RiskLevel {
	switch {
	case score < 1.0/3.0:
		return model.RiskLow
	case score < 2.0/3.0:
		return model.RiskMedium
	default:
		return model.RiskHigh
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
