package model

import (
	"math"
	"time"
)

// Missing marks an undefined feature value. Undefined values propagate
// through the pipeline and exclude their row from scoring; they are
// never replaced with a default.
var Missing = math.NaN()

// Defined reports whether v carries a real value.
func Defined(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// FeatureRow is one dated row of computed features for a symbol.
// Any field may be Missing when there is insufficient trailing history.
type FeatureRow struct {
	Date       time.Time
	Close      float64
	RSI        float64 // 0-100
	SMA        float64 // price scale
	Volatility float64 // price-scale standard deviation
	Beta       float64 // one coefficient per symbol, broadcast to every row
}

// Complete reports whether every feature field is defined, i.e. the row
// is eligible for scoring.
func (r FeatureRow) Complete() bool {
	return Defined(r.RSI) && Defined(r.SMA) && Defined(r.Volatility) && Defined(r.Beta)
}

// RiskLevel is the categorical risk label.
type RiskLevel string

const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// Score maps a level to a numeric proxy in [0,1] so categorical output
// can feed the value-weighted portfolio aggregation.
func (l RiskLevel) Score() float64 {
	switch l {
	case RiskLow:
		return 0.2
	case RiskMedium:
		return 0.5
	case RiskHigh:
		return 0.8
	}
	return 0
}

// RiskAssessment is the scored output for one (symbol, date) feature row.
type RiskAssessment struct {
	Symbol string
	Date   time.Time
	Level  RiskLevel
	Score  float64 // [0,1]
}
