package calculator

import "finover/internal/model"

// Windows bundles the trailing-window lengths for feature computation.
type Windows struct {
	SMA        int
	Volatility int
	RSIPeriod  int
}

// DefaultWindows returns the standard window configuration.
func DefaultWindows() Windows {
	return Windows{SMA: DefaultWindow, Volatility: DefaultWindow, RSIPeriod: DefaultRSIPeriod}
}

// BuildFeatures computes one feature row per date of the price series.
// Beta is broadcast unchanged to every row; pass model.Missing when
// beta could not be computed. Each indicator is a pure function of the
// price window ending at its date, so recomputing after the series is
// extended reproduces identical values for all earlier dates.
func BuildFeatures(s *model.PriceSeries, beta float64, w Windows) []model.FeatureRow {
	closes := s.Closes()
	dates := s.Dates()

	rsi := RSISeries(closes, w.RSIPeriod)
	sma := SMASeries(closes, w.SMA)
	vol := VolatilitySeries(closes, w.Volatility)

	rows := make([]model.FeatureRow, len(closes))
	for i := range closes {
		rows[i] = model.FeatureRow{
			Date:       dates[i],
			Close:      closes[i],
			RSI:        rsi[i],
			SMA:        sma[i],
			Volatility: vol[i],
			Beta:       beta,
		}
	}
	return rows
}
