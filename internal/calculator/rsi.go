package calculator

import "finover/internal/model"

// DefaultRSIPeriod is the trailing change count for RSI.
const DefaultRSIPeriod = 14

// RSISeries computes the relative strength index at each index from the
// trailing period daily changes: gains and losses are averaged
// separately and RSI = 100 - 100/(1 + avgGain/avgLoss). The first
// period entries are Missing (a change needs a prior close, so index
// period is the first with a full trailing window).
//
// Edge cases, in priority order: no movement at all in the window means
// RSI is undefined; zero losses with positive gains is the maximal
// bullish reading of 100.
func RSISeries(closes []float64, period int) []float64 {
	if period <= 0 {
		period = DefaultRSIPeriod
	}
	out := make([]float64, len(closes))
	for i := range closes {
		if i < period {
			out[i] = model.Missing
			continue
		}
		var gains, losses float64
		for j := i - period + 1; j <= i; j++ {
			change := closes[j] - closes[j-1]
			if change > 0 {
				gains += change
			} else {
				losses -= change
			}
		}
		avgGain := gains / float64(period)
		avgLoss := losses / float64(period)

		switch {
		case avgLoss == 0 && avgGain == 0:
			out[i] = model.Missing
		case avgLoss == 0:
			out[i] = 100.0
		default:
			rs := avgGain / avgLoss
			out[i] = 100.0 - 100.0/(1.0+rs)
		}
	}
	return out
}
