package calculator

import "finover/internal/model"

// DefaultWindow is the trailing window for SMA and volatility.
const DefaultWindow = 20

// SMASeries computes the arithmetic mean of the trailing window closes
// ending at each index. The first window-1 entries are Missing.
func SMASeries(closes []float64, window int) []float64 {
	if window <= 0 {
		window = DefaultWindow
	}
	out := make([]float64, len(closes))
	var sum float64
	for i, c := range closes {
		sum += c
		if i >= window {
			sum -= closes[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = model.Missing
		}
	}
	return out
}

// VolatilitySeries computes the sample standard deviation of the
// trailing window closes ending at each index. The first window-1
// entries are Missing.
func VolatilitySeries(closes []float64, window int) []float64 {
	if window <= 0 {
		window = DefaultWindow
	}
	out := make([]float64, len(closes))
	for i := range closes {
		if i < window-1 {
			out[i] = model.Missing
			continue
		}
		out[i] = sampleStdDev(closes[i-window+1 : i+1])
	}
	return out
}
