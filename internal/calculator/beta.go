package calculator

import (
	"errors"
	"fmt"
	"math"

	"finover/internal/model"
)

// DefaultMinBetaObservations is the minimum number of paired daily
// returns required before beta is considered meaningful.
const DefaultMinBetaObservations = 20

var (
	// ErrInsufficientData signals fewer aligned observations than the
	// minimum sample policy allows. Recoverable: skip the symbol.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDegenerateMarketVariance signals a zero or non-finite market
	// return variance. Recoverable: beta is undefined for this run.
	ErrDegenerateMarketVariance = errors.New("degenerate market variance")
)

// Beta computes the systematic-risk coefficient of stock against
// market: covariance of paired daily returns over variance of market
// returns, both Bessel-corrected. The two series are inner-joined on
// date before returns are taken; dates present in only one series are
// dropped. The result is a single scalar applied uniformly to every
// feature row of the symbol for this computation run.
func Beta(stock, market *model.PriceSeries, minObservations int) (float64, error) {
	if minObservations <= 0 {
		minObservations = DefaultMinBetaObservations
	}

	stockCloses, marketCloses := joinOnDates(stock, market)

	stockRet := pctChanges(stockCloses)
	marketRet := pctChanges(marketCloses)

	// Drop any pair with an undefined return.
	validStock := stockRet[:0:0]
	validMarket := marketRet[:0:0]
	for i := range stockRet {
		if model.Defined(stockRet[i]) && model.Defined(marketRet[i]) {
			validStock = append(validStock, stockRet[i])
			validMarket = append(validMarket, marketRet[i])
		}
	}

	n := len(validStock)
	if n < minObservations {
		return model.Missing, fmt.Errorf("%w: %d paired observations for %s, need %d",
			ErrInsufficientData, n, stock.Symbol, minObservations)
	}

	cov := covariance(validStock, validMarket)
	variance := sampleVariance(validMarket)
	if variance == 0 || !model.Defined(variance) {
		return model.Missing, fmt.Errorf("%w: market %s", ErrDegenerateMarketVariance, market.Symbol)
	}
	return cov / variance, nil
}

// joinOnDates returns the close pairs for dates present in both series.
// Both inputs are date-ordered, so a two-pointer merge suffices.
func joinOnDates(a, b *model.PriceSeries) (aCloses, bCloses []float64) {
	i, j := 0, 0
	for i < a.Len() && j < b.Len() {
		pa, pb := a.At(i), b.At(j)
		switch {
		case pa.Date.Before(pb.Date):
			i++
		case pb.Date.Before(pa.Date):
			j++
		default:
			aCloses = append(aCloses, pa.Close)
			bCloses = append(bCloses, pb.Close)
			i++
			j++
		}
	}
	return aCloses, bCloses
}

// covariance computes the Bessel-corrected covariance of two equal-length
// samples.
func covariance(x, y []float64) float64 {
	n := len(x)
	if n < 2 {
		return model.Missing
	}
	meanX, meanY := mean(x), mean(y)
	var sum float64
	for i := range x {
		sum += (x[i] - meanX) * (y[i] - meanY)
	}
	return sum / float64(n-1)
}

// sampleVariance computes the Bessel-corrected variance of a sample.
func sampleVariance(x []float64) float64 {
	n := len(x)
	if n < 2 {
		return model.Missing
	}
	m := mean(x)
	var sum float64
	for _, v := range x {
		d := v - m
		sum += d * d
	}
	return sum / float64(n-1)
}

func mean(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

func sampleStdDev(x []float64) float64 {
	return math.Sqrt(sampleVariance(x))
}
