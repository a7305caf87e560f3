package pipeline

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"finover/internal/calculator"
	"finover/internal/collector"
	"finover/internal/metrics"
	"finover/internal/model"
	"finover/internal/risk"
	"finover/internal/store"
)

// SymbolError ties a per-symbol failure to the symbol it belongs to so
// batch callers can report each one individually.
type SymbolError struct {
	Symbol string
	Err    error
}

func (e SymbolError) Error() string { return fmt.Sprintf("%s: %v", e.Symbol, e.Err) }
func (e SymbolError) Unwrap() error { return e.Err }

// Summary reports the outcome of one batch run.
type Summary struct {
	Processed []string
	Skipped   []SymbolError // recoverable: insufficient data, degenerate variance
	Failed    []SymbolError // provider or persistence failures
}

// Pipeline runs the full per-symbol flow: fetch history, compute beta
// against the market benchmark, build the feature table, classify, and
// persist. Symbols are independent; one failure never aborts the rest.
type Pipeline struct {
	Fetcher collector.Fetcher
	Store   store.Store
	Scorer  *risk.Scorer
	Windows calculator.Windows

	MarketSymbol        string
	MinBetaObservations int
	Log                 zerolog.Logger
}

// RunAll processes every symbol against a freshly fetched market
// benchmark series. A market fetch failure is fatal for the whole run,
// since beta cannot be computed for any symbol without it.
func (p *Pipeline) RunAll(symbols []string) (Summary, error) {
	market, err := p.Fetcher.FetchHistory(p.MarketSymbol)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch market series %s: %w", p.MarketSymbol, err)
	}

	var summary Summary
	for _, symbol := range symbols {
		err := p.runSymbol(market, symbol)
		switch {
		case err == nil:
			summary.Processed = append(summary.Processed, symbol)
			metrics.SymbolsProcessed.WithLabelValues("ok").Inc()
		case errors.Is(err, calculator.ErrInsufficientData),
			errors.Is(err, calculator.ErrDegenerateMarketVariance):
			p.Log.Warn().Str("symbol", symbol).Err(err).Msg("symbol skipped")
			summary.Skipped = append(summary.Skipped, SymbolError{Symbol: symbol, Err: err})
			metrics.SymbolsProcessed.WithLabelValues("skipped").Inc()
		default:
			p.Log.Error().Str("symbol", symbol).Err(err).Msg("symbol failed")
			summary.Failed = append(summary.Failed, SymbolError{Symbol: symbol, Err: err})
			metrics.SymbolsProcessed.WithLabelValues("failed").Inc()
		}
	}

	metrics.PipelineRuns.Inc()
	p.Log.Info().
		Int("processed", len(summary.Processed)).
		Int("skipped", len(summary.Skipped)).
		Int("failed", len(summary.Failed)).
		Msg("pipeline run complete")
	return summary, nil
}

func (p *Pipeline) runSymbol(market *model.PriceSeries, symbol string) error {
	series, err := p.Fetcher.FetchHistory(symbol)
	if err != nil {
		return err
	}

	beta, err := calculator.Beta(series, market, p.MinBetaObservations)
	if err != nil {
		return err
	}

	rows := calculator.BuildFeatures(series, beta, p.Windows)

	records := make([]store.FeatureRecord, len(rows))
	for i, row := range rows {
		rec := store.FeatureRecord{Row: row}
		if level, ok := p.Scorer.ClassifyRow(row); ok {
			rec.Level = level
		}
		records[i] = rec
	}
	if err := p.Store.UpsertFeatures(symbol, records); err != nil {
		return fmt.Errorf("persist features: %w", err)
	}

	assessments := p.Scorer.Classify(symbol, rows)
	if len(assessments) > 0 {
		latest := assessments[len(assessments)-1]
		if err := p.Store.SaveAssessment(latest); err != nil {
			return fmt.Errorf("persist assessment: %w", err)
		}
		p.Log.Info().
			Str("symbol", symbol).
			Float64("beta", beta).
			Str("risk_level", string(latest.Level)).
			Int("rows", len(rows)).
			Msg("symbol processed")
	}
	return nil
}
