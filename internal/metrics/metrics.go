package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PipelineRuns = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "finover_pipeline_runs_total", Help: "Completed pipeline batch runs"},
	)
	SymbolsProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "finover_symbols_processed_total", Help: "Per-symbol pipeline outcomes"},
		[]string{"status"},
	)
	Predictions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "finover_predictions_total", Help: "Risk predictions served"},
		[]string{"source"},
	)
	PortfolioEvaluations = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "finover_portfolio_evaluations_total", Help: "Portfolio risk evaluations served"},
	)
)

func init() {
	prometheus.MustRegister(PipelineRuns, SymbolsProcessed, Predictions, PortfolioEvaluations)
}
