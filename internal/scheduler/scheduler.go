package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"finover/internal/pipeline"
)

// Scheduler drives the periodic re-ingestion of price history. Each
// run recomputes the feature tables so a newly appended trading day
// refreshes the affected tail for every symbol.
type Scheduler struct {
	cron     *cron.Cron
	pipeline *pipeline.Pipeline
	symbols  []string
	log      zerolog.Logger
}

// New creates a Scheduler around the given pipeline.
func New(p *pipeline.Pipeline, symbols []string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		pipeline: p,
		symbols:  symbols,
		log:      log,
	}
}

// Register installs the daily ingestion task.
func (s *Scheduler) Register(dailyCron string) error {
	if _, err := s.cron.AddFunc(dailyCron, s.runDaily); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start begins cron scheduling.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts scheduling; running tasks finish.
func (s *Scheduler) Stop() { s.cron.Stop() }

// RunNow executes the daily task immediately, outside the schedule.
func (s *Scheduler) RunNow() { s.runDaily() }

func (s *Scheduler) runDaily() {
	s.log.Info().Int("symbols", len(s.symbols)).Msg("daily ingestion started")
	summary, err := s.pipeline.RunAll(s.symbols)
	if err != nil {
		s.log.Error().Err(err).Msg("daily ingestion aborted")
		return
	}
	for _, f := range summary.Failed {
		s.log.Error().Str("symbol", f.Symbol).Err(f.Err).Msg("symbol not refreshed")
	}
	s.log.Info().
		Int("processed", len(summary.Processed)).
		Int("skipped", len(summary.Skipped)).
		Int("failed", len(summary.Failed)).
		Msg("daily ingestion finished")
}
