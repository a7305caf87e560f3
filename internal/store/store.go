package store

import "finover/internal/model"

// FeatureRecord is one persisted feature-table row: the computed
// features plus the categorical label, when the row was complete
// enough to classify.
type FeatureRecord struct {
	Row   model.FeatureRow
	Level model.RiskLevel // empty when the row could not be scored
}

// Store persists per-symbol feature tables and the latest risk
// assessment per symbol. Artifacts are keyed by symbol and fully
// regenerable from price history, so last-writer-wins semantics are
// acceptable for concurrent writes to the same symbol.
type Store interface {
	UpsertFeatures(symbol string, records []FeatureRecord) error
	SaveAssessment(a model.RiskAssessment) error
	LatestAssessments(limit int) ([]model.RiskAssessment, error)
	Close() error
}
