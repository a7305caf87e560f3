package store

import "finover/internal/model"

// NoopStore is used when persistence is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) UpsertFeatures(string, []FeatureRecord) error { return nil }
func (n *NoopStore) SaveAssessment(model.RiskAssessment) error    { return nil }
func (n *NoopStore) LatestAssessments(int) ([]model.RiskAssessment, error) {
	return nil, nil
}
func (n *NoopStore) Close() error { return nil }
