package predictor

import (
	"errors"

	"finover/internal/model"
)

var (
	// ErrModelNotFound signals that no trained artifact exists for the
	// symbol. Recoverable: callers fall back to the deterministic scorer.
	ErrModelNotFound = errors.New("model not found")

	// ErrPrediction signals an inference failure.
	ErrPrediction = errors.New("prediction failed")
)

// Predictor estimates a [0,1] risk score from one complete feature row.
// It is the statistical-model boundary: training and model internals
// live outside this repository.
type Predictor interface {
	Predict(symbol string, row model.FeatureRow) (float64, error)
	Close()
}
