package predictor

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"backend/internal/artifact"
	"backend/internal/models"
	"backend/internal/risk"
)

// ErrModelUnavailable is returned when the requested kind has no loaded
// artifact. The condition is per-kind and lasts for the process lifetime.
var ErrModelUnavailable = errors.New("model not loaded")

// InvalidInputError reports a request that is missing a field the
// artifact requires.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// PredictionError reports a failed artifact invocation or an invalid
// model output. Callers surface it generically; details are logged.
type PredictionError struct {
	Kind models.ModelKind
	Err  error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s prediction failed: %v", e.Kind, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}

// ArtifactSource resolves a model kind to its loaded artifact.
type ArtifactSource interface {
	Get(kind models.ModelKind) (artifact.Artifact, bool)
}

// Sink receives completed predictions for asynchronous side effects
// (history append, notification). Implementations must not block.
type Sink interface {
	Record(ident models.Identity, kind models.ModelKind, input map[string]float64, result models.RiskResult)
}

// Dispatcher routes prediction requests to the right artifact, applies
// per-kind input transforms, normalizes and classifies the raw output
// and hands successful results to the side-effect sink.
type Dispatcher struct {
	artifacts ArtifactSource
	sink      Sink
	logger    *zap.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(artifacts ArtifactSource, sink Sink, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		artifacts: artifacts,
		sink:      sink,
		logger:    logger,
	}
}

// Predict runs one prediction. ident may be nil only for kinds that are
// exempt from identity-scoped side effects (synthetic). No side effect
// is ever scheduled for a failed prediction.
func (d *Dispatcher) Predict(kind models.ModelKind, input map[string]float64, ident *models.Identity) (models.RiskResult, error) {
	art, ok := d.artifacts.Get(kind)
	if !ok {
		return models.RiskResult{}, fmt.Errorf("%s: %w", kind, ErrModelUnavailable)
	}

	transformed := transformInput(kind, input)

	for _, f := range art.Features() {
		if _, ok := transformed[f]; !ok {
			return models.RiskResult{}, &InvalidInputError{Field: f}
		}
	}

	out, err := art.Predict(transformed)
	if err != nil {
		d.logger.Error("Artifact invocation failed",
			zap.String("model_kind", string(kind)),
			zap.Error(err))
		return models.RiskResult{}, &PredictionError{Kind: kind, Err: err}
	}

	prob, err := risk.Normalize(out)
	if err != nil {
		d.logger.Error("Model output rejected by normalizer",
			zap.String("model_kind", string(kind)),
			zap.Error(err))
		return models.RiskResult{}, &PredictionError{Kind: kind, Err: err}
	}

	result := models.RiskResult{
		RiskProbability: prob,
		RiskLabel:       risk.Label(prob),
	}
	if kind == models.ModelKindSynthetic {
		result.RiskLabel = "Simulated Score"
	}

	// Synthetic predictions require no identity and produce no history
	// or notification.
	if kind != models.ModelKindSynthetic && ident != nil {
		d.sink.Record(*ident, kind, transformed, result)
	}

	return result, nil
}

// transformInput applies the kind-specific preprocessing the artifact
// was trained with. The input map is never mutated.
func transformInput(kind models.ModelKind, input map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(input)+1)
	for k, v := range input {
		out[k] = v
	}

	if kind == models.ModelKindLifestyle {
		// The lifestyle training set measures age in days; callers
		// supply years.
		out["age"] = out["age"] * 365

		heightM := out["height"] / 100
		out["bmi"] = out["weight"] / (heightM * heightM)
	}

	return out
}
