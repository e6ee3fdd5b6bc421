package artifact

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// Shape identifies the raw output form an artifact produces.
type Shape int

const (
	// ShapeProbPair is a two-class probability pair (p0, p1).
	ShapeProbPair Shape = iota
	// ShapeProbability is a single calibrated probability.
	ShapeProbability
	// ShapeScore is a continuous regression score.
	ShapeScore
)

// Output is the raw result of one artifact invocation. Which fields are
// meaningful depends on Shape: P0/P1 for ShapeProbPair, Value otherwise.
type Output struct {
	Shape Shape
	P0    float64
	P1    float64
	Value float64
}

// Artifact is an opaque pre-trained scoring function invoked with a
// structured input and producing a numeric output.
type Artifact interface {
	Features() []string
	Predict(input map[string]float64) (Output, error)
}

// artifactFile mirrors the JSON layout of a serialized artifact.
type artifactFile struct {
	Type      string    `json:"type"` // "logistic", "probability" or "linear"
	Features  []string  `json:"features"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
	Means     []float64 `json:"means,omitempty"`
	Scales    []float64 `json:"scales,omitempty"`
}

// Model is a linear-form scoring artifact deserialized from a JSON
// coefficient file. The model type decides how the linear combination
// is turned into an Output.
type Model struct {
	modelType string
	features  []string
	weights   []float64
	intercept float64
	means     []float64
	scales    []float64
}

// Load reads and validates a serialized artifact from path.
func Load(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact file: %w", err)
	}

	var s artifactFile
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode artifact file: %w", err)
	}

	switch s.Type {
	case "logistic", "probability", "linear":
	default:
		return nil, fmt.Errorf("unknown artifact type %q", s.Type)
	}
	if len(s.Features) == 0 {
		return nil, fmt.Errorf("artifact has no features")
	}
	if len(s.Weights) != len(s.Features) {
		return nil, fmt.Errorf("artifact has %d weights for %d features", len(s.Weights), len(s.Features))
	}
	if len(s.Means) > 0 && (len(s.Means) != len(s.Features) || len(s.Scales) != len(s.Features)) {
		return nil, fmt.Errorf("artifact standardization vectors do not match features")
	}

	return &Model{
		modelType: s.Type,
		features:  s.Features,
		weights:   s.Weights,
		intercept: s.Intercept,
		means:     s.Means,
		scales:    s.Scales,
	}, nil
}

// Features returns the ordered input fields the artifact was trained on.
func (m *Model) Features() []string {
	return m.features
}

// Predict invokes the artifact with the given input. Every trained
// feature must be present and finite, otherwise the invocation fails.
func (m *Model) Predict(input map[string]float64) (Output, error) {
	z := m.intercept
	for i, f := range m.features {
		v, ok := input[f]
		if !ok {
			return Output{}, fmt.Errorf("missing input feature %q", f)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Output{}, fmt.Errorf("non-finite value for input feature %q", f)
		}
		if len(m.means) > 0 {
			if m.scales[i] == 0 {
				return Output{}, fmt.Errorf("zero scale for input feature %q", f)
			}
			v = (v - m.means[i]) / m.scales[i]
		}
		z += m.weights[i] * v
	}

	switch m.modelType {
	case "logistic":
		p := sigmoid(z)
		return Output{Shape: ShapeProbPair, P0: 1 - p, P1: p}, nil
	case "probability":
		return Output{Shape: ShapeProbability, Value: sigmoid(z)}, nil
	default: // linear
		return Output{Shape: ShapeScore, Value: z}, nil
	}
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
