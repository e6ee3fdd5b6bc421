package models

// ModelKind identifies which scoring artifact family handles a request.
type ModelKind string

const (
	ModelKindAcute     ModelKind = "acute"
	ModelKindLifestyle ModelKind = "lifestyle"
	ModelKindSynthetic ModelKind = "synthetic"
)

// RiskResult is the outcome of a completed prediction. RiskProbability
// is always within [0,1] and never NaN.
type RiskResult struct {
	RiskProbability float64 `json:"risk_probability"`
	RiskLabel       string  `json:"risk_label"`
}

// HistoryRecord represents one completed prediction stored in the
// 'predictions' table. Records are append-only and owned by the
// identity that triggered them.
type HistoryRecord struct {
	ID              string  `db:"id" json:"id"`
	UserID          string  `db:"user_id" json:"-"`
	Timestamp       string  `db:"timestamp" json:"timestamp"` // UTC, ISO-8601
	ModelKind       string  `db:"model_kind" json:"model_type"`
	InputData       string  `db:"input_data" json:"input_data"` // JSON snapshot of the model input
	RiskProbability float64 `db:"risk_probability" json:"risk_probability"`
	RiskLabel       string  `db:"risk_label" json:"risk_label"`
}

// Profile represents the current health profile stored in the
// 'profiles' table, one document per identity.
type Profile struct {
	UserID            string  `db:"user_id" json:"-"`
	Age               int     `db:"age" json:"age"`
	Gender            string  `db:"gender" json:"gender"`
	Height            float64 `db:"height" json:"height"` // cm
	Weight            float64 `db:"weight" json:"weight"` // kg
	BMI               float64 `db:"bmi" json:"bmi"`
	MedicalConditions *string `db:"medical_conditions" json:"medical_conditions,omitempty"`
	StressLevel       int     `db:"stress_level" json:"stress_level"`
	Glucose           int     `db:"glucose" json:"glucose"` // 1:Normal, 2:Above, 3:High
	Smoke             int     `db:"smoke" json:"smoke"`
	Alco              int     `db:"alco" json:"alco"`
	Active            int     `db:"active" json:"active"`
}
