package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/predictor"
)

type PredictHandler interface {
	PredictAcute(c *gin.Context)
	PredictLifestyle(c *gin.Context)
	PredictSynthetic(c *gin.Context)
}

type predictHandler struct {
	dispatcher *predictor.Dispatcher
	logger     *zap.Logger
}

func NewPredictHandler(dispatcher *predictor.Dispatcher, logger *zap.Logger) PredictHandler {
	return &predictHandler{dispatcher: dispatcher, logger: logger}
}

// AcuteRequest carries the clinical fields of the acute model. Fields
// are pointers so legitimate zero values pass the presence check.
type AcuteRequest struct {
	Age         *float64 `json:"age" binding:"required"`
	Sex         *float64 `json:"sex" binding:"required"`
	CP          *float64 `json:"cp" binding:"required"`
	Trestbps    *float64 `json:"trestbps" binding:"required"`
	Chol        *float64 `json:"chol" binding:"required"`
	FBS         *float64 `json:"fbs" binding:"required"`
	Restecg     *float64 `json:"restecg" binding:"required"`
	Thalach     *float64 `json:"thalach" binding:"required"`
	Exang       *float64 `json:"exang" binding:"required"`
	Oldpeak     *float64 `json:"oldpeak" binding:"required"`
	Slope       *float64 `json:"slope" binding:"required"`
	CA          *float64 `json:"ca" binding:"required"`
	Thal        *float64 `json:"thal" binding:"required"`
	PhoneNumber *string  `json:"phone_number"` // not a model input
}

func (r *AcuteRequest) toInput() map[string]float64 {
	return map[string]float64{
		"age":      *r.Age,
		"sex":      *r.Sex,
		"cp":       *r.CP,
		"trestbps": *r.Trestbps,
		"chol":     *r.Chol,
		"fbs":      *r.FBS,
		"restecg":  *r.Restecg,
		"thalach":  *r.Thalach,
		"exang":    *r.Exang,
		"oldpeak":  *r.Oldpeak,
		"slope":    *r.Slope,
		"ca":       *r.CA,
		"thal":     *r.Thal,
	}
}

// LifestyleRequest carries the lifestyle model fields. Age is expected
// in years; the dispatcher converts it to the model's native unit.
type LifestyleRequest struct {
	Age         *float64 `json:"age" binding:"required"`
	Gender      *float64 `json:"gender" binding:"required"`
	Height      *float64 `json:"height" binding:"required"`
	Weight      *float64 `json:"weight" binding:"required"`
	ApHi        *float64 `json:"ap_hi" binding:"required"`
	ApLo        *float64 `json:"ap_lo" binding:"required"`
	Cholesterol *float64 `json:"cholesterol" binding:"required"`
	Gluc        *float64 `json:"gluc" binding:"required"`
	Smoke       *float64 `json:"smoke" binding:"required"`
	Alco        *float64 `json:"alco" binding:"required"`
	Active      *float64 `json:"active" binding:"required"`
	PhoneNumber *string  `json:"phone_number"` // not a model input
}

func (r *LifestyleRequest) toInput() map[string]float64 {
	return map[string]float64{
		"age":         *r.Age,
		"gender":      *r.Gender,
		"height":      *r.Height,
		"weight":      *r.Weight,
		"ap_hi":       *r.ApHi,
		"ap_lo":       *r.ApLo,
		"cholesterol": *r.Cholesterol,
		"gluc":        *r.Gluc,
		"smoke":       *r.Smoke,
		"alco":        *r.Alco,
		"active":      *r.Active,
	}
}

// SyntheticRequest carries the wellness fields of the simulated model.
type SyntheticRequest struct {
	StressLevel *float64 `json:"stress_level" binding:"required"`
	SleepHours  *float64 `json:"sleep_hours" binding:"required"`
	DailySteps  *float64 `json:"daily_steps" binding:"required"`
	WaterIntake *float64 `json:"water_intake" binding:"required"`
	HRV         *float64 `json:"hrv" binding:"required"`
	Age         *float64 `json:"age" binding:"required"`
	BMI         *float64 `json:"bmi" binding:"required"`
}

func (r *SyntheticRequest) toInput() map[string]float64 {
	return map[string]float64{
		"stress_level": *r.StressLevel,
		"sleep_hours":  *r.SleepHours,
		"daily_steps":  *r.DailySteps,
		"water_intake": *r.WaterIntake,
		"hrv":          *r.HRV,
		"age":          *r.Age,
		"bmi":          *r.BMI,
	}
}

// PredictAcute handles POST /predict/acute (and the legacy /predict).
func (h *predictHandler) PredictAcute(c *gin.Context) {
	var req AcuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := middleware.IdentityFromContext(c)
	result, ok := h.dispatch(c, models.ModelKindAcute, req.toInput(), &ident)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risk_probability": result.RiskProbability,
		"risk_label":       result.RiskLabel,
		"alert_sent":       true,
	})
}

// PredictLifestyle handles POST /predict/lifestyle.
func (h *predictHandler) PredictLifestyle(c *gin.Context) {
	var req LifestyleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ident := middleware.IdentityFromContext(c)
	result, ok := h.dispatch(c, models.ModelKindLifestyle, req.toInput(), &ident)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risk_probability": result.RiskProbability,
		"risk_label":       result.RiskLabel,
	})
}

// PredictSynthetic handles POST /predict/synthetic. No identity is
// required and no side effects are produced.
func (h *predictHandler) PredictSynthetic(c *gin.Context) {
	var req SyntheticRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, ok := h.dispatch(c, models.ModelKindSynthetic, req.toInput(), nil)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"risk_probability": result.RiskProbability,
		"risk_label":       result.RiskLabel,
	})
}

// dispatch runs the prediction and writes the error response when it
// fails. The bool result reports whether a result was produced.
func (h *predictHandler) dispatch(c *gin.Context, kind models.ModelKind, input map[string]float64, ident *models.Identity) (models.RiskResult, bool) {
	result, err := h.dispatcher.Predict(kind, input, ident)
	if err == nil {
		return result, true
	}

	var invalidErr *predictor.InvalidInputError
	switch {
	case errors.Is(err, predictor.ErrModelUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Model " + string(kind) + " not loaded"})
	case errors.As(err, &invalidErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidErr.Error()})
	default:
		h.logger.Error("Prediction failed",
			zap.String("model_kind", string(kind)),
			zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Prediction failed"})
	}
	return models.RiskResult{}, false
}
