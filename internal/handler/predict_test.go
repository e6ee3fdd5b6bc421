package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backend/internal/artifact"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/models"
	"backend/internal/predictor"
)

type stubArtifact struct {
	features []string
	out      artifact.Output
}

func (a *stubArtifact) Features() []string { return a.features }

func (a *stubArtifact) Predict(map[string]float64) (artifact.Output, error) {
	return a.out, nil
}

type stubSource map[models.ModelKind]artifact.Artifact

func (s stubSource) Get(kind models.ModelKind) (artifact.Artifact, bool) {
	a, ok := s[kind]
	return a, ok
}

type recordingSink struct {
	calls int
}

func (s *recordingSink) Record(models.Identity, models.ModelKind, map[string]float64, models.RiskResult) {
	s.calls++
}

type stubVerifier struct{}

func (stubVerifier) VerifyToken(context.Context, string) (*models.Identity, error) {
	return &models.Identity{UID: "u1", Email: "u1@example.com"}, nil
}

func newRouter(source stubSource, sink *recordingSink) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()

	dispatcher := predictor.NewDispatcher(source, sink, logger)
	predictHandler := handler.NewPredictHandler(dispatcher, logger)

	router := gin.New()
	router.POST("/predict/synthetic", predictHandler.PredictSynthetic)

	authRequired := router.Group("/")
	authRequired.Use(middleware.AuthMiddleware(stubVerifier{}, logger))
	{
		authRequired.POST("/predict", predictHandler.PredictAcute)
		authRequired.POST("/predict/acute", predictHandler.PredictAcute)
		authRequired.POST("/predict/lifestyle", predictHandler.PredictLifestyle)
	}
	return router
}

const acuteBody = `{
	"age": 57, "sex": 1, "cp": 2, "trestbps": 140, "chol": 241,
	"fbs": 0, "restecg": 1, "thalach": 123, "exang": 1,
	"oldpeak": 0.2, "slope": 1, "ca": 0, "thal": 3,
	"phone_number": "+123456789"
}`

func acuteArtifact(p1 float64) *stubArtifact {
	return &stubArtifact{
		features: []string{"age", "sex", "cp", "trestbps", "chol", "fbs", "restecg", "thalach", "exang", "oldpeak", "slope", "ca", "thal"},
		out:      artifact.Output{Shape: artifact.ShapeProbPair, P0: 1 - p1, P1: p1},
	}
}

func doRequest(router *gin.Engine, method, path, body string, authed bool) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer token")
	}
	router.ServeHTTP(w, req)
	return w
}

func TestPredictAcute_Success(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(stubSource{models.ModelKindAcute: acuteArtifact(0.85)}, sink)

	w := doRequest(router, "POST", "/predict/acute", acuteBody, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RiskProbability float64 `json:"risk_probability"`
		RiskLabel       string  `json:"risk_label"`
		AlertSent       bool    `json:"alert_sent"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.85, resp.RiskProbability)
	assert.Equal(t, "Very high cardiac risk. Seek medical attention soon.", resp.RiskLabel)
	assert.True(t, resp.AlertSent)
	assert.Equal(t, 1, sink.calls)
}

func TestPredictAcute_LegacyRoute(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(stubSource{models.ModelKindAcute: acuteArtifact(0.1)}, sink)

	w := doRequest(router, "POST", "/predict", acuteBody, true)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestPredictAcute_RequiresAuth(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(stubSource{models.ModelKindAcute: acuteArtifact(0.5)}, sink)

	w := doRequest(router, "POST", "/predict/acute", acuteBody, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, sink.calls)
}

func TestPredictAcute_ModelUnavailable(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(stubSource{}, sink)

	w := doRequest(router, "POST", "/predict/acute", acuteBody, true)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Model acute not loaded")
	assert.Equal(t, 0, sink.calls)
}

func TestPredictAcute_MissingField(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(stubSource{models.ModelKindAcute: acuteArtifact(0.5)}, sink)

	body := `{"age": 57, "sex": 1}`
	w := doRequest(router, "POST", "/predict/acute", body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, sink.calls)
}

func TestPredictAcute_WrongFieldType(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(stubSource{models.ModelKindAcute: acuteArtifact(0.5)}, sink)

	body := strings.Replace(acuteBody, `"age": 57`, `"age": "fifty-seven"`, 1)
	w := doRequest(router, "POST", "/predict/acute", body, true)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, sink.calls)
}

func TestPredictLifestyle_Success(t *testing.T) {
	art := &stubArtifact{
		features: []string{"age", "gender", "height", "weight", "ap_hi", "ap_lo", "cholesterol", "gluc", "smoke", "alco", "active", "bmi"},
		out:      artifact.Output{Shape: artifact.ShapeProbPair, P0: 0.7, P1: 0.3},
	}
	sink := &recordingSink{}
	router := newRouter(stubSource{models.ModelKindLifestyle: art}, sink)

	body := `{
		"age": 50, "gender": 1, "height": 175, "weight": 75,
		"ap_hi": 120, "ap_lo": 80, "cholesterol": 1, "gluc": 1,
		"smoke": 0, "alco": 0, "active": 1
	}`
	w := doRequest(router, "POST", "/predict/lifestyle", body, true)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.3, resp["risk_probability"])
	assert.NotContains(t, resp, "alert_sent")
	assert.Equal(t, 1, sink.calls)
}

func TestPredictSynthetic_NoAuthNoSideEffects(t *testing.T) {
	art := &stubArtifact{
		features: []string{"stress_level", "sleep_hours", "daily_steps", "water_intake", "hrv", "age", "bmi"},
		out:      artifact.Output{Shape: artifact.ShapeScore, Value: 0.37},
	}
	sink := &recordingSink{}
	router := newRouter(stubSource{models.ModelKindSynthetic: art}, sink)

	body := `{
		"stress_level": 5, "sleep_hours": 7.5, "daily_steps": 8000,
		"water_intake": 2.5, "hrv": 60, "age": 30, "bmi": 23.1
	}`
	w := doRequest(router, "POST", "/predict/synthetic", body, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 0.37, resp["risk_probability"])
	assert.Equal(t, "Simulated Score", resp["risk_label"])
	assert.Equal(t, 0, sink.calls)
}

func TestPredictSynthetic_Unavailable(t *testing.T) {
	sink := &recordingSink{}
	router := newRouter(stubSource{}, sink)

	body := `{
		"stress_level": 5, "sleep_hours": 7.5, "daily_steps": 8000,
		"water_intake": 2.5, "hrv": 60, "age": 30, "bmi": 23.1
	}`
	w := doRequest(router, "POST", "/predict/synthetic", body, false)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, 0, sink.calls)
}
