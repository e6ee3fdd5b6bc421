package handler

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"backend/internal/models"
	"backend/internal/repository"
)

type ProfileHandler interface {
	GetProfile(c *gin.Context)
	SaveProfile(c *gin.Context)
	GetHistory(c *gin.Context)
}

type profileHandler struct {
	profileRepo repository.ProfileRepository
	historyRepo repository.HistoryRepository
	logger      *zap.Logger
}

func NewProfileHandler(profileRepo repository.ProfileRepository, historyRepo repository.HistoryRepository, logger *zap.Logger) ProfileHandler {
	return &profileHandler{
		profileRepo: profileRepo,
		historyRepo: historyRepo,
		logger:      logger,
	}
}

// ProfileRequest is the profile upsert payload. BMI is derived
// server-side, never accepted from the caller.
type ProfileRequest struct {
	Age               *int     `json:"age" binding:"required"`
	Gender            *string  `json:"gender" binding:"required"`
	Height            *float64 `json:"height" binding:"required"`
	Weight            *float64 `json:"weight" binding:"required"`
	MedicalConditions *string  `json:"medical_conditions"`
	StressLevel       *int     `json:"stress_level" binding:"required"`
	Glucose           *int     `json:"glucose"`
	Smoke             *int     `json:"smoke"`
	Alco              *int     `json:"alco"`
	Active            *int     `json:"active"`
}

// GetProfile handles GET /profile. Responds with null when the identity
// has no profile yet.
func (h *profileHandler) GetProfile(c *gin.Context) {
	uid := c.GetString("uid")

	profile, err := h.profileRepo.Get(uid)
	if err != nil {
		h.logger.Error("Failed to get profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SaveProfile handles POST /profile, creating or replacing the
// identity's current profile document.
func (h *profileHandler) SaveProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	uid := c.GetString("uid")

	heightM := *req.Height / 100
	bmi := math.Round(*req.Weight/(heightM*heightM)*100) / 100

	profile := &models.Profile{
		UserID:            uid,
		Age:               *req.Age,
		Gender:            *req.Gender,
		Height:            *req.Height,
		Weight:            *req.Weight,
		BMI:               bmi,
		MedicalConditions: req.MedicalConditions,
		StressLevel:       *req.StressLevel,
		Glucose:           1,
		Smoke:             0,
		Alco:              0,
		Active:            1,
	}
	if req.Glucose != nil {
		profile.Glucose = *req.Glucose
	}
	if req.Smoke != nil {
		profile.Smoke = *req.Smoke
	}
	if req.Alco != nil {
		profile.Alco = *req.Alco
	}
	if req.Active != nil {
		profile.Active = *req.Active
	}

	if err := h.profileRepo.Upsert(profile); err != nil {
		h.logger.Error("Failed to save profile", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save profile"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// GetHistory handles GET /profile/history, newest first.
func (h *profileHandler) GetHistory(c *gin.Context) {
	uid := c.GetString("uid")

	records, err := h.historyRepo.ListByUser(uid)
	if err != nil {
		h.logger.Error("Failed to get prediction history", zap.String("uid", uid), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve history"})
		return
	}

	if records == nil {
		records = []*models.HistoryRecord{}
	}
	c.JSON(http.StatusOK, records)
}
