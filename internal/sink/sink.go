package sink

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"backend/internal/models"
	"backend/internal/notifier"
	"backend/internal/repository"
)

// Recorder persists prediction history and dispatches tiered
// notifications after the primary response has been computed. Both
// actions are fire-and-forget: they run on their own goroutines with no
// ordering guarantee, failures are logged and swallowed, and nothing is
// ever retried or surfaced to the caller.
type Recorder struct {
	history repository.HistoryRepository
	mailer  notifier.Mailer
	logger  *zap.Logger
}

// NewRecorder creates a Recorder.
func NewRecorder(history repository.HistoryRepository, mailer notifier.Mailer, logger *zap.Logger) *Recorder {
	return &Recorder{
		history: history,
		mailer:  mailer,
		logger:  logger,
	}
}

// Record schedules the history append and the notification dispatch for
// one completed prediction. It returns immediately.
func (r *Recorder) Record(ident models.Identity, kind models.ModelKind, input map[string]float64, result models.RiskResult) {
	go r.saveHistory(ident.UID, kind, input, result)
	go r.sendNotification(ident, result)
}

func (r *Recorder) saveHistory(uid string, kind models.ModelKind, input map[string]float64, result models.RiskResult) {
	snapshot, err := json.Marshal(input)
	if err != nil {
		r.logger.Error("Failed to serialize input snapshot",
			zap.String("uid", uid),
			zap.String("model_kind", string(kind)),
			zap.Error(err))
		return
	}

	rec := &models.HistoryRecord{
		UserID:          uid,
		Timestamp:       time.Now().UTC().Format(time.RFC3339),
		ModelKind:       string(kind),
		InputData:       string(snapshot),
		RiskProbability: result.RiskProbability,
		RiskLabel:       result.RiskLabel,
	}

	if err := r.history.Append(rec); err != nil {
		r.logger.Error("Failed to save prediction history",
			zap.String("uid", uid),
			zap.String("model_kind", string(kind)),
			zap.Error(err))
	}
}

func (r *Recorder) sendNotification(ident models.Identity, result models.RiskResult) {
	if ident.Email == "" {
		r.logger.Debug("Identity has no email, skipping notification",
			zap.String("uid", ident.UID))
		return
	}

	if err := r.mailer.Send(ident.Email, result.RiskProbability); err != nil {
		r.logger.Error("Failed to send risk notification",
			zap.String("uid", ident.UID),
			zap.Error(err))
	}
}
