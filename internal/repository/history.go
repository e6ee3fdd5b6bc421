package repository

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"backend/internal/models"
)

type HistoryRepository interface {
	Append(rec *models.HistoryRecord) error
	ListByUser(uid string) ([]*models.HistoryRecord, error)
}

type historyRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewHistoryRepository(db *sqlx.DB, logger *zap.Logger) HistoryRepository {
	return &historyRepository{db: db, logger: logger}
}

// Append inserts a new prediction record under its owner. Records are
// never updated or deleted.
func (r *historyRepository) Append(rec *models.HistoryRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	query := `INSERT INTO predictions (id, user_id, timestamp, model_kind, input_data, risk_probability, risk_label)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(query, rec.ID, rec.UserID, rec.Timestamp, rec.ModelKind,
		rec.InputData, rec.RiskProbability, rec.RiskLabel)
	return err
}

func (r *historyRepository) ListByUser(uid string) ([]*models.HistoryRecord, error) {
	var records []*models.HistoryRecord
	query := `SELECT id, user_id, timestamp, model_kind, input_data, risk_probability, risk_label
	          FROM predictions WHERE user_id = $1 ORDER BY timestamp DESC`
	if err := r.db.Select(&records, query, uid); err != nil {
		return nil, err
	}
	return records, nil
}
