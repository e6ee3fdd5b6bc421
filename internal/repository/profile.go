package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"backend/internal/models"
)

type ProfileRepository interface {
	Upsert(profile *models.Profile) error
	Get(uid string) (*models.Profile, error)
}

type profileRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewProfileRepository(db *sqlx.DB, logger *zap.Logger) ProfileRepository {
	return &profileRepository{db: db, logger: logger}
}

// Upsert writes the identity's current profile, one document per user.
func (r *profileRepository) Upsert(profile *models.Profile) error {
	query := `INSERT INTO profiles (user_id, age, gender, height, weight, bmi, medical_conditions, stress_level, glucose, smoke, alco, active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	          ON CONFLICT (user_id) DO UPDATE SET
	              age = EXCLUDED.age,
	              gender = EXCLUDED.gender,
	              height = EXCLUDED.height,
	              weight = EXCLUDED.weight,
	              bmi = EXCLUDED.bmi,
	              medical_conditions = EXCLUDED.medical_conditions,
	              stress_level = EXCLUDED.stress_level,
	              glucose = EXCLUDED.glucose,
	              smoke = EXCLUDED.smoke,
	              alco = EXCLUDED.alco,
	              active = EXCLUDED.active`
	_, err := r.db.Exec(query, profile.UserID, profile.Age, profile.Gender, profile.Height,
		profile.Weight, profile.BMI, profile.MedicalConditions, profile.StressLevel,
		profile.Glucose, profile.Smoke, profile.Alco, profile.Active)
	return err
}

// Get returns the identity's current profile, or nil when none exists.
func (r *profileRepository) Get(uid string) (*models.Profile, error) {
	var profile models.Profile
	query := `SELECT user_id, age, gender, height, weight, bmi, medical_conditions, stress_level, glucose, smoke, alco, active
	          FROM profiles WHERE user_id = $1`
	err := r.db.Get(&profile, query, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}
