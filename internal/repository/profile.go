package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/model"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	ByUserID(userID string) (*model.UserProfile, error)
	Upsert(profile *model.UserProfile) error
}

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) ByUserID(userID string) (*model.UserProfile, error) {
	var profile model.UserProfile
	err := r.db.Get(&profile, `SELECT * FROM user_profiles WHERE user_id = $1`, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

func (r *profileRepository) Upsert(profile *model.UserProfile) error {
	profile.UpdatedAt = time.Now().UTC()
	if profile.FitnessLevel == "" {
		profile.FitnessLevel = model.FitnessBeginner
	}

	_, err := r.db.NamedExec(`
		INSERT INTO user_profiles (
			user_id, age, gender, height_cm, weight_kg, fitness_level, health_conditions,
			smoking_status, alcohol_consumption, exercise_frequency, sleep_hours, stress_level, updated_at)
		VALUES (
			:user_id, :age, :gender, :height_cm, :weight_kg, :fitness_level, :health_conditions,
			:smoking_status, :alcohol_consumption, :exercise_frequency, :sleep_hours, :stress_level, :updated_at)
		ON CONFLICT (user_id) DO UPDATE SET
			age = excluded.age,
			gender = excluded.gender,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			fitness_level = excluded.fitness_level,
			health_conditions = excluded.health_conditions,
			smoking_status = excluded.smoking_status,
			alcohol_consumption = excluded.alcohol_consumption,
			exercise_frequency = excluded.exercise_frequency,
			sleep_hours = excluded.sleep_hours,
			stress_level = excluded.stress_level,
			updated_at = excluded.updated_at
	`, profile)

	return err
}
