package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/model"
)

var (
	ErrActivityNotFound = errors.New("activity not found")
)

type ActivityRepository interface {
	Create(activity *model.Activity) error
	ByID(userID, activityID string) (*model.Activity, error)
}

type activityRepository struct {
	db *sqlx.DB
}

func NewActivityRepository(db *sqlx.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(activity *model.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO activities (id, user_id, title, day_number, related_goals, impact_score, compliance_weight, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		activity.ID,
		activity.UserID,
		activity.Title,
		activity.DayNumber,
		activity.RelatedGoals,
		activity.ImpactScore,
		activity.ComplianceWeight,
		activity.CreatedAt.UTC(),
	)

	return err
}

func (r *activityRepository) ByID(userID, activityID string) (*model.Activity, error) {
	var activity model.Activity
	err := r.db.Get(&activity, `SELECT * FROM activities WHERE id = $1 AND user_id = $2`, activityID, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrActivityNotFound
	}
	if err != nil {
		return nil, err
	}

	return &activity, nil
}
