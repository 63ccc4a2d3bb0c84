package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/model"
)

const (
	GoalSortRecent   = "recent"
	GoalSortProgress = "progress"
	GoalSortPriority = "priority"
)

var (
	ErrGoalNotFound = errors.New("goal not found")
)

type GoalRepository interface {
	Create(goal *model.HealthGoal) error
	ByID(userID, goalID string) (*model.HealthGoal, error)
	Goals(userID, sortBy string) ([]*model.HealthGoal, error)
	ActiveGoals(userID string) ([]*model.HealthGoal, error)
	UsersWithActiveGoals() ([]string, error)
	Update(goal *model.HealthGoal) error
	Delete(userID, goalID string) error
	WithTx(tx *sqlx.Tx) GoalRepository
}

type goalRepository struct {
	db Queryer
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) WithTx(tx *sqlx.Tx) GoalRepository {
	return &goalRepository{db: tx}
}

func (r *goalRepository) Create(goal *model.HealthGoal) error {
	query := `INSERT INTO health_goals (
	              id, user_id, goal_type, title, description, target_value, current_value, unit,
	              start_date, target_date, timeline_preference, calculated_timeline_weeks, status,
	              priority, barriers, milestones, progress_percentage, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.GoalType,
		goal.Title,
		goal.Description,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.StartDate.UTC(),
		goal.TargetDate.UTC(),
		goal.TimelinePreference,
		goal.CalculatedTimelineWeeks,
		goal.Status,
		goal.Priority,
		goal.Barriers,
		goal.Milestones,
		goal.ProgressPercentage,
		goal.CreatedAt.UTC(),
		goal.UpdatedAt.UTC(),
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.HealthGoal, error) {
	goal := &model.HealthGoal{}
	query := `SELECT * FROM health_goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}

	return goal, nil
}

func (r *goalRepository) Goals(userID, sortBy string) ([]*model.HealthGoal, error) {
	var goals []*model.HealthGoal

	var orderBy string
	switch sortBy {
	case GoalSortProgress:
		orderBy = "ORDER BY progress_percentage DESC, updated_at DESC"
	case GoalSortPriority:
		orderBy = "ORDER BY priority ASC, target_date ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY updated_at DESC"
	}

	query := `SELECT * FROM health_goals WHERE user_id = $1 ` + orderBy

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) ActiveGoals(userID string) ([]*model.HealthGoal, error) {
	var goals []*model.HealthGoal
	query := `SELECT * FROM health_goals WHERE user_id = $1 AND status = $2 ORDER BY priority ASC, created_at ASC`

	err := r.db.Select(&goals, query, userID, model.GoalStatusActive)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) UsersWithActiveGoals() ([]string, error) {
	var users []string
	query := `SELECT DISTINCT user_id FROM health_goals WHERE status = $1 ORDER BY user_id`

	err := r.db.Select(&users, query, model.GoalStatusActive)
	if err != nil {
		return nil, err
	}

	return users, nil
}

func (r *goalRepository) Update(goal *model.HealthGoal) error {
	query := `UPDATE health_goals
	          SET title = $1, description = $2, target_value = $3, current_value = $4, unit = $5,
	              target_date = $6, timeline_preference = $7, calculated_timeline_weeks = $8,
	              status = $9, priority = $10, barriers = $11, milestones = $12,
	              progress_percentage = $13, updated_at = $14
	          WHERE id = $15 AND user_id = $16`

	result, err := r.db.Exec(query,
		goal.Title,
		goal.Description,
		goal.TargetValue,
		goal.CurrentValue,
		goal.Unit,
		goal.TargetDate.UTC(),
		goal.TimelinePreference,
		goal.CalculatedTimelineWeeks,
		goal.Status,
		goal.Priority,
		goal.Barriers,
		goal.Milestones,
		goal.ProgressPercentage,
		time.Now().UTC(),
		goal.ID,
		goal.UserID,
	)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}

func (r *goalRepository) Delete(userID, goalID string) error {
	query := `DELETE FROM health_goals WHERE id = $1 AND user_id = $2`
	result, err := r.db.Exec(query, goalID, userID)

	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return ErrGoalNotFound
	}

	return nil
}
