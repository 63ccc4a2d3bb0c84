package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/model"
)

var (
	ErrNoAdjustment = errors.New("no timeline adjustment recorded")
)

type ProgressRepository interface {
	Append(records ...model.ProgressRecord) error
	History(goalID string) ([]model.ProgressRecord, error)
	LastAdjustment(goalID string) (*model.ProgressRecord, error)
	WithTx(tx *sqlx.Tx) ProgressRepository
}

type progressRepository struct {
	db Queryer
}

func NewProgressRepository(db *sqlx.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) WithTx(tx *sqlx.Tx) ProgressRepository {
	return &progressRepository{db: tx}
}

func (r *progressRepository) Append(records ...model.ProgressRecord) error {
	if len(records) == 0 {
		return nil
	}

	return inTx(r.db, func(tx Queryer) error {
		return appendProgress(tx, records)
	})
}

func appendProgress(tx Queryer, records []model.ProgressRecord) error {
	query := `INSERT INTO goal_progress (id, goal_id, recorded_at, current_value, progress_percentage, compliance_rate, timeline_adjustment_days)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, rec := range records {
		if rec.ID == "" {
			rec.ID = uuid.New().String()
		}
		_, err := tx.Exec(query,
			rec.ID,
			rec.GoalID,
			rec.Date.UTC(),
			rec.CurrentValue,
			rec.ProgressPercentage,
			rec.ComplianceRate,
			rec.TimelineAdjustmentDays,
		)
		if err != nil {
			return fmt.Errorf("failed to record progress for goal %s: %w", rec.GoalID, err)
		}
	}

	return nil
}

func (r *progressRepository) History(goalID string) ([]model.ProgressRecord, error) {
	var records []model.ProgressRecord
	query := `SELECT * FROM goal_progress WHERE goal_id = $1 ORDER BY recorded_at ASC`

	err := r.db.Select(&records, query, goalID)
	if err != nil {
		return nil, err
	}

	return records, nil
}

// LastAdjustment returns the most recent record that moved the goal's
// timeline.
func (r *progressRepository) LastAdjustment(goalID string) (*model.ProgressRecord, error) {
	rec := &model.ProgressRecord{}
	query := `SELECT * FROM goal_progress
	          WHERE goal_id = $1 AND timeline_adjustment_days <> 0
	          ORDER BY recorded_at DESC
	          LIMIT 1`

	err := r.db.Get(rec, query, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoAdjustment
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}
