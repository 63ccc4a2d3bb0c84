package repository

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/templui/goalpace/internal/model"
)

type ComplianceRepository interface {
	Append(event *model.ComplianceEvent) error
	Window(goalID string, since time.Time) ([]model.ComplianceEvent, error)
	WithTx(tx *sqlx.Tx) ComplianceRepository
}

type complianceRepository struct {
	db Queryer
}

func NewComplianceRepository(db *sqlx.DB) ComplianceRepository {
	return &complianceRepository{db: db}
}

func (r *complianceRepository) WithTx(tx *sqlx.Tx) ComplianceRepository {
	return &complianceRepository{db: tx}
}

// Append stores the event and indexes it under every goal it references.
func (r *complianceRepository) Append(event *model.ComplianceEvent) error {
	return inTx(r.db, func(tx Queryer) error {
		return appendEvent(tx, event)
	})
}

func appendEvent(tx Queryer, event *model.ComplianceEvent) error {
	recordedAt := event.Timestamp.UTC()
	_, err := tx.Exec(`
		INSERT INTO compliance_events (id, activity_id, goal_ids, day_number, status, notes, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, event.ID, event.ActivityID, event.GoalIDs, event.DayNumber, event.Status, event.Notes, recordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert compliance event: %w", err)
	}

	for _, goalID := range event.GoalIDs {
		_, err = tx.Exec(`
			INSERT INTO compliance_event_goals (event_id, goal_id, recorded_at)
			VALUES ($1, $2, $3)
		`, event.ID, goalID, recordedAt)
		if err != nil {
			return fmt.Errorf("failed to link compliance event to goal %s: %w", goalID, err)
		}
	}

	return nil
}

// Window returns the goal's events recorded after since, oldest first.
func (r *complianceRepository) Window(goalID string, since time.Time) ([]model.ComplianceEvent, error) {
	var events []model.ComplianceEvent
	query := `SELECT e.id, e.activity_id, e.goal_ids, e.day_number, e.status, e.notes, e.recorded_at
	          FROM compliance_events e
	          JOIN compliance_event_goals l ON l.event_id = e.id
	          WHERE l.goal_id = $1 AND l.recorded_at > $2
	          ORDER BY e.recorded_at ASC`

	err := r.db.Select(&events, query, goalID, since.UTC())
	if err != nil {
		return nil, err
	}

	return events, nil
}
