package model

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownComplianceStatus = errors.New("unknown compliance status")

type ComplianceStatus string

const (
	ComplianceCompleted ComplianceStatus = "completed"
	CompliancePartial   ComplianceStatus = "partial"
	ComplianceSkipped   ComplianceStatus = "skipped"
	ComplianceModified  ComplianceStatus = "modified"
)

func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	switch status := ComplianceStatus(s); status {
	case ComplianceCompleted, CompliancePartial, ComplianceSkipped, ComplianceModified:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownComplianceStatus, s)
	}
}

// Activity is a scheduled daily activity linked to one or more goals.
// ImpactScore and ComplianceWeight are both in [0, 1].
type Activity struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	Title            string    `db:"title"`
	DayNumber        int       `db:"day_number"`
	RelatedGoals     StringSet `db:"related_goals"`
	ImpactScore      float64   `db:"impact_score"`
	ComplianceWeight float64   `db:"compliance_weight"`
	CreatedAt        time.Time `db:"created_at"`
}

// ComplianceEvent records how a scheduled activity was executed. Append-only.
type ComplianceEvent struct {
	ID         string           `db:"id"`
	ActivityID string           `db:"activity_id"`
	GoalIDs    StringSet        `db:"goal_ids"`
	DayNumber  int              `db:"day_number"`
	Status     ComplianceStatus `db:"status"`
	Notes      string           `db:"notes"`
	Timestamp  time.Time        `db:"recorded_at"`
}

// ProgressRecord is one entry of a goal's progress history.
type ProgressRecord struct {
	ID                     string    `db:"id"`
	GoalID                 string    `db:"goal_id"`
	Date                   time.Time `db:"recorded_at"`
	CurrentValue           float64   `db:"current_value"`
	ProgressPercentage     float64   `db:"progress_percentage"`
	ComplianceRate         float64   `db:"compliance_rate"`
	TimelineAdjustmentDays int       `db:"timeline_adjustment_days"`
}
