// Package compliance turns activity outcomes into goal progress and derives
// pace corrections from recent compliance.
package compliance

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/templui/goalpace/internal/model"
)

var statusMultipliers = map[model.ComplianceStatus]float64{
	model.ComplianceCompleted: 1,
	model.CompliancePartial:   0.5,
	model.ComplianceModified:  0.7,
	model.ComplianceSkipped:   -0.3,
}

// Result holds the values produced by one compliance report. Goals contains
// every goal of the input set, updated where the activity links to it.
type Result struct {
	Goals   []model.HealthGoal
	Updated []string
	Event   model.ComplianceEvent
	History []model.ProgressRecord
}

// Delta is the signed progress change for one goal linked to activity.
func Delta(activity model.Activity, status model.ComplianceStatus) (float64, error) {
	multiplier, ok := statusMultipliers[status]
	if !ok {
		return 0, fmt.Errorf("%w: %q", model.ErrUnknownComplianceStatus, status)
	}
	return activity.ImpactScore * activity.ComplianceWeight * multiplier, nil
}

// Record applies one compliance report to every goal linked to the activity.
// The input slice is not modified; goals linked to the activity but missing
// from the set are ignored. CalculatedTimelineWeeks is never changed here.
func Record(goals []model.HealthGoal, activity model.Activity, status model.ComplianceStatus, notes string, at time.Time) (Result, error) {
	delta, err := Delta(activity, status)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Goals: make([]model.HealthGoal, len(goals)),
		Event: model.ComplianceEvent{
			ID:         uuid.New().String(),
			ActivityID: activity.ID,
			GoalIDs:    model.NewStringSet(activity.RelatedGoals...),
			DayNumber:  activity.DayNumber,
			Status:     status,
			Notes:      notes,
			Timestamp:  at,
		},
	}
	copy(res.Goals, goals)

	for i := range res.Goals {
		goal := &res.Goals[i]
		if !activity.RelatedGoals.Contains(goal.ID) {
			continue
		}

		goal.ProgressPercentage = model.ClampProgress(goal.ProgressPercentage + delta)
		goal.UpdatedAt = at

		res.Updated = append(res.Updated, goal.ID)
		res.History = append(res.History, model.ProgressRecord{
			ID:                 uuid.New().String(),
			GoalID:             goal.ID,
			Date:               at,
			CurrentValue:       goal.CurrentValue,
			ProgressPercentage: goal.ProgressPercentage,
		})
	}

	return res, nil
}
