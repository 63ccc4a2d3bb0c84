package compliance

import (
	"math"
	"time"

	"github.com/templui/goalpace/internal/model"
)

// WindowDays is the length of the trailing compliance window.
const WindowDays = 7

const (
	lowCompliance  = 0.5
	highCompliance = 0.8
)

// Adjustment is advisory: the engine suggests multipliers and the caller
// decides whether to apply them to the stored goal.
type Adjustment struct {
	GoalID              string
	Events              int
	ComplianceRate      float64
	TimelineMultiplier  float64
	IntensityMultiplier float64
	Recommendations     []string
}

// WindowStart returns the lower bound of the window ending at now.
func WindowStart(now time.Time) time.Time {
	return now.AddDate(0, 0, -WindowDays)
}

// Window keeps the events for goalID in the trailing window ending at now.
// An empty goalID keeps events for any goal.
func Window(events []model.ComplianceEvent, goalID string, now time.Time) []model.ComplianceEvent {
	since := WindowStart(now)

	var window []model.ComplianceEvent
	for _, e := range events {
		if goalID != "" && !e.GoalIDs.Contains(goalID) {
			continue
		}
		if !e.Timestamp.After(since) || e.Timestamp.After(now) {
			continue
		}
		window = append(window, e)
	}
	return window
}

// Rate is the share of completed events, 0 for an empty window.
func Rate(window []model.ComplianceEvent) float64 {
	if len(window) == 0 {
		return 0
	}
	completed := 0
	for _, e := range window {
		if e.Status == model.ComplianceCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(window))
}

// Adjust maps a compliance window to timeline and intensity multipliers.
func Adjust(goalID string, window []model.ComplianceEvent) Adjustment {
	adj := Adjustment{
		GoalID:              goalID,
		Events:              len(window),
		ComplianceRate:      Rate(window),
		TimelineMultiplier:  1.0,
		IntensityMultiplier: 1.0,
	}

	switch {
	case len(window) == 0:
		adj.Recommendations = []string{
			"No activities were logged this week; record completed, partial or skipped activities to personalize your pace",
		}
	case adj.ComplianceRate < lowCompliance:
		adj.TimelineMultiplier = 1.2
		adj.IntensityMultiplier = 0.8
		adj.Recommendations = []string{
			"Reduce activity intensity to make the plan easier to follow",
			"Prioritize consistency over intensity: aim to complete fewer activities every day",
			"Timeline extended to keep the goal realistic",
		}
	case adj.ComplianceRate > highCompliance:
		adj.TimelineMultiplier = 0.9
		adj.IntensityMultiplier = 1.1
		adj.Recommendations = []string{
			"Excellent consistency: increase activity intensity gradually",
			"Timeline shortened to reflect your progress",
		}
	default:
		adj.Recommendations = []string{
			"Steady progress: keep following the current plan",
		}
	}

	return adj
}

// Apply scales the goal's stored timeline by the adjustment and moves the
// target date and open milestones by the resulting number of days. Partial
// weeks round in the direction of the multiplier.
func Apply(goal model.HealthGoal, adj Adjustment) (model.HealthGoal, int) {
	if goal.CalculatedTimelineWeeks <= 0 || adj.TimelineMultiplier == 1.0 {
		return goal, 0
	}

	scaled := float64(goal.CalculatedTimelineWeeks) * adj.TimelineMultiplier
	var weeks int
	if adj.TimelineMultiplier > 1 {
		weeks = int(math.Ceil(scaled - 1e-9))
	} else {
		weeks = int(math.Floor(scaled + 1e-9))
	}
	weeks = max(1, weeks)
	days := (weeks - goal.CalculatedTimelineWeeks) * 7
	goal.CalculatedTimelineWeeks = weeks

	if !goal.TargetDate.IsZero() {
		goal.TargetDate = goal.TargetDate.AddDate(0, 0, days)
	}

	milestones := make(model.Milestones, len(goal.Milestones))
	copy(milestones, goal.Milestones)
	for i := range milestones {
		if !milestones[i].Completed {
			milestones[i].TargetDate = milestones[i].TargetDate.AddDate(0, 0, days)
		}
	}
	goal.Milestones = milestones

	return goal, days
}
