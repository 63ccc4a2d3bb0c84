package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type GoalType string

const (
	GoalTypeWeightLoss       GoalType = "weight_loss"
	GoalTypeWeightGain       GoalType = "weight_gain"
	GoalTypeMuscleBuilding   GoalType = "muscle_building"
	GoalTypeFitness          GoalType = "fitness"
	GoalTypeSleepImprovement GoalType = "sleep_improvement"
	GoalTypeStressReduction  GoalType = "stress_reduction"
	GoalTypeSmokingCessation GoalType = "smoking_cessation"
	GoalTypeAlcoholReduction GoalType = "alcohol_reduction"
	GoalTypeNutrition        GoalType = "nutrition"
	GoalTypeCustom           GoalType = "custom"
)

var titleCaser = cases.Title(language.English)

// Label returns a human readable name, e.g. "Weight Loss".
func (t GoalType) Label() string {
	if t == "" {
		return titleCaser.String(string(GoalTypeCustom))
	}
	return titleCaser.String(strings.ReplaceAll(string(t), "_", " "))
}

type TimelinePreference string

const (
	PreferenceGradual    TimelinePreference = "gradual"
	PreferenceModerate   TimelinePreference = "moderate"
	PreferenceAggressive TimelinePreference = "aggressive"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusPaused    GoalStatus = "paused"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusCancelled GoalStatus = "cancelled"
)

// HealthGoal is one user objective. CurrentValue and TargetValue are both
// expressed in Unit; the goal closes the distance between them.
type HealthGoal struct {
	ID                      string             `db:"id"`
	UserID                  string             `db:"user_id"`
	GoalType                GoalType           `db:"goal_type"`
	Title                   string             `db:"title"`
	Description             string             `db:"description"`
	TargetValue             float64            `db:"target_value"`
	CurrentValue            float64            `db:"current_value"`
	Unit                    string             `db:"unit"`
	StartDate               time.Time          `db:"start_date"`
	TargetDate              time.Time          `db:"target_date"`
	TimelinePreference      TimelinePreference `db:"timeline_preference"`
	CalculatedTimelineWeeks int                `db:"calculated_timeline_weeks"`
	Status                  GoalStatus         `db:"status"`
	Priority                int                `db:"priority"`
	Barriers                StringSet          `db:"barriers"`
	Milestones              Milestones         `db:"milestones"`
	ProgressPercentage      float64            `db:"progress_percentage"`
	CreatedAt               time.Time          `db:"created_at"`
	UpdatedAt               time.Time          `db:"updated_at"`
}

func (g *HealthGoal) IsActive() bool {
	return g.Status == GoalStatusActive
}

// NextMilestone returns the first milestone not yet completed, or nil.
func (g *HealthGoal) NextMilestone() *Milestone {
	for i := range g.Milestones {
		if !g.Milestones[i].Completed {
			return &g.Milestones[i]
		}
	}
	return nil
}

// ClampProgress bounds a progress percentage to [0, 100].
func ClampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
