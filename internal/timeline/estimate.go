// Package timeline estimates realistic timelines for health goals.
package timeline

import (
	"fmt"
	"math"
	"time"

	"github.com/templui/goalpace/internal/model"
)

var preferenceFactors = map[model.TimelinePreference]float64{
	model.PreferenceGradual:    1.3,
	model.PreferenceModerate:   1.0,
	model.PreferenceAggressive: 0.8,
}

var preferenceNotes = map[model.TimelinePreference]string{
	model.PreferenceGradual:    "Gradual pacing extends the timeline by 30% to make habits easier to sustain.",
	model.PreferenceModerate:   "Moderate pacing keeps the recommended timeline.",
	model.PreferenceAggressive: "Aggressive pacing shortens the timeline by 20% and lowers the chance of success.",
}

// Estimate converts a goal declaration and a user profile into a timeline.
// It never fails: unknown goal types use the generic 8-week model and all
// numeric outputs are clamped. Milestone dates count from goal.StartDate,
// or from today when it is zero.
func Estimate(goal model.HealthGoal, profile model.UserProfile) model.TimelineCalculation {
	m, _ := lookup(goal.GoalType)

	weeks := m.baseWeeks(goal, profile)
	weekly := m.weeklyTarget(goal, profile, weeks)
	calc := model.TimelineCalculation{
		RealisticWeeks:           weeks,
		WeeklyTarget:             weekly,
		DailyTarget:              weekly / 7,
		TimelinePreferenceImpact: m.impact,
		SafetyConsiderations:     append([]string(nil), m.safety...),
		SuccessProbability:       m.success(profile, weeks),
	}

	calc = adjustForPreference(calc, goal.TimelinePreference)
	calc = adjustForUserFactors(calc, profile)

	calc.RealisticMonths = monthsFor(calc.RealisticWeeks)
	calc.Milestones = buildMilestones(m, goal, calc.RealisticWeeks, startDate(goal))
	return calc
}

// adjustForPreference is the first multiplicative pass.
func adjustForPreference(calc model.TimelineCalculation, pref model.TimelinePreference) model.TimelineCalculation {
	factor, ok := preferenceFactors[pref]
	if !ok {
		pref = model.PreferenceModerate
		factor = preferenceFactors[pref]
	}

	calc.RealisticWeeks = ceilWeeks(float64(calc.RealisticWeeks) * factor)
	calc.WeeklyTarget /= factor
	calc.DailyTarget /= factor

	penalty := 0
	if pref == model.PreferenceAggressive {
		penalty = 15
	}
	calc.SuccessProbability = max(preferenceSuccessFloor, calc.SuccessProbability-penalty)
	calc.TimelinePreferenceImpact = fmt.Sprintf("%s. %s", calc.TimelinePreferenceImpact, preferenceNotes[pref])
	return calc
}

// adjustForUserFactors is the second pass and compounds onto the first.
func adjustForUserFactors(calc model.TimelineCalculation, p model.UserProfile) model.TimelineCalculation {
	factor := 1.0
	success := 0

	switch p.FitnessLevel {
	case model.FitnessBeginner:
		factor *= 1.2
		success -= 10
	case model.FitnessAdvanced:
		factor *= 0.9
		success += 10
	}
	if p.HasHealthConditions() {
		factor *= 1.15
		success -= 5
	}
	if p.IsCurrentSmoker() {
		factor *= 1.1
		success -= 5
	}
	if p.ExercisesNever() {
		factor *= 1.2
		success -= 10
	}

	calc.RealisticWeeks = ceilWeeks(float64(calc.RealisticWeeks) * factor)
	calc.WeeklyTarget /= factor
	calc.DailyTarget /= factor
	calc.SuccessProbability = clampSuccess(calc.SuccessProbability + success)
	return calc
}

func monthsFor(weeks int) int {
	return int(math.Ceil(float64(weeks)/weeksPerMonth - 1e-9))
}

func startDate(g model.HealthGoal) time.Time {
	start := g.StartDate
	if start.IsZero() {
		start = time.Now()
	}
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}
