package timeline

import (
	"fmt"
	"math"

	"github.com/templui/goalpace/internal/model"
)

type milestoneStrategy int

const (
	linearInterpolation milestoneStrategy = iota
	fixedPercentage
	repeatTarget
)

// goalModel is one row of the base-rate table.
type goalModel struct {
	baseWeeks    func(g model.HealthGoal, p model.UserProfile) int
	weeklyTarget func(g model.HealthGoal, p model.UserProfile, weeks int) float64
	milestones   milestoneStrategy
	checkpoints  int
	title        func(g model.HealthGoal, step milestoneStep) string
	impact       string
	safety       []string
	success      func(p model.UserProfile, weeks int) int
}

const (
	weeksPerMonth = 4.33

	weightLossRateBeginner = 0.5
	weightLossRate         = 0.75
	weightGainRate         = 0.35

	muscleMonthlyRateBeginner = 0.75
	muscleMonthlyRate         = 0.4

	fitnessWeeksBeginner = 6
	fitnessWeeks         = 10

	sleepWeeks   = 6
	stressWeeks  = 8
	smokingWeeks = 20
	alcoholWeeks = 6
	genericWeeks = 8
)

var models = map[model.GoalType]goalModel{
	model.GoalTypeWeightLoss: {
		baseWeeks: func(g model.HealthGoal, p model.UserProfile) int {
			rate := weightLossRate
			if p.FitnessLevel == model.FitnessBeginner {
				rate = weightLossRateBeginner
			}
			return ceilWeeks(delta(g) / rate)
		},
		weeklyTarget: deltaPerWeek,
		milestones:   linearInterpolation,
		checkpoints:  4,
		title:        amountTitle("lost"),
		impact:       "Weight loss timeline is primarily based on safe, sustainable rates",
		safety: []string{
			"Rapid weight loss can lead to muscle loss and metabolic slowdown",
			"Aim for 0.5-1kg per week for sustainable results",
			"Include strength training to preserve muscle mass",
			"Monitor energy levels and adjust if feeling fatigued",
		},
		success: weightLossSuccess,
	},
	model.GoalTypeWeightGain: {
		baseWeeks: func(g model.HealthGoal, _ model.UserProfile) int {
			return ceilWeeks(delta(g) / weightGainRate)
		},
		weeklyTarget: deltaPerWeek,
		milestones:   linearInterpolation,
		checkpoints:  4,
		title:        amountTitle("gained"),
		impact:       "Weight gain should be gradual to ensure it's mostly muscle, not fat",
		safety: []string{
			"Focus on lean muscle gain rather than rapid weight increase",
			"Include progressive strength training",
			"Monitor body composition, not just weight",
			"Ensure adequate protein intake (1.6-2.2g per kg body weight)",
		},
		success: weightGainSuccess,
	},
	model.GoalTypeMuscleBuilding: {
		baseWeeks: func(g model.HealthGoal, p model.UserProfile) int {
			return ceilWeeks(delta(g) / muscleRate(p) * weeksPerMonth)
		},
		weeklyTarget: func(_ model.HealthGoal, p model.UserProfile, _ int) float64 {
			return muscleRate(p) / weeksPerMonth
		},
		milestones:  linearInterpolation,
		checkpoints: 4,
		title:       amountTitle("muscle gained"),
		impact:      "Muscle building is inherently gradual and cannot be rushed safely",
		safety: []string{
			"Muscle building requires progressive overload and adequate recovery",
			"Nutrition is crucial - aim for 1.6-2.2g protein per kg body weight",
			"Allow 48-72 hours between training the same muscle groups",
			"Track strength gains as well as weight changes",
		},
		success: muscleBuildingSuccess,
	},
	model.GoalTypeFitness: {
		baseWeeks: func(g model.HealthGoal, p model.UserProfile) int {
			base := fitnessWeeks
			if p.FitnessLevel == model.FitnessBeginner {
				base = fitnessWeeksBeginner
			}
			return max(base, ceilWeeks(g.TargetValue/10))
		},
		weeklyTarget: targetPerWeek,
		milestones:   linearInterpolation,
		checkpoints:  4,
		title: func(_ model.HealthGoal, s milestoneStep) string {
			return fmt.Sprintf("%d%% fitness improvement", s.percent())
		},
		impact: "Fitness improvements require consistent training and proper progression",
		safety: []string{
			"Start with proper form before increasing intensity",
			"Include both cardiovascular and strength training",
			"Allow adequate rest and recovery between sessions",
			"Progress gradually to avoid injury",
		},
		success: fitnessSuccess,
	},
	model.GoalTypeSleepImprovement: {
		baseWeeks: fixedWeeks(sleepWeeks),
		weeklyTarget: func(g model.HealthGoal, p model.UserProfile, weeks int) float64 {
			current := g.CurrentValue
			if current == 0 {
				current = p.SleepHours
			}
			return math.Abs(g.TargetValue-current) / float64(weeks)
		},
		milestones:  repeatTarget,
		checkpoints: 3,
		title: func(_ model.HealthGoal, s milestoneStep) string {
			return fmt.Sprintf("Week %d sleep habit", s.week())
		},
		impact: "Sleep habits take time to establish and show benefits",
		safety: []string{
			"Maintain consistent sleep and wake times",
			"Create a relaxing bedtime routine",
			"Limit screen time before bed",
			"Ensure bedroom is cool, dark, and quiet",
		},
		success: sleepSuccess,
	},
	model.GoalTypeStressReduction: {
		baseWeeks: fixedWeeks(stressWeeks),
		weeklyTarget: func(model.HealthGoal, model.UserProfile, int) float64 {
			return 1
		},
		milestones:  repeatTarget,
		checkpoints: 3,
		title: func(_ model.HealthGoal, s milestoneStep) string {
			return fmt.Sprintf("Stress check-in %d", s.index)
		},
		impact: "Stress management requires consistent practice and lifestyle changes",
		safety: []string{
			"Practice stress management techniques daily",
			"Identify and address stress triggers",
			"Maintain healthy lifestyle habits",
			"Consider professional help if stress is severe",
		},
		success: stressReductionSuccess,
	},
	model.GoalTypeSmokingCessation: {
		baseWeeks: fixedWeeks(smokingWeeks),
		weeklyTarget: func(g model.HealthGoal, _ model.UserProfile, weeks int) float64 {
			return g.CurrentValue / float64(weeks)
		},
		milestones:  fixedPercentage,
		checkpoints: len(cessationSteps),
		title: func(_ model.HealthGoal, s milestoneStep) string {
			return cessationSteps[s.index-1].title
		},
		impact: "Smoking cessation is a complex process that requires gradual reduction and support",
		safety: []string{
			"Consider nicotine replacement therapy or medications",
			"Identify triggers and develop coping strategies",
			"Seek support from healthcare providers or support groups",
			"Be patient with setbacks and focus on progress",
		},
		success: smokingCessationSuccess,
	},
	model.GoalTypeAlcoholReduction: {
		baseWeeks:    fixedWeeks(alcoholWeeks),
		weeklyTarget: deltaPerWeek,
		milestones:   linearInterpolation,
		checkpoints:  3,
		title: func(g model.HealthGoal, s milestoneStep) string {
			return fmt.Sprintf("Reduce to %s %s", formatAmount(s.value), unitOr(g, "drinks/week"))
		},
		impact: "Alcohol reduction should be gradual to avoid withdrawal symptoms",
		safety: []string{
			"Reduce alcohol consumption gradually",
			"Identify triggers and develop alternative activities",
			"Seek professional help if experiencing withdrawal symptoms",
			"Focus on building healthy coping mechanisms",
		},
		success: alcoholReductionSuccess,
	},
	model.GoalTypeCustom: genericModel,
}

// genericModel backs custom goals and any type without its own row.
var genericModel = goalModel{
	baseWeeks:    fixedWeeks(genericWeeks),
	weeklyTarget: targetPerWeek,
	milestones:   linearInterpolation,
	checkpoints:  4,
	title: func(_ model.HealthGoal, s milestoneStep) string {
		return fmt.Sprintf("%d%% progress", s.percent())
	},
	impact: "Custom goals require personalized assessment and monitoring",
	safety: []string{
		"Set realistic and measurable targets",
		"Monitor progress regularly",
		"Adjust timeline based on actual progress",
		"Seek professional guidance if needed",
	},
	success: func(model.UserProfile, int) int { return 70 },
}

type cessationStep struct {
	title     string
	reduction float64
}

var cessationSteps = []cessationStep{
	{"Reduce by 50%", 0.5},
	{"Reduce by 75%", 0.75},
	{"Reduce by 90%", 0.9},
	{"Complete cessation", 1},
}

func lookup(t model.GoalType) (goalModel, bool) {
	m, ok := models[t]
	if !ok {
		return genericModel, false
	}
	return m, true
}

// Recognized reports whether t has a dedicated base-rate model.
func Recognized(t model.GoalType) bool {
	_, ok := models[t]
	return ok
}

func delta(g model.HealthGoal) float64 {
	return math.Abs(g.TargetValue - g.CurrentValue)
}

func muscleRate(p model.UserProfile) float64 {
	if p.FitnessLevel == model.FitnessBeginner {
		return muscleMonthlyRateBeginner
	}
	return muscleMonthlyRate
}

func fixedWeeks(weeks int) func(model.HealthGoal, model.UserProfile) int {
	return func(model.HealthGoal, model.UserProfile) int { return weeks }
}

func deltaPerWeek(g model.HealthGoal, _ model.UserProfile, weeks int) float64 {
	return delta(g) / float64(weeks)
}

func targetPerWeek(g model.HealthGoal, _ model.UserProfile, weeks int) float64 {
	return g.TargetValue / float64(weeks)
}

func amountTitle(verb string) func(model.HealthGoal, milestoneStep) string {
	return func(g model.HealthGoal, s milestoneStep) string {
		return fmt.Sprintf("%s%s %s", formatAmount(delta(g)*s.fraction()), unitOr(g, "kg"), verb)
	}
}

func unitOr(g model.HealthGoal, def string) string {
	if g.Unit == "" {
		return def
	}
	return g.Unit
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%d", int(math.Round(v)))
}

// ceilWeeks rounds up to whole weeks, absorbing float error from the
// multiplicative passes, and never returns less than one week.
func ceilWeeks(w float64) int {
	weeks := int(math.Ceil(w - 1e-9))
	if weeks < 1 {
		return 1
	}
	return weeks
}
