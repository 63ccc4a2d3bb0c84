package timeline

import "github.com/templui/goalpace/internal/model"

const (
	minSuccess = 20
	maxSuccess = 95

	// aggressive pacing never drops the estimate below this in the first pass
	preferenceSuccessFloor = 30
)

func clampSuccess(p int) int {
	return min(maxSuccess, max(minSuccess, p))
}

func weightLossSuccess(p model.UserProfile, weeks int) int {
	probability := 70
	if p.FitnessLevel == model.FitnessBeginner {
		probability -= 10
	}
	if p.HasHealthConditions() {
		probability -= 5
	}
	if p.ExercisesNever() {
		probability -= 15
	}
	if weeks > 20 {
		probability -= 10
	}
	return clampSuccess(probability)
}

func weightGainSuccess(p model.UserProfile, weeks int) int {
	probability := 65
	if p.FitnessLevel == model.FitnessAdvanced {
		probability += 10
	}
	if p.ExercisesDaily() {
		probability += 10
	}
	if weeks > 16 {
		probability -= 5
	}
	return clampSuccess(probability)
}

func muscleBuildingSuccess(p model.UserProfile, weeks int) int {
	probability := 60
	if p.FitnessLevel == model.FitnessAdvanced {
		probability += 15
	}
	if p.ExercisesDaily() {
		probability += 10
	}
	if p.Age > 0 && p.Age < 30 {
		probability += 5
	}
	if weeks > 24 {
		probability -= 10
	}
	return clampSuccess(probability)
}

func fitnessSuccess(p model.UserProfile, weeks int) int {
	probability := 75
	if p.FitnessLevel == model.FitnessBeginner {
		probability += 10
	}
	if p.ExercisesNever() {
		probability -= 15
	}
	if weeks <= 8 {
		probability += 5
	}
	return clampSuccess(probability)
}

func sleepSuccess(p model.UserProfile, _ int) int {
	probability := 80
	if p.StressLevel == model.StressHigh {
		probability -= 10
	}
	if p.SleepHours > 0 && p.SleepHours < 6 {
		probability -= 5
	}
	return clampSuccess(probability)
}

func stressReductionSuccess(p model.UserProfile, _ int) int {
	probability := 70
	if p.StressLevel == model.StressHigh {
		probability -= 15
	}
	if p.ExercisesDaily() {
		probability += 10
	}
	if p.HasHealthConditions() {
		probability -= 5
	}
	return clampSuccess(probability)
}

func smokingCessationSuccess(p model.UserProfile, weeks int) int {
	// lowest baseline of all goal types
	probability := 50
	if p.StressLevel == model.StressLow {
		probability += 10
	}
	if p.ExercisesDaily() {
		probability += 10
	}
	if weeks > 16 {
		probability += 5
	}
	return clampSuccess(probability)
}

func alcoholReductionSuccess(p model.UserProfile, _ int) int {
	probability := 70
	if p.StressLevel == model.StressHigh {
		probability -= 10
	}
	if p.ExercisesDaily() {
		probability += 5
	}
	return clampSuccess(probability)
}
