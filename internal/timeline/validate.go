package timeline

import (
	"errors"
	"fmt"

	"github.com/templui/goalpace/internal/model"
)

var ErrInvalidGoalDefinition = errors.New("invalid goal definition")

// Validate rejects goal declarations whose values cannot describe a distance
// to close. Estimate itself never fails, so callers run this first.
func Validate(g model.HealthGoal) error {
	if g.Priority != 0 && (g.Priority < 1 || g.Priority > 5) {
		return invalid("priority must be between 1 and 5, got %d", g.Priority)
	}
	if !g.StartDate.IsZero() && !g.TargetDate.IsZero() && g.TargetDate.Before(g.StartDate) {
		return invalid("target date is before start date")
	}

	switch g.GoalType {
	case model.GoalTypeWeightLoss, model.GoalTypeAlcoholReduction:
		if g.TargetValue >= g.CurrentValue {
			return invalid("target value %g must be below current value %g", g.TargetValue, g.CurrentValue)
		}
	case model.GoalTypeWeightGain, model.GoalTypeMuscleBuilding:
		if g.TargetValue <= g.CurrentValue {
			return invalid("target value %g must be above current value %g", g.TargetValue, g.CurrentValue)
		}
	case model.GoalTypeSleepImprovement:
		if g.TargetValue <= 0 || g.TargetValue > 24 {
			return invalid("sleep target must be between 0 and 24 hours")
		}
		if g.TargetValue == g.CurrentValue {
			return invalid("target value equals current value")
		}
	case model.GoalTypeSmokingCessation:
		if g.CurrentValue <= 0 {
			return invalid("current cigarette count must be positive")
		}
		if g.TargetValue >= g.CurrentValue {
			return invalid("target value %g must be below current value %g", g.TargetValue, g.CurrentValue)
		}
	case model.GoalTypeStressReduction:
		if g.TargetValue == g.CurrentValue {
			return invalid("target value equals current value")
		}
	default:
		if g.TargetValue <= 0 {
			return invalid("target value must be positive")
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidGoalDefinition, fmt.Sprintf(format, args...))
}
