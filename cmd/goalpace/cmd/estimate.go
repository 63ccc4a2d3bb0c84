package cmd

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/timeline"
)

type estimateFlags struct {
	goalType   string
	current    float64
	target     float64
	unit       string
	preference string
	start      string
	fitness    string
	smoking    string
	exercise   string
	sleepHours float64
	stress     string
	conditions []string
}

// EstimateCmd runs the timeline estimator on a goal described by flags,
// without touching the database.
func EstimateCmd() *cobra.Command {
	var f estimateFlags

	cmd := &cobra.Command{
		Use:          "estimate",
		Short:        "Estimate a realistic timeline for a goal",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			goal, profile, err := f.build()
			if err != nil {
				return err
			}

			err = timeline.Validate(goal)
			if err != nil {
				return err
			}

			return printJSON(cmd.OutOrStdout(), timeline.Estimate(goal, profile))
		},
	}

	cmd.Flags().StringVar(&f.goalType, "type", string(model.GoalTypeWeightLoss), "goal type")
	cmd.Flags().Float64Var(&f.current, "current", 0, "current value")
	cmd.Flags().Float64Var(&f.target, "target", 0, "target value")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unit of current and target values")
	cmd.Flags().StringVar(&f.preference, "preference", string(model.PreferenceModerate), "gradual, moderate or aggressive")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&f.fitness, "fitness", string(model.FitnessBeginner), "beginner, intermediate or advanced")
	cmd.Flags().StringVar(&f.smoking, "smoking", "", "smoking status")
	cmd.Flags().StringVar(&f.exercise, "exercise", "", "exercise frequency")
	cmd.Flags().Float64Var(&f.sleepHours, "sleep-hours", 0, "average sleep hours")
	cmd.Flags().StringVar(&f.stress, "stress", "", "stress level")
	cmd.Flags().StringSliceVar(&f.conditions, "conditions", nil, "health conditions")

	return cmd
}

func (f estimateFlags) build() (model.HealthGoal, model.UserProfile, error) {
	goal := model.HealthGoal{
		GoalType:           model.GoalType(strings.TrimSpace(f.goalType)),
		CurrentValue:       f.current,
		TargetValue:        f.target,
		Unit:               f.unit,
		TimelinePreference: model.TimelinePreference(f.preference),
	}
	if f.start != "" {
		start, err := time.Parse(time.DateOnly, f.start)
		if err != nil {
			return model.HealthGoal{}, model.UserProfile{}, err
		}
		goal.StartDate = start
	}

	profile := model.UserProfile{
		FitnessLevel:     model.FitnessLevel(f.fitness),
		HealthConditions: model.NewStringSet(f.conditions...),
		LifestyleFactors: model.LifestyleFactors{
			SmokingStatus:     f.smoking,
			ExerciseFrequency: f.exercise,
			SleepHours:        f.sleepHours,
			StressLevel:       f.stress,
		},
	}

	return goal, profile, nil
}
