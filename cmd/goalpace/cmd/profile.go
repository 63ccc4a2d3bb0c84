package cmd

import (
	"github.com/spf13/cobra"

	"github.com/templui/goalpace/internal/app"
	"github.com/templui/goalpace/internal/model"
)

func ProfileCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or replace a user's profile",
	}
	userFlag(cmd, &userID)

	var p model.UserProfile
	set := &cobra.Command{
		Use:          "set",
		Short:        "Create or replace the profile used for estimates",
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			p.UserID = userID
			err := a.ProfileService.Save(&p)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		}),
	}

	var fitness string
	var conditions []string
	set.Flags().IntVar(&p.Age, "age", 0, "age in years")
	set.Flags().StringVar(&p.Gender, "gender", "", "gender")
	set.Flags().Float64Var(&p.HeightCM, "height", 0, "height in cm")
	set.Flags().Float64Var(&p.WeightKG, "weight", 0, "weight in kg")
	set.Flags().StringVar(&fitness, "fitness", string(model.FitnessBeginner), "beginner, intermediate or advanced")
	set.Flags().StringSliceVar(&conditions, "conditions", nil, "health conditions")
	set.Flags().StringVar(&p.SmokingStatus, "smoking", "", "smoking status")
	set.Flags().StringVar(&p.AlcoholConsumption, "alcohol", "", "alcohol consumption")
	set.Flags().StringVar(&p.ExerciseFrequency, "exercise", "", "exercise frequency")
	set.Flags().Float64Var(&p.SleepHours, "sleep-hours", 0, "average sleep hours")
	set.Flags().StringVar(&p.StressLevel, "stress", "", "stress level")
	set.PreRun = func(cmd *cobra.Command, args []string) {
		p.FitnessLevel = model.FitnessLevel(fitness)
		p.HealthConditions = model.NewStringSet(conditions...)
	}

	show := &cobra.Command{
		Use:          "show",
		Short:        "Print the stored profile",
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			profile, err := a.ProfileService.ByUserID(userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), profile)
		}),
	}

	cmd.AddCommand(set, show)
	return cmd
}
