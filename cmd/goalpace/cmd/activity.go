package cmd

import (
	"github.com/spf13/cobra"

	"github.com/templui/goalpace/internal/app"
	"github.com/templui/goalpace/internal/model"
)

func ActivityCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Plan daily activities linked to goals",
	}
	userFlag(cmd, &userID)

	var activity model.Activity
	var goals []string
	plan := &cobra.Command{
		Use:          "plan",
		Short:        "Store an activity linked to one or more of the user's goals",
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			activity.RelatedGoals = model.NewStringSet(goals...)
			err := a.GoalService.PlanActivity(userID, &activity)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), activity)
		}),
	}
	plan.Flags().StringVar(&activity.Title, "title", "", "activity title")
	plan.Flags().IntVar(&activity.DayNumber, "day", 1, "day number in the plan")
	plan.Flags().StringSliceVar(&goals, "goals", nil, "related goal ids")
	plan.Flags().Float64Var(&activity.ImpactScore, "impact", 0.5, "impact score in [0, 1]")
	plan.Flags().Float64Var(&activity.ComplianceWeight, "weight", 0.5, "compliance weight in [0, 1]")
	_ = plan.MarkFlagRequired("title")
	_ = plan.MarkFlagRequired("goals")

	cmd.AddCommand(plan)
	return cmd
}

func ComplianceCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Record how planned activities went",
	}
	userFlag(cmd, &userID)

	var notes string
	record := &cobra.Command{
		Use:          "record <activity-id> <completed|partial|skipped|modified>",
		Short:        "Record an activity outcome and update the linked goals",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			res, err := a.GoalService.RecordCompliance(userID, args[0], args[1], notes)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		}),
	}
	record.Flags().StringVar(&notes, "notes", "", "free-form notes")

	cmd.AddCommand(record)
	return cmd
}
