package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/templui/goalpace/internal/app"
	"github.com/templui/goalpace/internal/compliance"
	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/service"
)

type goalResult struct {
	Goal     *model.HealthGoal          `json:"goal"`
	Timeline *model.TimelineCalculation `json:"timeline,omitempty"`
}

type adjustmentResult struct {
	Goal       *model.HealthGoal      `json:"goal"`
	Adjustment *compliance.Adjustment `json:"adjustment"`
}

type goalCreateFlags struct {
	title       string
	description string
	goalType    string
	current     float64
	target      float64
	unit        string
	preference  string
	start       string
	targetDate  string
	priority    int
	barriers    []string
}

func (f goalCreateFlags) build() (model.HealthGoal, error) {
	goal := model.HealthGoal{
		GoalType:           model.GoalType(f.goalType),
		Title:              f.title,
		Description:        f.description,
		CurrentValue:       f.current,
		TargetValue:        f.target,
		Unit:               f.unit,
		TimelinePreference: model.TimelinePreference(f.preference),
		Priority:           f.priority,
		Barriers:           model.NewStringSet(f.barriers...),
	}

	var err error
	if f.start != "" {
		goal.StartDate, err = time.Parse(time.DateOnly, f.start)
		if err != nil {
			return goal, fmt.Errorf("invalid --start: %w", err)
		}
	}
	if f.targetDate != "" {
		goal.TargetDate, err = time.Parse(time.DateOnly, f.targetDate)
		if err != nil {
			return goal, fmt.Errorf("invalid --target-date: %w", err)
		}
	}
	return goal, nil
}

// GoalCmd manages stored goals through the goal service.
func GoalCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Create, inspect and update a user's goals",
	}
	userFlag(cmd, &userID)

	cmd.AddCommand(goalCreateCmd(&userID))

	var sortBy string
	list := &cobra.Command{
		Use:          "list",
		Short:        "List the user's goals",
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			goals, err := a.GoalService.Goals(userID, sortBy)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), goals)
		}),
	}
	list.Flags().StringVar(&sortBy, "sort", repository.GoalSortRecent, "recent, progress or priority")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:          "show <goal-id>",
		Short:        "Print one goal",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			goal, err := a.GoalService.ByID(userID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), goal)
		}),
	})

	transitions := []struct {
		use   string
		short string
		fn    func(*service.GoalService, string, string) (*model.HealthGoal, error)
	}{
		{"pause", "Pause an active goal", (*service.GoalService).Pause},
		{"resume", "Resume a paused goal", (*service.GoalService).Resume},
		{"complete", "Mark a goal completed", (*service.GoalService).Complete},
		{"cancel", "Cancel a goal", (*service.GoalService).Cancel},
	}
	for _, t := range transitions {
		cmd.AddCommand(&cobra.Command{
			Use:          t.use + " <goal-id>",
			Short:        t.short,
			Args:         cobra.ExactArgs(1),
			SilenceUsage: true,
			RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
				goal, err := t.fn(a.GoalService, userID, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), goal)
			}),
		})
	}

	cmd.AddCommand(&cobra.Command{
		Use:          "reestimate <goal-id>",
		Short:        "Recompute the timeline from the goal's current value",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			goal, calc, err := a.GoalService.Reestimate(userID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), goalResult{Goal: goal, Timeline: calc})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "adjustment <goal-id>",
		Short:        "Evaluate the compliance window without changing the goal",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			adj, err := a.GoalService.Adjustment(userID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), adj)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "adjust <goal-id>",
		Short:        "Apply the compliance adjustment to the stored timeline",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			goal, adj, err := a.GoalService.ApplyAdjustment(userID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), adjustmentResult{Goal: goal, Adjustment: adj})
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "history <goal-id>",
		Short:        "Print the goal's progress history",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			history, err := a.GoalService.History(userID, args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), history)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "milestone <goal-id> <milestone-id>",
		Short:        "Mark a milestone completed",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			goal, err := a.GoalService.CompleteMilestone(userID, args[0], args[1])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), goal)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:          "delete <goal-id>",
		Short:        "Delete a goal and its history",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			return a.GoalService.Delete(userID, args[0])
		}),
	})

	return cmd
}

func goalCreateCmd(userID *string) *cobra.Command {
	var f goalCreateFlags

	cmd := &cobra.Command{
		Use:          "create",
		Short:        "Estimate and store a new goal",
		SilenceUsage: true,
		RunE: withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
			draft, err := f.build()
			if err != nil {
				return err
			}

			goal, calc, err := a.GoalService.Create(*userID, draft)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), goalResult{Goal: goal, Timeline: calc})
		}),
	}

	cmd.Flags().StringVar(&f.goalType, "type", string(model.GoalTypeWeightLoss), "goal type")
	cmd.Flags().StringVar(&f.title, "title", "", "title, defaults to the goal type")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().Float64Var(&f.current, "current", 0, "current value")
	cmd.Flags().Float64Var(&f.target, "target", 0, "target value")
	cmd.Flags().StringVar(&f.unit, "unit", "", "unit of current and target values")
	cmd.Flags().StringVar(&f.preference, "preference", string(model.PreferenceModerate), "gradual, moderate or aggressive")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&f.targetDate, "target-date", "", "target date (YYYY-MM-DD), default from the estimate")
	cmd.Flags().IntVar(&f.priority, "priority", 0, "priority, 1 is highest")
	cmd.Flags().StringSliceVar(&f.barriers, "barriers", nil, "known barriers")

	return cmd
}
