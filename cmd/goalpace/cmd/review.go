package cmd

import (
	"github.com/spf13/cobra"
)

func ReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "review",
		Short:        "Run one adaptive review over all active goals and exit",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeApp(a)

			report, err := a.ReviewService.Run(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), report)
		},
	}
}

func SummaryCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:          "summary",
		Short:        "Print a user's progress summary as JSON",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, a, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeApp(a)

			summary, err := a.GoalService.Summary(userID)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
