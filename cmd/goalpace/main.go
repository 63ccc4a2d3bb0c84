package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/templui/goalpace/cmd/goalpace/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "goalpace",
		Short: "Goal timelines and adaptive compliance review",
	}

	rootCmd.AddCommand(cmd.WorkerCmd())
	rootCmd.AddCommand(cmd.ReviewCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())
	rootCmd.AddCommand(cmd.EstimateCmd())
	rootCmd.AddCommand(cmd.SummaryCmd())
	rootCmd.AddCommand(cmd.ProfileCmd())
	rootCmd.AddCommand(cmd.GoalCmd())
	rootCmd.AddCommand(cmd.ActivityCmd())
	rootCmd.AddCommand(cmd.ComplianceCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
