package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/templui/goalpace/internal/scheduler"
)

func WorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "worker",
		Short:        "Run the scheduled adaptive review until interrupted",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, a, err := bootstrap()
			if err != nil {
				return err
			}
			defer closeApp(a)

			m, err := scheduler.NewManager()
			if err != nil {
				return err
			}

			err = m.RegisterReview(cfg.ReviewSchedule, a.ReviewService)
			if err != nil {
				return err
			}

			m.Start()
			defer func() {
				if err := m.Stop(); err != nil {
					slog.Error("scheduler stop failed", "error", err)
				}
			}()

			if cfg.ReviewOnStart {
				err = m.RunReviewNow()
				if err != nil {
					return fmt.Errorf("failed to trigger review: %w", err)
				}
			}

			next, err := m.NextReview()
			if err == nil {
				slog.Info("worker running", "env", cfg.AppEnv, "nextReview", next)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			slog.Info("worker shutting down")
			return nil
		},
	}
}
