package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/templui/goalpace/internal/app"
	"github.com/templui/goalpace/internal/config"
	"github.com/templui/goalpace/internal/logger"
)

func bootstrap() (*config.Config, *app.App, error) {
	cfg := config.Load()
	logger.Init(cfg.AppName, cfg.AppEnv, cfg.SentryDSN)

	a, err := app.New(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize app: %w", err)
	}
	return cfg, a, nil
}

func closeApp(a *app.App) {
	err := a.Close()
	if err != nil {
		slog.Error("failed to close app", "error", err)
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// withApp wraps a command body with app bootstrap and shutdown.
func withApp(fn func(cmd *cobra.Command, args []string, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		_, a, err := bootstrap()
		if err != nil {
			return err
		}
		defer closeApp(a)

		return fn(cmd, args, a)
	}
}

func userFlag(cmd *cobra.Command, userID *string) {
	cmd.PersistentFlags().StringVar(userID, "user", "", "user id")
	_ = cmd.MarkPersistentFlagRequired("user")
}
