package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"timetrack/internal/app"
	"timetrack/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "timetrack",
		Short:         "Track work sessions and report time for today and this week",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(
		newActionCmd(&verbose, "start", "Start a new session", (*app.App).Start, false),
		newActionCmd(&verbose, "end", "End the running session", (*app.App).End, false),
		newActionCmd(&verbose, "report", "Show today's and this week's totals", (*app.App).Report, false),
		newActionCmd(&verbose, "since", "Show time since the last session ended", (*app.App).SinceLast, true),
	)
	return root
}

func newActionCmd(verbose *bool, use, short string, action func(*app.App, context.Context) error, hidden bool) *cobra.Command {
	return &cobra.Command{
		Use:    use,
		Short:  short,
		Args:   cobra.NoArgs,
		Hidden: hidden,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Log.Level, *verbose)
			slog.SetDefault(logger)
			logger.Debug("config loaded", slog.String("store", cfg.Store.Driver))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := app.New(ctx, logger, cfg, app.Options{
				In:  cmd.InOrStdin(),
				Out: cmd.OutOrStdout(),
			})
			if err != nil {
				logger.Error("failed to initialize app", slog.String("error", err.Error()))
				return err
			}
			defer a.Close()

			if err := action(a, ctx); err != nil {
				logger.Error(use+" failed", slog.String("error", err.Error()))
				return err
			}
			return nil
		},
	}
}

// loadConfig reads an optional .env file before the environment.
func loadConfig() (config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load .env file", slog.String("error", err.Error()))
	}
	cfg, err := config.Load()
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger writes to stderr so stdout carries only the dialogue. verbose
// overrides level.
func newLogger(level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		lvl = slog.LevelWarn
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
