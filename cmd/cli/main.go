package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/care-rostering/cmd/cli/commands"
	"github.com/jakechorley/care-rostering/internal/config"
	"github.com/jakechorley/care-rostering/pkg/core/holidays"
	"github.com/jakechorley/care-rostering/pkg/utils/logging"
	"github.com/jakechorley/care-rostering/pkg/utils/metrics"
)

var (
	env         string
	configPath  string
	metricsFile string
	format      string
	app         *commands.AppContext
)

func main() {
	app = &commands.AppContext{
		Ctx: context.Background(),
		Out: os.Stdout,
	}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Care Rostering CLI - Match workers to shifts and cost shifts under the SCHADS award",
		Long:  `A CLI tool for ranking support workers against a shift and calculating SCHADS award costs and break compliance.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if app.Logger != nil {
				defer app.Logger.Sync()
			}
			if metricsFile != "" {
				if err := app.Recorder.WriteToTextfile(metricsFile); err != nil {
					return err
				}
				app.Logger.Debug("Metrics written", zap.String("path", metricsFile))
			}
			return nil
		},
		SilenceUsage: true,
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: rostering_config[.<env>].yaml in the current or home directory)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write calculation metrics to this file in Prometheus text format")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", commands.FormatJSON, "Output format: json or table")

	// Add all commands
	rootCmd.AddCommand(commands.MatchCmd(app))
	rootCmd.AddCommand(commands.AwardCmd(app))
	rootCmd.AddCommand(commands.RosterCmd(app))
	rootCmd.AddCommand(commands.RatesCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger, holiday calendar and metrics
func initApp() error {
	var err error

	if err := commands.ValidateFormat(format); err != nil {
		return err
	}
	app.Format = format

	// Load configuration before the logger so the logging section applies
	cfg, usedDefaults, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Debug("Starting application", zap.String("environment", env))
	if usedDefaults {
		app.Logger.Info("No config file found, using defaults")
	}

	// Build the public holiday calendar
	app.Calendar, err = holidays.NewCalendar(cfg.PublicHolidays)
	if err != nil {
		return fmt.Errorf("failed to build holiday calendar: %w", err)
	}
	app.Logger.Debug("Holiday calendar loaded", zap.Int("holidays", app.Calendar.Len()))

	app.Recorder = metrics.NewRecorder()

	return nil
}

// loadConfig loads the config from --config, or searches for it, falling back to defaults
func loadConfig() (*config.Config, bool, error) {
	if configPath != "" {
		cfg, err := config.LoadFromPath(configPath)
		return cfg, false, err
	}

	cfg, err := config.LoadWithEnv(env)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.Default(), true, nil
	}
	return cfg, false, err
}
