package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"msgrisk/internal/config"
	"msgrisk/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	darkMode   bool

	// Set up by PersistentPreRunE
	cfg    *config.Config
	logs   *logging.Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "msgrisk",
	Short: "msgrisk - message risk analyzer",
	Long: `msgrisk sends a message to a risk scoring service and shows the
resulting report: risk tier, security score, per-category findings and the
reasons behind them. A per-device counter tracks scans made today.

Run without arguments to start the interactive analyzer.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logs != nil {
			_ = logs.Sync()
		}
	},
	RunE: runInteractive,
}

func init() {
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.msgrisk/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&darkMode, "dark", false, "Force the dark theme")

	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the raw service response as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeNoCount, "no-count", false, "Do not count this scan")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	rootCmd.AddCommand(analyzeCmd, counterCmd, configCmd)
}

// setup loads .env and config, validates it and builds the loggers.
// The interactive root logs to the configured file; subcommands log warnings
// to stderr.
func setup(cmd *cobra.Command) error {
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	if err := config.LoadDotEnv(".env", filepath.Join(config.DefaultDir(), ".env")); err != nil {
		return err
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if darkMode {
		loaded.UI.DarkMode = true
	}

	if cmd.HasParent() {
		loaded.Logging.File = ""
		loaded.Logging.Format = "console"
		loaded.Logging.Level = "warn"
	}
	if verbose {
		loaded.Logging.Level = "debug"
	}

	// config init must work even when the current file is broken.
	if cmd != configInitCmd {
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("config %s: %w", configPath, err)
		}
	}

	l, err := logging.New(loaded.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, logs, logger = loaded, l, l.For(logging.CategoryBoot)
	logger.Debug("config loaded",
		zap.String("path", configPath),
		zap.String("service", cfg.Service.URL),
		zap.String("backend", cfg.State.Backend),
	)
	return nil
}

// reportedError is a failure the user has already been told about.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func main() {
	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
