package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bazi/internal/config"
)

var (
	// Global flags
	verbose    bool
	configPath string
	pretty     bool

	// Loaded configuration
	cfg *config.Config

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bazi",
	Short: "bazi - Four Pillars sexagenary calculator",
	Long: `bazi computes Four Pillars (八字) charts from civil birth instants.

It locates the governing solar terms astronomically, optionally corrects
the instant to true solar time for the birth longitude, and derives the
ten gods, day-master strength, and luck cycle from the resolved pillars.

Run without arguments to start the interactive prompt.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		logger.Debug("Configuration loaded",
			zap.Float64("meridian", cfg.Meridian),
			zap.Int("sect", cfg.Sect))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive prompt
		return runPrompt(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "Config file path")
	rootCmd.PersistentFlags().BoolVar(&pretty, "pretty", true, "Styled terminal output")

	rootCmd.AddCommand(chartCmd)
	rootCmd.AddCommand(luckCmd)
	rootCmd.AddCommand(termsCmd)
	rootCmd.AddCommand(batchCmd)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "bazi.yaml"
	}
	return home + "/.bazi/config.yaml"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
