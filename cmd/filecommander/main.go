package main

import (
	"fmt"
	"os"

	"github.com/IvanShishkin/filecommander/internal/config"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version    = "0.1.0"
	logger     *zap.Logger
	verbose    bool
	configFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "filecommander",
		Short: "File Commander - catalog, filter and tidy a directory tree",
		Long: `Recursively catalogs the files under a directory (size, timestamps,
extension and category), filters and exports the catalog, and moves
single files between directories.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				logger.Sync()
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ./filecommander.yaml)")

	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(moveCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(typesCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger builds a development logger for -v and an errors-only JSON
// logger on stderr otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		Encoding:         "json",
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    zap.NewProductionEncoderConfig(),
	}
	return cfg.Build()
}

// loadConfig loads the configuration named by --config
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		logger.Error("Failed to load config", zap.Error(err))
		return nil, err
	}
	return cfg, nil
}

func printBanner() {
	fmt.Println()
	pterm.DefaultBasicText.Println(pterm.Bold.Sprint(pterm.FgLightMagenta.Sprint("FILE COMMANDER")))
	pterm.DefaultBasicText.Println(pterm.Gray("v" + version))
	fmt.Println()
}
