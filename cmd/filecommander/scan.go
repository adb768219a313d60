package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IvanShishkin/filecommander/internal/config"
	"github.com/IvanShishkin/filecommander/internal/core"
	"github.com/IvanShishkin/filecommander/internal/report"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// scanCmd creates the scan command
func scanCmd() *cobra.Command {
	var (
		fileTypes    []string
		minSizeMB    float64
		staleDays    int
		reportFormat string
		outputFile   string
		limit        int
		dbPath       string
	)

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Catalog a directory tree",
		Long: `Recursively catalog every regular file under path (the configured root,
~/Downloads by default), filter the catalog and render it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			// Override config with CLI flags
			flags := cmd.Flags()
			if flags.Changed("types") {
				cfg.FileTypes = fileTypes
			}
			if flags.Changed("min-size-mb") {
				cfg.MinSizeMB = minSizeMB
			}
			if flags.Changed("stale-days") {
				cfg.StaleDays = staleDays
			}
			if flags.Changed("report") {
				cfg.ReportFormat = reportFormat
			}
			if flags.Changed("output") {
				cfg.OutputFile = outputFile
			}
			if flags.Changed("limit") {
				cfg.Limit = limit
			}
			if flags.Changed("db") {
				cfg.DatabasePath = dbPath
			}

			if err := cfg.Validate(); err != nil {
				pterm.Error.Printfln("Invalid parameter: %s", err)
				return err
			}

			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			scanner, err := core.NewScanner(cfg, logger)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			spinner := newSpinner(cfg)
			scanner.SetProgressCallback(func(phase string, current, total int, message string) {
				if spinner == nil {
					return
				}
				switch phase {
				case core.PhaseCataloging:
					if total > 0 {
						spinner.UpdateText(fmt.Sprintf("Cataloging %d/%d", current, total))
					} else {
						spinner.UpdateText(message)
					}
				case core.PhaseFiltering, core.PhaseExporting:
					spinner.UpdateText(message)
				case core.PhaseReporting:
					spinner.Stop()
					spinner = nil
				}
			})

			results, err := scanner.Scan(ctx, path)
			if spinner != nil {
				spinner.Stop()
			}
			if err != nil {
				logger.Error("Scan failed", zap.Error(err))
				return err
			}

			if results.ReportPath != "" || results.Exported {
				printSummary(results, cfg)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVarP(&fileTypes, "types", "t", nil, "Keep only these file types (image,video,audio,document,data,code,archive,other)")
	flags.Float64Var(&minSizeMB, "min-size-mb", 0, "Keep files of at least this many MiB")
	flags.IntVar(&staleDays, "stale-days", 0, "Keep files not accessed for this many days")
	flags.StringVarP(&reportFormat, "report", "r", config.FormatTable, "Report format (table, csv, json, yaml, md, html)")
	flags.StringVarP(&outputFile, "output", "o", "", "Report file, - for stdout")
	flags.IntVarP(&limit, "limit", "n", 50, "Rows shown by the table report, 0 for all")
	flags.StringVar(&dbPath, "db", "", "Export the full catalog to this SQLite database")

	return cmd
}

// newSpinner returns nil when the report itself goes to stdout
func newSpinner(cfg *config.Config) *pterm.SpinnerPrinter {
	if cfg.ReportFormat != config.FormatTable && cfg.OutputFile == report.Stdout {
		return nil
	}
	spinner, err := pterm.DefaultSpinner.WithStyle(pterm.NewStyle(pterm.FgCyan)).
		WithSequence("⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏").
		WithDelay(100 * time.Millisecond).WithRemoveWhenDone(true).
		WithWriter(os.Stderr).
		Start("Scanning...")
	if err != nil {
		return nil
	}
	return spinner
}

func printSummary(results *core.ScanResults, cfg *config.Config) {
	fmt.Println()
	pterm.Printfln("  %s %d of %d files", pterm.Gray("Matched:"), results.View.Len(), results.Catalog.Len())
	pterm.Printfln("  %s %s", pterm.Gray("Duration:"), report.FormatDuration(results.Duration))
	if results.ReportPath != "" {
		pterm.Printfln("  %s %s", pterm.Gray("Report:"), pterm.LightMagenta(results.ReportPath))
	}
	if results.Exported {
		pterm.Printfln("  %s %s", pterm.Gray("Database:"), cfg.DatabasePath)
	}
	fmt.Println()
}
