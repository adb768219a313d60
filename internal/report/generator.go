package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/IvanShishkin/filecommander/internal/config"
	"github.com/IvanShishkin/filecommander/pkg/models"
	"go.uber.org/zap"
)

// Stdout as OutputFile writes the report to standard output
const Stdout = "-"

// timestampLayout is used for every timestamp written to a report
const timestampLayout = time.RFC3339Nano

// FormatSize formats a byte count to a human-readable string
func FormatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.2fs", mins, secs)
}

// Generator renders catalogs in various formats
type Generator struct {
	config *config.Config
	logger *zap.Logger
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		config: cfg,
		logger: logger,
	}
}

// Generate renders cat in the configured format. The table format prints
// to stdout; other formats go to the configured output file, a generated
// file name when none is set, or stdout when the output file is "-".
// It returns the absolute path of the written file, or "" for stdout.
func (g *Generator) Generate(cat *models.Catalog) (string, error) {
	format := g.config.ReportFormat

	if format == "" || format == config.FormatTable {
		return "", g.Render(os.Stdout, format, cat)
	}

	outputFile := g.config.OutputFile
	if outputFile == Stdout {
		return "", g.Render(os.Stdout, format, cat)
	}

	// Generate default filename if not specified
	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("FILECOMMANDER-CATALOG-%s.%s", timestamp, format)
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile),
		zap.Int("records", cat.Len()))

	f, err := os.Create(outputFile)
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}

	if err := g.Render(f, format, cat); err != nil {
		f.Close()
		os.Remove(outputFile)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write report file: %w", err)
	}

	// Get absolute path
	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

// Render writes cat to w in the given format
func (g *Generator) Render(w io.Writer, format string, cat *models.Catalog) error {
	var err error
	switch format {
	case "", config.FormatTable:
		err = WriteTable(w, cat, g.config.Limit)
	case config.FormatCSV:
		err = WriteCSV(w, cat)
	case config.FormatJSON:
		err = WriteJSON(w, cat)
	case config.FormatYAML:
		err = WriteYAML(w, cat)
	case config.FormatMarkdown:
		err = WriteMarkdown(w, cat)
	case config.FormatHTML:
		err = WriteHTML(w, cat)
	default:
		return fmt.Errorf("unknown report format: %s", format)
	}

	if err != nil {
		return fmt.Errorf("failed to generate %s report: %w", format, err)
	}
	return nil
}

// formatTime renders t, leaving unknown times empty
func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timestampLayout)
}
