package core

import (
	"context"
	"fmt"
	"time"

	"github.com/IvanShishkin/filecommander/internal/catalog"
	"github.com/IvanShishkin/filecommander/internal/config"
	"github.com/IvanShishkin/filecommander/internal/database"
	"github.com/IvanShishkin/filecommander/internal/report"
	"github.com/IvanShishkin/filecommander/pkg/models"
	"go.uber.org/zap"
)

// ProgressCallback is called to report scan progress
type ProgressCallback func(phase string, current, total int, message string)

// Scan phases reported through ProgressCallback
const (
	PhaseCataloging = "cataloging"
	PhaseFiltering  = "filtering"
	PhaseExporting  = "exporting"
	PhaseReporting  = "reporting"
)

// ScanResults is the outcome of one scan
type ScanResults struct {
	Catalog    *models.Catalog // everything under the root
	View       *models.Catalog // filtered and sorted newest first
	StartTime  time.Time
	Duration   time.Duration
	ReportPath string // "" when the report went to stdout
	Exported   bool   // catalog written to the database
}

// Scanner builds catalogs and renders them
type Scanner struct {
	config           *config.Config
	logger           *zap.Logger
	classifier       *catalog.Classifier
	reporter         *report.Generator
	progressCallback ProgressCallback
}

// NewScanner creates a new scanner instance. Extra categories from the
// config are added to the default classifier.
func NewScanner(cfg *config.Config, logger *zap.Logger) (*Scanner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	classifier := catalog.NewClassifier()
	if extra := cfg.ExtraCategories(); len(extra) > 0 {
		if err := classifier.Extend(extra); err != nil {
			return nil, fmt.Errorf("invalid categories: %w", err)
		}
	}

	return &Scanner{
		config:     cfg,
		logger:     logger,
		classifier: classifier,
		reporter:   report.NewGenerator(cfg, logger),
	}, nil
}

// SetProgressCallback sets the progress callback function
func (s *Scanner) SetProgressCallback(cb ProgressCallback) {
	s.progressCallback = cb
}

// Classifier returns the classifier used for new catalogs
func (s *Scanner) Classifier() *catalog.Classifier {
	return s.classifier
}

// reportProgress calls the progress callback if set
func (s *Scanner) reportProgress(phase string, current, total int, message string) {
	if s.progressCallback != nil {
		s.progressCallback(phase, current, total, message)
	}
}

// resolveRoot falls back to the configured root for an empty path
func (s *Scanner) resolveRoot(path string) string {
	if path == "" {
		path = s.config.Root
	}
	return config.ExpandPath(path)
}

// BuildCatalog catalogs path (the configured root when empty) without
// filtering, exporting or reporting
func (s *Scanner) BuildCatalog(path string) (*models.Catalog, error) {
	root := s.resolveRoot(path)

	s.logger.Info("Starting scan", zap.String("path", root))
	s.reportProgress(PhaseCataloging, 0, 0, "Walking "+root)

	builder := catalog.NewBuilder(s.classifier, s.logger)
	builder.SetProgressCallback(func(current, total int, file string) {
		s.reportProgress(PhaseCataloging, current, total, file)
	})

	return builder.Build(root)
}

// Scan catalogs path, applies the configured filter, exports to the
// database when one is configured and renders the report
func (s *Scanner) Scan(ctx context.Context, path string) (*ScanResults, error) {
	results := &ScanResults{StartTime: time.Now()}

	cat, err := s.BuildCatalog(path)
	if err != nil {
		return nil, err
	}
	results.Catalog = cat

	s.reportProgress(PhaseFiltering, 0, cat.Len(), "Applying filters")
	filter := s.config.Filter()
	filter.Now = results.StartTime
	results.View = cat.Apply(filter)
	s.reportProgress(PhaseFiltering, results.View.Len(), cat.Len(), fmt.Sprintf("%d of %d files match", results.View.Len(), cat.Len()))

	if s.config.DatabasePath != "" {
		s.reportProgress(PhaseExporting, 0, cat.Len(), "Exporting to "+s.config.DatabasePath)
		if err := database.Export(ctx, s.config.DatabasePath, cat); err != nil {
			return results, fmt.Errorf("failed to export catalog: %w", err)
		}
		results.Exported = true
		s.logger.Info("Catalog exported",
			zap.String("database", s.config.DatabasePath),
			zap.Int("records", cat.Len()))
	}

	results.Duration = time.Since(results.StartTime)

	s.reportProgress(PhaseReporting, 0, 0, "Generating report")
	reportPath, err := s.reporter.Generate(results.View)
	if err != nil {
		return results, err
	}
	results.ReportPath = reportPath

	s.logger.Info("Scan completed",
		zap.String("scan_id", cat.ID().String()),
		zap.Duration("duration", results.Duration),
		zap.Int("files", cat.Len()),
		zap.Int("matched", results.View.Len()))

	return results, nil
}
