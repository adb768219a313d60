package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/IvanShishkin/filecommander/internal/core"
	"github.com/IvanShishkin/filecommander/internal/report"
	"github.com/IvanShishkin/filecommander/pkg/models"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// Server exposes the catalog of the most recent scan over HTTP. The
// catalog lives only for the lifetime of the process.
type Server struct {
	scanner   *core.Scanner
	logger    *zap.Logger
	exportCSV func(io.Writer, *models.Catalog) error

	mu      sync.RWMutex
	catalog *models.Catalog
}

// New creates a server that scans with scanner
func New(scanner *core.Scanner, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		scanner:   scanner,
		logger:    logger,
		exportCSV: report.WriteCSV,
	}
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/scan", s.logRequests(s.handleScan))
	mux.HandleFunc("/api/catalog", s.logRequests(s.handleCatalog))
	mux.HandleFunc("/api/catalog/export", s.logRequests(s.handleExport))
	mux.HandleFunc("/api/file-types", s.logRequests(s.handleFileTypes))
	mux.HandleFunc("/api/move", s.logRequests(s.handleMove))

	return mux
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// Catalog returns the current catalog, or nil before the first scan
func (s *Server) Catalog() *models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

func (s *Server) setCatalog(cat *models.Catalog) {
	s.mu.Lock()
	s.catalog = cat
	s.mu.Unlock()
}

// logRequests logs method, path, status and duration of each request
func (s *Server) logRequests(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		s.logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)))
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
