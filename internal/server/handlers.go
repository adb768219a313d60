package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/IvanShishkin/filecommander/internal/filesystem"
	"github.com/IvanShishkin/filecommander/internal/report"
	"github.com/IvanShishkin/filecommander/pkg/models"
	"go.uber.org/zap"
)

const noCatalogMessage = "No catalog yet, POST /api/scan first"

type scanRequest struct {
	Path string `json:"path"`
}

type moveRequest struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
}

// ScanSummary describes a freshly built catalog
type ScanSummary struct {
	ScanID     string            `json:"scan_id"`
	Root       string            `json:"root"`
	ScannedAt  time.Time         `json:"scanned_at"`
	TotalFiles int               `json:"total_files"`
	TotalSize  int64             `json:"total_size"`
	FileTypes  []models.FileType `json:"file_types"`
}

// FileTypeInfo is one row of the classifier table
type FileTypeInfo struct {
	Type       models.FileType `json:"type"`
	Extensions []string        `json:"extensions"`
}

// FileTypesResponse lists the known categories and those present in the
// current catalog
type FileTypesResponse struct {
	Categories []FileTypeInfo     `json:"categories"`
	Present    []models.FileType `json:"present"`
}

// handleScan handles POST /api/scan with an optional {"path": "..."} body
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	cat, err := s.scanner.BuildCatalog(req.Path)
	if err != nil {
		s.logger.Warn("Scan failed", zap.String("path", req.Path), zap.Error(err))
		sendError(w, err.Error(), statusFor(err))
		return
	}
	s.setCatalog(cat)

	sendSuccess(w, fmt.Sprintf("Cataloged %d file(s)", cat.Len()), ScanSummary{
		ScanID:     cat.ID().String(),
		Root:       cat.Root(),
		ScannedAt:  cat.ScannedAt(),
		TotalFiles: cat.Len(),
		TotalSize:  cat.TotalSize(),
		FileTypes:  cat.FileTypes(),
	})
}

// handleCatalog handles GET /api/catalog?type=...&min_size_mb=...&stale_days=...&limit=...
func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}
	sendSuccess(w, "", report.NewCatalogDocument(view))
}

// handleExport handles GET /api/catalog/export with the same query as
// /api/catalog and returns CSV
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	view, ok := s.filteredView(w, r)
	if !ok {
		return
	}

	// Nothing is written until the CSV is complete
	var buf bytes.Buffer
	if err := s.exportCSV(&buf, view); err != nil {
		s.logger.Error("Failed to export catalog", zap.Error(err))
		sendError(w, "Failed to export catalog", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"catalog-%s.csv\"", view.ID()))
	w.Write(buf.Bytes())
}

// handleFileTypes handles GET /api/file-types
func (s *Server) handleFileTypes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	classifier := s.scanner.Classifier()
	resp := FileTypesResponse{Present: []models.FileType{}}
	for _, ft := range models.FileTypes {
		resp.Categories = append(resp.Categories, FileTypeInfo{
			Type:       ft,
			Extensions: classifier.Extensions(ft),
		})
	}
	if cat := s.Catalog(); cat != nil {
		resp.Present = cat.FileTypes()
	}

	sendSuccess(w, "", resp)
}

// handleMove handles POST /api/move with {"source": "...", "destination": "..."}.
// The catalog is left as it is; scan again to see the move.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Source == "" || req.Destination == "" {
		sendError(w, "source and destination are required", http.StatusBadRequest)
		return
	}

	target, err := filesystem.MoveFile(req.Source, req.Destination)
	if err != nil {
		s.logger.Warn("Move failed",
			zap.String("source", req.Source),
			zap.String("destination", req.Destination),
			zap.Error(err))
		sendError(w, err.Error(), statusFor(err))
		return
	}

	s.logger.Info("File moved", zap.String("source", req.Source), zap.String("target", target))
	sendSuccess(w, "File moved", map[string]string{"path": target})
}

// filteredView applies the request's filter to the current catalog. It
// writes the error response itself and reports whether to continue.
func (s *Server) filteredView(w http.ResponseWriter, r *http.Request) (*models.Catalog, bool) {
	if r.Method != http.MethodGet {
		sendError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}

	cat := s.Catalog()
	if cat == nil {
		sendError(w, noCatalogMessage, http.StatusConflict)
		return nil, false
	}

	filter, limit, err := parseFilter(r.URL.Query())
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return cat.Apply(filter).Head(limit), true
}

// parseFilter reads type (repeatable or comma separated), min_size_mb,
// stale_days and limit
func parseFilter(q url.Values) (models.Filter, int, error) {
	var filter models.Filter

	for _, raw := range q["type"] {
		for _, name := range strings.Split(raw, ",") {
			name = strings.ToLower(strings.TrimSpace(name))
			if name == "" {
				continue
			}
			ft := models.FileType(name)
			if !ft.IsValid() {
				return filter, 0, fmt.Errorf("unknown file type: %s", name)
			}
			filter.FileTypes = append(filter.FileTypes, ft)
		}
	}

	if v := q.Get("min_size_mb"); v != "" {
		mb, err := strconv.ParseFloat(v, 64)
		if err != nil || mb < 0 {
			return filter, 0, fmt.Errorf("invalid min_size_mb: %s", v)
		}
		filter.MinSizeMB = mb
	}

	if v := q.Get("stale_days"); v != "" {
		days, err := strconv.Atoi(v)
		if err != nil || days < 0 {
			return filter, 0, fmt.Errorf("invalid stale_days: %s", v)
		}
		filter.StaleDays = days
	}

	limit := 0
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return filter, 0, fmt.Errorf("invalid limit: %s", v)
		}
		limit = n
	}

	filter.Now = time.Now()
	return filter, limit, nil
}
