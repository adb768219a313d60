package server

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/IvanShishkin/filecommander/internal/config"
	"github.com/IvanShishkin/filecommander/internal/core"
	"github.com/IvanShishkin/filecommander/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, root string) *Server {
	t.Helper()
	scanner, err := core.NewScanner(&config.Config{Root: root}, zaptest.NewLogger(t))
	require.NoError(t, err)
	return New(scanner, zaptest.NewLogger(t))
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("x", size)), 0644))
}

func do(t *testing.T, h http.Handler, method, target string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func fixtureTree(t *testing.T) string {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "notes.txt"), 10)
	writeFile(t, filepath.Join(root, "pics", "a.jpg"), 20)
	writeFile(t, filepath.Join(root, "pics", "b.png"), 2*1024*1024)
	writeFile(t, filepath.Join(root, "song.mp3"), 5)
	return root
}

func TestCatalog_BeforeScan(t *testing.T) {
	s := newTestServer(t, t.TempDir())

	rec, env := do(t, s.Handler(), http.MethodGet, "/api/catalog", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
}

func TestScanThenFilteredCatalog(t *testing.T) {
	root := fixtureTree(t)
	s := newTestServer(t, root)
	h := s.Handler()

	rec, env := do(t, h, http.MethodPost, "/api/scan", map[string]string{"path": root})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.True(t, env.Success)

	var summary ScanSummary
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, 4, summary.TotalFiles)
	assert.Equal(t, []models.FileType{models.FileTypeAudio, models.FileTypeDocument, models.FileTypeImage}, summary.FileTypes)

	rec, env = do(t, h, http.MethodGet, "/api/catalog?type=image", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		TotalFiles int `json:"total_files"`
		Files      []struct {
			Name     string `json:"name"`
			FileType string `json:"file_type"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	assert.Equal(t, 2, doc.TotalFiles)
	for _, f := range doc.Files {
		assert.Equal(t, "image", f.FileType)
	}

	rec, env = do(t, h, http.MethodGet, "/api/catalog?type=image,audio&min_size_mb=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &doc))
	require.Len(t, doc.Files, 1)
	assert.Equal(t, "b.png", doc.Files[0].Name)
}

func TestScan_UsesConfiguredRoot(t *testing.T) {
	root := fixtureTree(t)
	s := newTestServer(t, root)

	rec, _ := do(t, s.Handler(), http.MethodPost, "/api/scan", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NotNil(t, s.Catalog())
	assert.Equal(t, root, s.Catalog().Root())
}

func TestScan_Errors(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	writeFile(t, file, 1)

	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"missing root", filepath.Join(dir, "missing"), http.StatusNotFound},
		{"root is a file", file, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, dir)
			rec, env := do(t, s.Handler(), http.MethodPost, "/api/scan", map[string]string{"path": tt.path})
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
			assert.Nil(t, s.Catalog())
		})
	}
}

func TestCatalog_InvalidQuery(t *testing.T) {
	root := fixtureTree(t)
	s := newTestServer(t, root)
	h := s.Handler()
	do(t, h, http.MethodPost, "/api/scan", nil)

	for _, q := range []string{"type=bogus", "min_size_mb=abc", "stale_days=-1", "limit=x"} {
		rec, _ := do(t, h, http.MethodGet, "/api/catalog?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}
}

func TestExportCSV(t *testing.T) {
	root := fixtureTree(t)
	s := newTestServer(t, root)
	h := s.Handler()
	do(t, h, http.MethodPost, "/api/scan", nil)

	rec, _ := do(t, h, http.MethodGet, "/api/catalog/export?type=document", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	rows, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, models.Columns(), rows[0])
	assert.Equal(t, "notes.txt", rows[1][2])
}

func TestExportCSV_WriteFailure(t *testing.T) {
	root := fixtureTree(t)
	s := newTestServer(t, root)
	s.exportCSV = func(w io.Writer, _ *models.Catalog) error {
		io.WriteString(w, "path,directory\n")
		return errors.New("disk full")
	}
	h := s.Handler()
	do(t, h, http.MethodPost, "/api/scan", nil)

	rec, env := do(t, h, http.MethodGet, "/api/catalog/export", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, env.Success)
	assert.NotContains(t, rec.Body.String(), "path,directory")
}

func TestFileTypes(t *testing.T) {
	root := fixtureTree(t)
	s := newTestServer(t, root)
	h := s.Handler()

	rec, env := do(t, h, http.MethodGet, "/api/file-types", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FileTypesResponse
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Len(t, resp.Categories, len(models.FileTypes))
	assert.Empty(t, resp.Present)

	do(t, h, http.MethodPost, "/api/scan", nil)
	_, env = do(t, h, http.MethodGet, "/api/file-types", nil)
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	assert.Equal(t, []models.FileType{models.FileTypeAudio, models.FileTypeDocument, models.FileTypeImage}, resp.Present)
}

func TestMove(t *testing.T) {
	root := fixtureTree(t)
	dest := t.TempDir()
	s := newTestServer(t, root)
	h := s.Handler()
	do(t, h, http.MethodPost, "/api/scan", nil)

	source := filepath.Join(root, "notes.txt")
	rec, env := do(t, h, http.MethodPost, "/api/move", map[string]string{"source": source, "destination": dest})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
	assert.FileExists(t, filepath.Join(dest, "notes.txt"))
	assert.NoFileExists(t, source)

	// The catalog still lists the old path until the next scan
	_, ok := s.Catalog().Lookup(source)
	assert.True(t, ok)
}

func TestMove_Errors(t *testing.T) {
	root := fixtureTree(t)
	dest := t.TempDir()
	s := newTestServer(t, root)
	h := s.Handler()

	tests := []struct {
		name   string
		body   map[string]string
		status int
	}{
		{"missing source", map[string]string{"source": filepath.Join(root, "nope.txt"), "destination": dest}, http.StatusNotFound},
		{"source is a directory", map[string]string{"source": filepath.Join(root, "pics"), "destination": dest}, http.StatusBadRequest},
		{"destination is a file", map[string]string{"source": filepath.Join(root, "song.mp3"), "destination": filepath.Join(root, "notes.txt")}, http.StatusBadRequest},
		{"missing fields", map[string]string{"source": filepath.Join(root, "song.mp3")}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, h, http.MethodPost, "/api/move", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			assert.False(t, env.Success)
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := newTestServer(t, t.TempDir())
	h := s.Handler()

	rec, _ := do(t, h, http.MethodGet, "/api/scan", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec, _ = do(t, h, http.MethodDelete, "/api/catalog", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
