package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/IvanShishkin/filecommander/pkg/models"
	"gopkg.in/yaml.v3"
)

// CatalogDocument is the JSON and YAML shape of a catalog
type CatalogDocument struct {
	ScanID     string      `json:"scan_id" yaml:"scan_id"`
	Root       string      `json:"root" yaml:"root"`
	ScannedAt  time.Time   `json:"scanned_at" yaml:"scanned_at"`
	TotalFiles int         `json:"total_files" yaml:"total_files"`
	TotalSize  int64       `json:"total_size" yaml:"total_size"`
	Files      []FileEntry `json:"files" yaml:"files"`
}

// FileEntry is one catalog row with the schema column names
type FileEntry struct {
	Path           string     `json:"path" yaml:"path"`
	Directory      string     `json:"directory" yaml:"directory"`
	Name           string     `json:"name" yaml:"name"`
	Extension      string     `json:"extension" yaml:"extension"`
	FileType       string     `json:"file_type" yaml:"file_type"`
	SizeBytes      int64      `json:"size_bytes" yaml:"size_bytes"`
	CreatedAt      time.Time  `json:"created_at" yaml:"created_at"`
	ModifiedAt     time.Time  `json:"modified_at" yaml:"modified_at"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty" yaml:"last_accessed_at,omitempty"`
}

// NewCatalogDocument converts cat into its serializable form
func NewCatalogDocument(cat *models.Catalog) *CatalogDocument {
	doc := &CatalogDocument{
		ScanID:     cat.ID().String(),
		Root:       cat.Root(),
		ScannedAt:  cat.ScannedAt(),
		TotalFiles: cat.Len(),
		TotalSize:  cat.TotalSize(),
		Files:      NewFileEntries(cat),
	}
	return doc
}

// NewFileEntries converts the records of cat
func NewFileEntries(cat *models.Catalog) []FileEntry {
	entries := make([]FileEntry, 0, cat.Len())
	for _, r := range cat.Records() {
		entry := FileEntry{
			Path:       r.Path,
			Directory:  r.Directory(),
			Name:       r.Name,
			Extension:  r.Extension,
			FileType:   string(r.FileType),
			SizeBytes:  r.SizeBytes,
			CreatedAt:  r.CreatedAt,
			ModifiedAt: r.ModifiedAt,
		}
		if r.HasAccessTime() {
			accessed := r.LastAccessedAt
			entry.LastAccessedAt = &accessed
		}
		entries = append(entries, entry)
	}
	return entries
}

// WriteJSON writes cat as indented JSON
func WriteJSON(w io.Writer, cat *models.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewCatalogDocument(cat))
}

// WriteYAML writes cat as a YAML document
func WriteYAML(w io.Writer, cat *models.Catalog) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewCatalogDocument(cat)); err != nil {
		return err
	}
	return enc.Close()
}
