package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var refTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func sampleRecords() []FileRecord {
	return []FileRecord{
		{
			Path: "/data/photo.jpg", Name: "photo.jpg", Extension: ".jpg", FileType: FileTypeImage,
			SizeBytes: 3 * bytesPerMB, ModifiedAt: refTime.Add(-2 * time.Hour),
			LastAccessedAt: refTime.AddDate(0, 0, -100),
		},
		{
			Path: "/data/notes.txt", Name: "notes.txt", Extension: ".txt", FileType: FileTypeDocument,
			SizeBytes: 120, ModifiedAt: refTime.Add(-1 * time.Hour),
			LastAccessedAt: refTime.AddDate(0, 0, -1),
		},
		{
			Path: "/data/src/main.go", Name: "main.go", Extension: ".go", FileType: FileTypeCode,
			SizeBytes: 2048, ModifiedAt: refTime.Add(-3 * time.Hour),
		},
	}
}

func TestColumns(t *testing.T) {
	assert.Equal(t, []string{
		"path", "directory", "name", "extension", "file_type",
		"size_bytes", "created_at", "modified_at", "last_accessed_at",
	}, Columns())
}

func TestFileRecord_Directory(t *testing.T) {
	r := FileRecord{Path: "/data/src/main.go"}
	assert.Equal(t, "/data/src", r.Directory())
}

func TestCatalog_RecordsIsCopy(t *testing.T) {
	records := sampleRecords()
	c := NewCatalog("/data", refTime, records)

	// Mutating the input slice must not leak into the catalog
	records[0].Name = "changed"
	assert.Equal(t, "photo.jpg", c.At(0).Name)

	// Nor does mutating the returned slice
	got := c.Records()
	got[1].SizeBytes = 0
	assert.Equal(t, int64(120), c.At(1).SizeBytes)
}

func TestCatalog_EmptyFilterIsProjection(t *testing.T) {
	c := NewCatalog("/data", refTime, sampleRecords())

	view := c.Apply(Filter{Now: refTime})

	require.Equal(t, c.Len(), view.Len())
	assert.ElementsMatch(t, c.Records(), view.Records())
	assert.Equal(t, c.ID(), view.ID())
}

func TestCatalog_ApplySortsNewestFirst(t *testing.T) {
	c := NewCatalog("/data", refTime, sampleRecords())

	view := c.Apply(Filter{Now: refTime})

	require.Equal(t, 3, view.Len())
	assert.Equal(t, "notes.txt", view.At(0).Name)
	assert.Equal(t, "photo.jpg", view.At(1).Name)
	assert.Equal(t, "main.go", view.At(2).Name)

	// Source order is untouched
	assert.Equal(t, "photo.jpg", c.At(0).Name)
}

func TestCatalog_ApplyFilters(t *testing.T) {
	c := NewCatalog("/data", refTime, sampleRecords())

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{"no filter", Filter{}, []string{"notes.txt", "photo.jpg", "main.go"}},
		{"zero min size and all types", Filter{MinSizeMB: 0, FileTypes: FileTypes}, []string{"notes.txt", "photo.jpg", "main.go"}},
		{"single type", Filter{FileTypes: []FileType{FileTypeCode}}, []string{"main.go"}},
		{"two types", Filter{FileTypes: []FileType{FileTypeCode, FileTypeImage}}, []string{"photo.jpg", "main.go"}},
		{"type not present", Filter{FileTypes: []FileType{FileTypeVideo}}, []string{}},
		{"min size", Filter{MinSizeMB: 1}, []string{"photo.jpg"}},
		{"fractional min size", Filter{MinSizeMB: 0.001}, []string{"photo.jpg", "main.go"}},
		{"stale", Filter{StaleDays: 30}, []string{"photo.jpg"}},
		{"stale and type", Filter{StaleDays: 30, FileTypes: []FileType{FileTypeDocument}}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			f.Now = refTime
			view := c.Apply(f)

			names := make([]string, 0, view.Len())
			for _, r := range view.Records() {
				names = append(names, r.Name)
			}
			assert.Equal(t, tt.expected, names)
			assert.LessOrEqual(t, view.Len(), c.Len())
		})
	}
}

func TestFilter_UnknownAccessTimeIsNotStale(t *testing.T) {
	f := Filter{StaleDays: 1, Now: refTime}
	assert.False(t, f.Match(FileRecord{Name: "x"}))
}

func TestCatalog_FileTypesAndTotals(t *testing.T) {
	c := NewCatalog("/data", refTime, sampleRecords())

	assert.Equal(t, []FileType{FileTypeCode, FileTypeDocument, FileTypeImage}, c.FileTypes())
	assert.Equal(t, int64(3*bytesPerMB+120+2048), c.TotalSize())

	r, ok := c.Lookup("/data/notes.txt")
	require.True(t, ok)
	assert.Equal(t, FileTypeDocument, r.FileType)

	_, ok = c.Lookup("/missing")
	assert.False(t, ok)
}

func TestCatalog_Head(t *testing.T) {
	c := NewCatalog("/data", refTime, sampleRecords())

	assert.Equal(t, 2, c.Head(2).Len())
	assert.Equal(t, 3, c.Head(0).Len())
	assert.Equal(t, 3, c.Head(10).Len())
}

func TestFileType_IsValid(t *testing.T) {
	for _, ft := range FileTypes {
		assert.True(t, ft.IsValid(), ft)
	}
	assert.False(t, FileType("spreadsheet").IsValid())
	assert.False(t, FileType("").IsValid())
}
