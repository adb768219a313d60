package models

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Column names of the catalog schema, in display order
const (
	ColumnPath           = "path"
	ColumnDirectory      = "directory"
	ColumnName           = "name"
	ColumnExtension      = "extension"
	ColumnFileType       = "file_type"
	ColumnSizeBytes      = "size_bytes"
	ColumnCreatedAt      = "created_at"
	ColumnModifiedAt     = "modified_at"
	ColumnLastAccessedAt = "last_accessed_at"
)

// Columns returns the fixed catalog schema
func Columns() []string {
	return []string{
		ColumnPath,
		ColumnDirectory,
		ColumnName,
		ColumnExtension,
		ColumnFileType,
		ColumnSizeBytes,
		ColumnCreatedAt,
		ColumnModifiedAt,
		ColumnLastAccessedAt,
	}
}

// Catalog is an immutable, ordered set of file records produced by one scan.
// Views derived from it (Apply, Where, SortBy) are new catalogs that share
// the scan metadata but never the record slice.
type Catalog struct {
	id        uuid.UUID
	root      string
	scannedAt time.Time
	records   []FileRecord
}

// NewCatalog creates a catalog over a copy of records
func NewCatalog(root string, scannedAt time.Time, records []FileRecord) *Catalog {
	return &Catalog{
		id:        uuid.New(),
		root:      root,
		scannedAt: scannedAt,
		records:   cloneRecords(records),
	}
}

// ID returns the scan identifier
func (c *Catalog) ID() uuid.UUID { return c.id }

// Root returns the scanned directory
func (c *Catalog) Root() string { return c.root }

// ScannedAt returns when the scan was taken
func (c *Catalog) ScannedAt() time.Time { return c.scannedAt }

// Len returns the number of records
func (c *Catalog) Len() int { return len(c.records) }

// At returns the i-th record
func (c *Catalog) At(i int) FileRecord { return c.records[i] }

// Records returns a copy of all records
func (c *Catalog) Records() []FileRecord {
	return cloneRecords(c.records)
}

// Lookup finds a record by path
func (c *Catalog) Lookup(path string) (FileRecord, bool) {
	for _, r := range c.records {
		if r.Path == path {
			return r, true
		}
	}
	return FileRecord{}, false
}

// TotalSize sums size_bytes over all records
func (c *Catalog) TotalSize() int64 {
	var total int64
	for _, r := range c.records {
		total += r.SizeBytes
	}
	return total
}

// FileTypes returns the distinct file types present, sorted by name
func (c *Catalog) FileTypes() []FileType {
	seen := make(map[FileType]bool)
	var types []FileType
	for _, r := range c.records {
		if !seen[r.FileType] {
			seen[r.FileType] = true
			types = append(types, r.FileType)
		}
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Where returns a view holding the records matching pred
func (c *Catalog) Where(pred func(FileRecord) bool) *Catalog {
	selected := make([]FileRecord, 0, len(c.records))
	for _, r := range c.records {
		if pred(r) {
			selected = append(selected, r)
		}
	}
	return c.derive(selected)
}

// SortBy returns a view ordered by less. The sort is stable.
func (c *Catalog) SortBy(less func(a, b FileRecord) bool) *Catalog {
	sorted := cloneRecords(c.records)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return &Catalog{id: c.id, root: c.root, scannedAt: c.scannedAt, records: sorted}
}

// Head returns a view with at most n records; n <= 0 keeps everything
func (c *Catalog) Head(n int) *Catalog {
	if n <= 0 || n >= len(c.records) {
		return c.derive(c.records)
	}
	return c.derive(c.records[:n])
}

// Apply filters the catalog with f and orders the result newest first
func (c *Catalog) Apply(f Filter) *Catalog {
	if f.Now.IsZero() {
		f.Now = time.Now()
	}
	return c.Where(f.Match).SortBy(NewestFirst)
}

// NewestFirst orders records by modified_at descending
func NewestFirst(a, b FileRecord) bool {
	return a.ModifiedAt.After(b.ModifiedAt)
}

func (c *Catalog) derive(records []FileRecord) *Catalog {
	return &Catalog{
		id:        c.id,
		root:      c.root,
		scannedAt: c.scannedAt,
		records:   cloneRecords(records),
	}
}

func cloneRecords(records []FileRecord) []FileRecord {
	out := make([]FileRecord, len(records))
	copy(out, records)
	return out
}
