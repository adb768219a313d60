package models

import (
	"path/filepath"
	"time"
)

// FileType is the coarse category a file is classified into
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeVideo    FileType = "video"
	FileTypeAudio    FileType = "audio"
	FileTypeDocument FileType = "document"
	FileTypeData     FileType = "data"
	FileTypeCode     FileType = "code"
	FileTypeArchive  FileType = "archive"
	FileTypeOther    FileType = "other"
)

// FileTypes lists every category in display order
var FileTypes = []FileType{
	FileTypeImage,
	FileTypeVideo,
	FileTypeAudio,
	FileTypeDocument,
	FileTypeData,
	FileTypeCode,
	FileTypeArchive,
	FileTypeOther,
}

// IsValid reports whether t is one of the known categories
func (t FileType) IsValid() bool {
	for _, known := range FileTypes {
		if t == known {
			return true
		}
	}
	return false
}

// FileRecord describes one file found by a scan
type FileRecord struct {
	Path           string    // Full file path, unique within a catalog
	Name           string    // Final path component
	Extension      string    // Lowercase suffix with leading dot, "" if none
	FileType       FileType  // Category derived from Extension
	SizeBytes      int64     // Size at scan time
	CreatedAt      time.Time // Creation (or inode change) time
	ModifiedAt     time.Time // Modification time
	LastAccessedAt time.Time // Access time, zero when the platform does not report it
}

// Directory returns the parent directory of the record's path
func (r FileRecord) Directory() string {
	return filepath.Dir(r.Path)
}

// HasAccessTime reports whether the last access time is known
func (r FileRecord) HasAccessTime() bool {
	return !r.LastAccessedAt.IsZero()
}

// FileInfo contains the stat data read for a path
type FileInfo struct {
	Path       string
	Size       int64
	ModTime    time.Time
	CreateTime time.Time
	AccessTime time.Time
	IsDir      bool
	IsSymlink  bool
}
