package models

import "time"

const bytesPerMB = 1024 * 1024

// Filter holds the browsing predicates. Zero values mean "no restriction"
// on that dimension; set predicates combine with AND.
type Filter struct {
	FileTypes []FileType // Keep only these types; empty keeps all
	MinSizeMB float64    // Keep files of at least this many MiB when > 0
	StaleDays int        // Keep files not accessed for this many days when > 0
	Now       time.Time  // Reference time for StaleDays; zero means time.Now()
}

// MinSizeBytes converts MinSizeMB to bytes
func (f Filter) MinSizeBytes() float64 {
	return f.MinSizeMB * bytesPerMB
}

// StaleCutoff returns the access time before which a file counts as stale
func (f Filter) StaleCutoff() time.Time {
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}
	return now.AddDate(0, 0, -f.StaleDays)
}

// Match reports whether r passes every active predicate
func (f Filter) Match(r FileRecord) bool {
	if len(f.FileTypes) > 0 && !containsType(f.FileTypes, r.FileType) {
		return false
	}

	if f.MinSizeMB > 0 && float64(r.SizeBytes) < f.MinSizeBytes() {
		return false
	}

	// Unknown access times never count as stale
	if f.StaleDays > 0 {
		if !r.HasAccessTime() || !r.LastAccessedAt.Before(f.StaleCutoff()) {
			return false
		}
	}

	return true
}

func containsType(types []FileType, t FileType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}
