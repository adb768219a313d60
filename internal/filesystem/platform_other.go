//go:build !linux && !darwin && !windows

package filesystem

import (
	"os"
	"time"
)

// fileTimes falls back to the modification time; access time is unknown
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	return info.ModTime(), time.Time{}
}
