//go:build darwin

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns the creation and access times of info (macOS)
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), time.Time{}
	}
	created = time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
	accessed = time.Unix(stat.Atimespec.Sec, stat.Atimespec.Nsec)
	return created, accessed
}
