//go:build linux

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns the creation and access times of info (Linux).
// Linux stat does not expose a birth time, so the inode change time is used.
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return info.ModTime(), time.Time{}
	}
	created = time.Unix(int64(stat.Ctim.Sec), int64(stat.Ctim.Nsec))
	accessed = time.Unix(int64(stat.Atim.Sec), int64(stat.Atim.Nsec))
	return created, accessed
}
