//go:build windows

package filesystem

import (
	"os"
	"syscall"
	"time"
)

// fileTimes returns the creation and access times of info (Windows)
func fileTimes(info os.FileInfo) (created, accessed time.Time) {
	stat, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return info.ModTime(), time.Time{}
	}
	created = time.Unix(0, stat.CreationTime.Nanoseconds())
	accessed = time.Unix(0, stat.LastAccessTime.Nanoseconds())
	return created, accessed
}
