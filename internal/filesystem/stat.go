package filesystem

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/IvanShishkin/filecommander/pkg/models"
)

// Stat reads the metadata of path, following symlinks
func Stat(path string) (*models.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, ioError("stat", path, err)
	}

	created, accessed := fileTimes(info)

	lstat, err := os.Lstat(path)
	if err != nil {
		return nil, ioError("lstat", path, err)
	}

	return &models.FileInfo{
		Path:       path,
		Size:       info.Size(),
		ModTime:    info.ModTime(),
		CreateTime: created,
		AccessTime: accessed,
		IsDir:      info.IsDir(),
		IsSymlink:  lstat.Mode()&os.ModeSymlink != 0,
	}, nil
}

// GetExtension returns the lowercase suffix of the final path component,
// including the leading dot. A dot that starts or ends the name does not
// begin a suffix, so ".bashrc" and "file." have no extension.
func GetExtension(path string) string {
	name := filepath.Base(path)
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// CopyFile copies a file from src to dst, keeping the source permissions
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	if err != nil {
		return err
	}

	if err := destFile.Sync(); err != nil {
		return err
	}

	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
