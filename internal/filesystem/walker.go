package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Walker enumerates the regular files of a directory tree
type Walker struct {
	logger *zap.Logger
}

// NewWalker creates a new filesystem walker
func NewWalker(logger *zap.Logger) *Walker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Walker{logger: logger}
}

// ListFiles returns every regular file below root, at any depth.
// Directories, including root itself, are never returned. The order of
// the result is unspecified.
//
// Symlinked directories below root are not descended into. A symlink is
// returned when its target is a regular file; dangling links are skipped.
func (w *Walker) ListFiles(root string) ([]string, error) {
	if err := CheckDirectory(root); err != nil {
		return nil, err
	}

	var files []string
	err := w.Walk(root, func(path string, d fs.DirEntry) error {
		ok, err := w.isRegularFile(path, d)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	w.logger.Debug("Listed files", zap.String("root", root), zap.Int("count", len(files)))
	return files, nil
}

// Walk calls fn for every non-directory entry below root. A symlinked
// root is followed; paths passed to fn keep the caller's root prefix.
// Any error reading the tree stops the walk and is returned wrapped in ErrIO.
func (w *Walker) Walk(root string, fn func(path string, d fs.DirEntry) error) error {
	resolved, err := filepath.EvalSymlinks(root)
	if err != nil {
		return ioError("resolve", root, err)
	}

	return filepath.WalkDir(resolved, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			w.logger.Warn("Error accessing path", zap.String("path", path), zap.Error(err))
			return ioError("walk", path, err)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(resolved, path)
		if err != nil {
			return ioError("walk", path, err)
		}
		return fn(filepath.Join(root, rel), d)
	})
}

func (w *Walker) isRegularFile(path string, d fs.DirEntry) (bool, error) {
	if d.Type().IsRegular() {
		return true, nil
	}
	if d.Type()&fs.ModeSymlink == 0 {
		// Sockets, devices, pipes
		return false, nil
	}

	target, err := os.Stat(path)
	if err != nil {
		w.logger.Debug("Skipping unresolvable symlink", zap.String("path", path), zap.Error(err))
		return false, nil
	}
	return target.Mode().IsRegular(), nil
}

// CheckDirectory verifies that path exists and is a directory
func CheckDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return ioError("stat", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotADirectory, path)
	}
	return nil
}

// ListFiles walks root with a silent walker
func ListFiles(root string) ([]string, error) {
	return NewWalker(nil).ListFiles(root)
}
