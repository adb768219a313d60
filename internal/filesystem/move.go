package filesystem

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// MoveFile moves source into destinationDir under its original name and
// returns the new path. Preconditions are checked in order and nothing is
// touched when one fails:
//
//   - source must exist (ErrNotFound) and be a regular file (ErrNotAFile)
//   - destinationDir must exist (ErrNotFound) and be a directory (ErrNotADirectory)
//
// An existing file at the target is replaced, as os.Rename does. Moves
// across devices fall back to copy and remove.
func MoveFile(source, destinationDir string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: source file %s", ErrNotFound, source)
		}
		return "", ioError("stat", source, err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: source %s", ErrNotAFile, source)
	}

	destInfo, err := os.Stat(destinationDir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: destination directory %s", ErrNotFound, destinationDir)
		}
		return "", ioError("stat", destinationDir, err)
	}
	if !destInfo.IsDir() {
		return "", fmt.Errorf("%w: destination %s", ErrNotADirectory, destinationDir)
	}

	target := filepath.Join(destinationDir, filepath.Base(source))

	if err := os.Rename(source, target); err != nil {
		if !errors.Is(err, syscall.EXDEV) {
			return "", ioError("move", source, err)
		}
		if err := moveAcrossDevices(source, target); err != nil {
			return "", ioError("move", source, err)
		}
	}

	return target, nil
}

func moveAcrossDevices(source, target string) error {
	if err := CopyFile(source, target); err != nil {
		os.Remove(target)
		return err
	}
	return os.Remove(source)
}
