package filesystem

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("path does not exist")
	ErrNotADirectory = errors.New("path is not a directory")
	ErrNotAFile      = errors.New("path is not a regular file")
	ErrIO            = errors.New("i/o failure")
)

// ioError wraps err so that both ErrIO and err match with errors.Is
func ioError(op, path string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrIO, op, path, err)
}
