package filesystem

import (
	"errors"
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
// This provides compatibility with the fs.FS ecosystem while maintaining
// a stable local type for our abstraction layer.
type FileInfo = fs.FileInfo

// ErrIsDirectory is returned when a file operation targets a directory.
var ErrIsDirectory = errors.New("is a directory")

// OutputFile is a destination that only becomes visible once committed.
//
// Writes go to a staging area; Commit publishes them at the destination path,
// replacing any previous content, and Abort discards them. After Commit,
// Abort is a no-op, so callers can always defer Abort.
type OutputFile interface {
	io.Writer

	// Path returns the destination path
	Path() string

	// Commit publishes the written content at Path
	Commit() error

	// Abort discards the written content, leaving Path untouched
	Abort() error
}

// Provider opens inputs and creates outputs.
type Provider interface {
	// Open opens the file at path for reading.
	// Missing files yield an error matching fs.ErrNotExist; directories
	// yield ErrIsDirectory.
	Open(path string) (io.ReadCloser, error)

	// Create prepares an output for path. Nothing is visible at path until
	// the returned OutputFile is committed.
	Create(path string) (OutputFile, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}

// WriteFile writes data to path through p, committing only if every byte was written.
func WriteFile(p Provider, path string, data []byte) error {
	out, err := p.Create(path)
	if err != nil {
		return err
	}
	defer out.Abort()

	if _, err := out.Write(data); err != nil {
		return err
	}
	return out.Commit()
}
