package filesystem

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// osOutput stages writes in a hidden sibling file and renames it over the
// destination on Commit.
type osOutput struct {
	path     string
	target   string
	tempPath string
	file     *os.File
	done     bool
}

func (o *osOutput) Path() string { return o.path }

func (o *osOutput) Write(p []byte) (int, error) {
	return o.file.Write(p)
}

func (o *osOutput) Commit() error {
	if o.done {
		return fmt.Errorf("output %s already finished", o.path)
	}
	o.done = true

	if err := o.file.Sync(); err != nil {
		_ = o.file.Close()
		_ = os.Remove(o.tempPath)
		return fmt.Errorf("failed to sync %s: %w", o.tempPath, err)
	}
	if err := o.file.Close(); err != nil {
		_ = os.Remove(o.tempPath)
		return fmt.Errorf("failed to close %s: %w", o.tempPath, err)
	}
	if err := os.Rename(o.tempPath, o.target); err != nil {
		_ = os.Remove(o.tempPath)
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func (o *osOutput) Abort() error {
	if o.done {
		return nil
	}
	o.done = true

	closeErr := o.file.Close()
	if err := os.Remove(o.tempPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", o.tempPath, err)
	}
	return closeErr
}

// OSFileSystem implements Provider for the OS filesystem
type OSFileSystem struct{}

// NewOSFileSystem creates a new OS filesystem provider
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	}

	return f, nil
}

// Create stages output in a hidden sibling of the destination. An existing
// destination is resolved through symlinks first, so Commit replaces the file
// a link points to rather than the link, and its permission bits carry over.
func (p *OSFileSystem) Create(path string) (OutputFile, error) {
	target, existing, err := resolveOutput(path)
	if err != nil {
		return nil, err
	}

	dir, base := filepath.Split(target)
	if dir == "" {
		dir = "."
	}
	tempPath := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	f, err := os.OpenFile(tempPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o666)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := f.Chmod(existing.Mode().Perm()); err != nil {
			_ = f.Close()
			_ = os.Remove(tempPath)
			return nil, fmt.Errorf("failed to set mode on %s: %w", tempPath, err)
		}
	}

	return &osOutput{path: path, target: target, tempPath: tempPath, file: f}, nil
}

// resolveOutput returns the file a write to path lands in and, when that file
// already exists, its info.
func resolveOutput(path string) (string, os.FileInfo, error) {
	target := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		target = resolved
	} else if link, lerr := os.Readlink(path); lerr == nil {
		// Dangling link: create the file it names.
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		target = link
	}

	info, err := os.Stat(target)
	switch {
	case err == nil && info.IsDir():
		return "", nil, fmt.Errorf("%s: %w", path, ErrIsDirectory)
	case err == nil:
		return target, info, nil
	}
	return target, nil, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	// os.Stat returns os.FileInfo which implements fs.FileInfo
	return os.Stat(path)
}
