package filesystem

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

type memoryFile struct {
	content []byte
	info    *memoryFileInfo
}

// memoryOutput buffers writes until Commit stores them in the filesystem.
type memoryOutput struct {
	path string
	buf  bytes.Buffer
	fs   *MemoryFileSystem
	done bool
}

func (o *memoryOutput) Path() string { return o.path }

func (o *memoryOutput) Write(p []byte) (int, error) {
	return o.buf.Write(p)
}

func (o *memoryOutput) Commit() error {
	if o.done {
		return fmt.Errorf("output %s already finished", o.path)
	}
	o.done = true
	o.fs.AddFile(o.path, o.buf.String())
	return nil
}

func (o *memoryOutput) Abort() error {
	o.done = true
	return nil
}

// MemoryFileSystem implements Provider for in-memory testing.
// Safe for concurrent use by multiple goroutines.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile
	dirs  map[string]bool
}

// NewMemoryFileSystem creates a new, empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	return &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		dirs:  make(map[string]bool),
	}
}

// clean normalizes a path to the forward-slash form used as map key
func clean(p string) string {
	return path.Clean(filepath.ToSlash(p))
}

// AddFile adds or replaces a file in the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	key := clean(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	mfs.files[key] = &memoryFile{
		content: []byte(content),
		info: &memoryFileInfo{
			name:    path.Base(key),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
}

// AddDir registers a directory, so that Open and Create on it fail the way
// they would on a real filesystem.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.dirs[clean(dirPath)] = true
}

// Paths returns the sorted paths of all files.
func (mfs *MemoryFileSystem) Paths() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	paths := make([]string, 0, len(mfs.files))
	for p := range mfs.files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Open implements Provider.Open
func (mfs *MemoryFileSystem) Open(filePath string) (io.ReadCloser, error) {
	content, err := mfs.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Create implements Provider.Create
func (mfs *MemoryFileSystem) Create(filePath string) (OutputFile, error) {
	key := clean(filePath)

	mfs.mu.RLock()
	isDir := mfs.dirs[key]
	mfs.mu.RUnlock()

	if isDir {
		return nil, fmt.Errorf("%s: %w", filePath, ErrIsDirectory)
	}
	return &memoryOutput{path: key, fs: mfs}, nil
}

// ReadFile implements Provider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	key := clean(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if mfs.dirs[key] {
		return nil, fmt.Errorf("%s: %w", filePath, ErrIsDirectory)
	}
	file, exists := mfs.files[key]
	if !exists {
		return nil, &fs.PathError{Op: "open", Path: filePath, Err: fs.ErrNotExist}
	}
	return bytes.Clone(file.content), nil
}

// Stat implements Provider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	key := clean(statPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if mfs.dirs[key] {
		return &memoryFileInfo{name: path.Base(key), mode: 0755 | fs.ModeDir, modTime: time.Now(), isDir: true}, nil
	}
	file, exists := mfs.files[key]
	if !exists {
		return nil, &fs.PathError{Op: "stat", Path: statPath, Err: fs.ErrNotExist}
	}
	return file.info, nil
}
