package services

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/vvka-141/normhash/internal/checksum"
	"github.com/vvka-141/normhash/internal/files/filesystem"
	"github.com/vvka-141/normhash/pkg/normhash"
)

type recordingLogger struct {
	mu      sync.Mutex
	verbose []string
	info    []string
	errors  []string
}

func (l *recordingLogger) Verbose(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Info(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Error(format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

var (
	errDiskFull   = errors.New("disk full")
	errReadFailed = errors.New("device read failed")
)

// faultyProvider wraps a MemoryFileSystem and injects failures.
type faultyProvider struct {
	*filesystem.MemoryFileSystem
	openErr    error
	readErr    error
	createErr  error
	writeErr   error
	commitErr  error
	closeCalls int
}

func (p *faultyProvider) Open(path string) (io.ReadCloser, error) {
	if p.openErr != nil {
		return nil, p.openErr
	}
	rc, err := p.MemoryFileSystem.Open(path)
	if err != nil {
		return nil, err
	}
	if p.readErr != nil {
		rc = io.NopCloser(io.MultiReader(rc, &errReader{err: p.readErr}))
	}
	return &countingCloser{ReadCloser: rc, calls: &p.closeCalls}, nil
}

func (p *faultyProvider) Create(path string) (filesystem.OutputFile, error) {
	if p.createErr != nil {
		return nil, p.createErr
	}
	out, err := p.MemoryFileSystem.Create(path)
	if err != nil {
		return nil, err
	}
	return &faultyOutput{OutputFile: out, writeErr: p.writeErr, commitErr: p.commitErr}, nil
}

type errReader struct{ err error }

func (r *errReader) Read([]byte) (int, error) { return 0, r.err }

type countingCloser struct {
	io.ReadCloser
	calls *int
}

func (c *countingCloser) Close() error {
	*c.calls++
	return c.ReadCloser.Close()
}

type faultyOutput struct {
	filesystem.OutputFile
	writeErr  error
	commitErr error
}

func (o *faultyOutput) Write(p []byte) (int, error) {
	if o.writeErr != nil {
		return 0, o.writeErr
	}
	return o.OutputFile.Write(p)
}

func (o *faultyOutput) Commit() error {
	if o.commitErr != nil {
		return o.commitErr
	}
	return o.OutputFile.Commit()
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errDiskFull }

// stubCalculator writes a fixed body and reports a fixed result, recording
// the options it was built with.
type stubCalculator struct {
	body   string
	result checksum.Result
	err    error
}

func (c *stubCalculator) Calculate(r io.Reader, w io.Writer) (checksum.Result, error) {
	if w != nil {
		if _, err := io.WriteString(w, c.body); err != nil {
			return checksum.Result{}, err
		}
	}
	if c.err != nil {
		return checksum.Result{}, c.err
	}
	return c.result, nil
}

func (c *stubCalculator) factory(seen *[]normhash.Options) checksum.Factory {
	return func(opts normhash.Options) checksum.Calculator {
		*seen = append(*seen, opts)
		return c
	}
}
