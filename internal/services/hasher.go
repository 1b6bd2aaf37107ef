package services

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vvka-141/normhash/internal/checksum"
	"github.com/vvka-141/normhash/internal/digestfile"
	"github.com/vvka-141/normhash/internal/files/filesystem"
	"github.com/vvka-141/normhash/pkg/normhash"
)

// Hasher hashes files through a filesystem.Provider, owning every handle it
// opens. The path "-" selects the standard streams.
// Thread-Safety: safe for concurrent use as long as the provider is.
type Hasher struct {
	fs            filesystem.Provider
	logger        normhash.Logger
	newCalculator checksum.Factory
	stdin         io.Reader
	stdout        io.Writer
}

// NewHasher creates a Hasher reading and writing through provider.
// Panics on nil dependencies.
func NewHasher(provider filesystem.Provider, logger normhash.Logger) *Hasher {
	if provider == nil {
		panic("provider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Hasher{
		fs:            provider,
		logger:        logger,
		newCalculator: checksum.NewCalculator,
		stdin:         os.Stdin,
		stdout:        os.Stdout,
	}
}

// WithCalculator replaces the factory building a Calculator for each run.
func (h *Hasher) WithCalculator(factory checksum.Factory) *Hasher {
	if factory == nil {
		panic("calculator factory cannot be nil")
	}
	h.newCalculator = factory
	return h
}

// WithStdio replaces the streams used for the "-" path.
func (h *Hasher) WithStdio(in io.Reader, out io.Writer) *Hasher {
	h.stdin = in
	h.stdout = out
	return h
}

// HashFile hashes the file at inPath. When outPath is not empty the
// normalized content is written there; the destination is replaced only
// after the whole input was hashed, and is left untouched on failure.
func (h *Hasher) HashFile(opts normhash.Options, inPath, outPath string) (checksum.Result, error) {
	start := time.Now()

	in, err := h.openInput(inPath)
	if err != nil {
		return checksum.Result{}, err
	}
	defer in.Close()

	var result checksum.Result
	switch outPath {
	case "":
		result, err = hashReader(h.newCalculator(opts), in, nil)
	case normhash.StdioPath:
		result, err = hashReader(h.newCalculator(opts), in, h.stdout)
	default:
		result, err = h.hashToFile(opts, in, outPath)
	}
	if err != nil {
		return checksum.Result{}, fmt.Errorf("%s: %w", inPath, err)
	}

	h.logger.Verbose("Hashed %s [%s]: %d lines, %s normalized in %s",
		inPath, opts, result.Lines, humanize.Bytes(uint64(result.Bytes)), time.Since(start))
	if outPath != "" {
		h.logger.Verbose("Normalized copy written to %s", outPath)
	}
	return result, nil
}

// VerifyFile hashes inPath and compares the digest with expected. An empty
// expected digest is read from the sidecar file of inPath. The result is
// returned even on mismatch, together with an error wrapping
// normhash.ErrDigestMismatch.
func (h *Hasher) VerifyFile(opts normhash.Options, inPath, expected string) (checksum.Result, error) {
	var err error
	if expected == "" {
		if inPath == normhash.StdioPath {
			return checksum.Result{}, fmt.Errorf("a digest is required when reading standard input: %w", normhash.ErrInvalidDigest)
		}
		expected, err = digestfile.Read(h.fs, inPath)
		if err != nil {
			return checksum.Result{}, err
		}
		h.logger.Verbose("Expected digest read from %s", digestfile.Path(inPath))
	} else if expected, err = digestfile.Normalize(expected); err != nil {
		return checksum.Result{}, err
	}

	result, err := h.HashFile(opts, inPath, "")
	if err != nil {
		return checksum.Result{}, err
	}
	if !digestfile.Equal(result.Digest, expected) {
		return result, fmt.Errorf("%s: got %s, want %s: %w", inPath, result.Digest, expected, normhash.ErrDigestMismatch)
	}
	return result, nil
}

// SaveDigest writes digest to the sidecar file of inPath.
func (h *Hasher) SaveDigest(inPath, digest string) error {
	if inPath == normhash.StdioPath {
		return fmt.Errorf("cannot save a digest for standard input: %w", normhash.ErrOutputUnwritable)
	}
	if err := digestfile.Save(h.fs, inPath, digest); err != nil {
		return err
	}
	h.logger.Verbose("Digest saved to %s", digestfile.Path(inPath))
	return nil
}

// HashReader hashes r, writing the normalized content to w when w is not nil.
// Output is buffered and flushed before the result is returned.
func HashReader(opts normhash.Options, r io.Reader, w io.Writer) (checksum.Result, error) {
	return hashReader(checksum.NewCalculator(opts), r, w)
}

func hashReader(calc checksum.Calculator, r io.Reader, w io.Writer) (checksum.Result, error) {
	if w == nil {
		return calc.Calculate(r, nil)
	}

	buf := bufio.NewWriter(w)
	result, err := calc.Calculate(r, buf)
	if err != nil {
		return checksum.Result{}, err
	}
	if err := buf.Flush(); err != nil {
		return checksum.Result{}, fmt.Errorf("flush normalized output: %w: %w", normhash.ErrOutputUnwritable, err)
	}
	return result, nil
}

func (h *Hasher) openInput(path string) (io.ReadCloser, error) {
	if path == normhash.StdioPath {
		return io.NopCloser(h.stdin), nil
	}

	f, err := h.fs.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("open input %s: %w", path, normhash.ErrInputNotFound)
		}
		return nil, fmt.Errorf("open input %s: %w: %w", path, normhash.ErrInputUnreadable, err)
	}
	return f, nil
}

func (h *Hasher) hashToFile(opts normhash.Options, in io.Reader, outPath string) (checksum.Result, error) {
	out, err := h.fs.Create(outPath)
	if err != nil {
		return checksum.Result{}, fmt.Errorf("create output %s: %w: %w", outPath, normhash.ErrOutputUnwritable, err)
	}
	defer out.Abort()

	result, err := hashReader(h.newCalculator(opts), in, out)
	if err != nil {
		return checksum.Result{}, err
	}
	if err := out.Commit(); err != nil {
		return checksum.Result{}, fmt.Errorf("commit output %s: %w: %w", outPath, normhash.ErrOutputUnwritable, err)
	}
	return result, nil
}
