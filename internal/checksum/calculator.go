package checksum

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"unicode"
	"unicode/utf8"

	"github.com/vvka-141/normhash/pkg/normhash"
)

// Calculator computes normalized checksums. services.Hasher builds one per
// run through a Factory, so tests can substitute the hashing strategy.
type Calculator interface {
	// Calculate streams r line by line, hashes the normalized form and, when w
	// is non-nil, writes the exact same normalized bytes to w.
	Calculate(r io.Reader, w io.Writer) (Result, error)
}

// Factory creates a Calculator for a set of options.
type Factory func(opts normhash.Options) Calculator

// NewCalculator is the default Factory, returning a SHA256 calculator.
func NewCalculator(opts normhash.Options) Calculator {
	return New(opts)
}

// Result describes a completed normalized hash run.
type Result struct {
	// Digest is the lowercase hex SHA-256 of the normalized stream.
	Digest string

	// Lines is the number of source lines read.
	Lines int

	// Bytes is the size of the normalized stream.
	Bytes int64
}

// SHA256 implements normalized checksum calculation using SHA-256:
//  1. Split the input on "\n", "\r\n" and lone "\r"
//  2. Optionally remove all whitespace from each line
//  3. Join lines with the configured EOL, appending one more unless disabled
//
// SHA256 holds only its options and is safe for concurrent use; every call
// owns its own digest state.
type SHA256 struct {
	opts normhash.Options
}

var _ Calculator = SHA256{}

// New creates a SHA-256 calculator for the given options.
func New(opts normhash.Options) SHA256 {
	return SHA256{opts: opts}
}

// Calculate implements Calculator.
//
// Read failures wrap normhash.ErrInputUnreadable, write failures wrap
// normhash.ErrOutputUnwritable and invalid UTF-8 wraps normhash.ErrEncoding.
// On error no digest is returned.
func (c SHA256) Calculate(r io.Reader, w io.Writer) (Result, error) {
	digest := sha256.New()
	em := &emitter{digest: digest, out: w}
	eol := []byte(c.opts.EOL)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, initialBufferSize), MaxLineBytes)
	scanner.Split(ScanLines)

	lines := 0
	for scanner.Scan() {
		line := scanner.Bytes()
		lines++

		if !utf8.Valid(line) {
			return Result{}, fmt.Errorf("line %d: %w", lines, normhash.ErrEncoding)
		}
		if c.opts.IgnoreWhitespace {
			line = stripWhitespace(line)
		}

		if lines > 1 {
			if err := em.emit(eol); err != nil {
				return Result{}, err
			}
		}
		if err := em.emit(line); err != nil {
			return Result{}, err
		}
	}
	if err := scanner.Err(); err != nil {
		return Result{}, fmt.Errorf("read after line %d: %w: %w", lines, normhash.ErrInputUnreadable, err)
	}

	if !c.opts.NoTrailingTerminator {
		if err := em.emit(eol); err != nil {
			return Result{}, err
		}
	}

	return Result{
		Digest: hex.EncodeToString(digest.Sum(nil)),
		Lines:  lines,
		Bytes:  em.written,
	}, nil
}

// emitter feeds every chunk to the digest and, if set, the output, in that
// order, so both always see the same bytes.
type emitter struct {
	digest  hash.Hash
	out     io.Writer
	written int64
}

func (e *emitter) emit(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	// hash.Hash.Write never returns an error.
	e.digest.Write(p)
	if e.out != nil {
		n, err := e.out.Write(p)
		if err == nil && n < len(p) {
			err = io.ErrShortWrite
		}
		if err != nil {
			return fmt.Errorf("write normalized output: %w: %w", normhash.ErrOutputUnwritable, err)
		}
	}
	e.written += int64(len(p))
	return nil
}

// stripWhitespace removes every rune classified as whitespace by unicode.IsSpace.
func stripWhitespace(line []byte) []byte {
	return bytes.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)
}
