package checksum

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/vvka-141/normhash/pkg/normhash"
)

const (
	digestOfLF    = "01ba4719c80b6fe911b091a7c05124b64eeece964e09c058ef8f9805daca546b"
	digestOfEmpty = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	digestOfABCD  = "e12e115acf4552b2568b55e93cbd39394c4ef81c82447fafc997882a02d23677"
	// sha256("A B\nC D\n")
	digestOfLFContent = "b62e3392d1ef3737f39339a43976186a039d53f30a95b987ccf8c5843dba94a2"
	// sha256("A B\r\nC D\r\n")
	digestOfCRLFContent = "9b0197338a25019411e776a2d2cdb68a23d5a1ad7d79350aea527a3189ffe20d"
	// sha256("A B\nC D")
	digestOfLFContentNoEOF = "96bb38fb6386a2fa30e5de087dc1ca7f9bf2747dab4555be40ec8b19eabff28b"
)

// sourceVariants are the same two lines saved with every line-ending convention,
// with and without a final terminator.
var sourceVariants = []string{
	"A B\r\nC D\r\n",
	"A B\r\nC D",
	"A B\nC D\n",
	"A B\nC D",
	"A B\rC D\r",
	"A B\rC D",
	"A B\r\nC D\r",
	"A B\rC D\n",
}

func calculate(t *testing.T, opts normhash.Options, input string) (Result, string) {
	t.Helper()

	var out bytes.Buffer
	result, err := New(opts).Calculate(strings.NewReader(input), &out)
	if err != nil {
		t.Fatalf("Calculate(%q) failed: %v", input, err)
	}
	return result, out.String()
}

func TestSHA256Calculator_EmptyInput(t *testing.T) {
	tests := []struct {
		name     string
		opts     normhash.Options
		expected string
		output   string
	}{
		{
			name:     "Defaults hash a single LF",
			opts:     normhash.DefaultOptions(),
			expected: digestOfLF,
			output:   "\n",
		},
		{
			name:     "Empty EOL hashes zero bytes",
			opts:     normhash.DefaultOptions().WithEOL(""),
			expected: digestOfEmpty,
			output:   "",
		},
		{
			name:     "No trailing terminator hashes zero bytes",
			opts:     normhash.DefaultOptions().WithNoTrailingTerminator(true),
			expected: digestOfEmpty,
			output:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, out := calculate(t, tt.opts, "")
			if result.Digest != tt.expected {
				t.Errorf("Calculate() = %s, expected %s", result.Digest, tt.expected)
			}
			if out != tt.output {
				t.Errorf("Normalized output = %q, expected %q", out, tt.output)
			}
			if result.Lines != 0 {
				t.Errorf("Expected 0 lines, got %d", result.Lines)
			}
		})
	}
}

func TestSHA256Calculator_LineEndingVariants(t *testing.T) {
	tests := []struct {
		name     string
		opts     normhash.Options
		expected string
		output   string
	}{
		{
			name:     "Default options",
			opts:     normhash.DefaultOptions(),
			expected: digestOfLFContent,
			output:   "A B\nC D\n",
		},
		{
			name:     "CRLF EOL",
			opts:     normhash.DefaultOptions().WithEOL("\r\n"),
			expected: digestOfCRLFContent,
			output:   "A B\r\nC D\r\n",
		},
		{
			name:     "No trailing terminator",
			opts:     normhash.DefaultOptions().WithNoTrailingTerminator(true),
			expected: digestOfLFContentNoEOF,
			output:   "A B\nC D",
		},
		{
			name:     "Ignore whitespace without separators",
			opts:     normhash.Options{EOL: "", IgnoreWhitespace: true, NoTrailingTerminator: true},
			expected: digestOfABCD,
			output:   "ABCD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, input := range sourceVariants {
				result, out := calculate(t, tt.opts, input)
				if result.Digest != tt.expected {
					t.Errorf("Calculate(%q) = %s, expected %s", input, result.Digest, tt.expected)
				}
				if out != tt.output {
					t.Errorf("Calculate(%q) output = %q, expected %q", input, out, tt.output)
				}
				if result.Lines != 2 {
					t.Errorf("Calculate(%q) counted %d lines, expected 2", input, result.Lines)
				}
			}
		})
	}
}

func TestSHA256Calculator_IgnoreWhitespaceMatchesCompactInput(t *testing.T) {
	opts := normhash.Options{EOL: "", IgnoreWhitespace: true, NoTrailingTerminator: true}

	spaced, _ := calculate(t, opts, "A B\r\nC D\r\n")
	compact, _ := calculate(t, opts, "ABCD")

	if spaced.Digest != compact.Digest {
		t.Errorf("Whitespace-stripped digest %s differs from compact digest %s", spaced.Digest, compact.Digest)
	}
}

func TestSHA256Calculator_IgnoreWhitespace_UnicodeSpaces(t *testing.T) {
	opts := normhash.DefaultOptions().WithIgnoreWhitespace(true)

	variations := []string{
		"ab\ncd\n",
		"a b\nc\td\n",
		"  a\t\tb  \n\vc\fd\n",
		"a b\nc　d\n",
		"a b\nc\u0085d\n",
	}

	var baseHash string
	for i, content := range variations {
		result, out := calculate(t, opts, content)
		if out != "ab\ncd\n" {
			t.Errorf("Variation %d normalized to %q", i, out)
		}
		if i == 0 {
			baseHash = result.Digest
		} else if result.Digest != baseHash {
			t.Errorf("Whitespace variation %d produced different hash: %s != %s", i, result.Digest, baseHash)
		}
	}
}

func TestSHA256Calculator_WhitespaceSignificantByDefault(t *testing.T) {
	calc := New(normhash.DefaultOptions())

	a, err := digestOf(calc, []byte("a b\n"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := digestOf(calc, []byte("a  b\n"))
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("Whitespace differences should change the digest unless ignored")
	}
}

func TestSHA256Calculator_Deterministic(t *testing.T) {
	calc := New(normhash.DefaultOptions().WithEOL("\r\n"))
	content := []byte("line one\r\nline two\rline three\n")

	first, err := digestOf(calc, content)
	if err != nil {
		t.Fatal(err)
	}
	second, err := digestOf(calc, content)
	if err != nil {
		t.Fatal(err)
	}

	if first != second {
		t.Errorf("Calculate() is not deterministic: %s != %s", first, second)
	}
	if len(first) != normhash.DigestHexLength {
		t.Errorf("Calculate() returned hash of length %d, expected %d", len(first), normhash.DigestHexLength)
	}
	if strings.ToLower(first) != first {
		t.Errorf("Calculate() returned non-lowercase hex: %s", first)
	}
}

// allOptions enumerates every combination of the boolean options across a
// few separators.
func allOptions() []normhash.Options {
	var combos []normhash.Options
	for _, eol := range []string{"\n", "\r\n", "", "|"} {
		for _, ws := range []bool{false, true} {
			for _, noEOF := range []bool{false, true} {
				combos = append(combos, normhash.Options{EOL: eol, IgnoreWhitespace: ws, NoTrailingTerminator: noEOF})
			}
		}
	}
	return combos
}

func TestSHA256Calculator_CanonicalizedSourceHashesIdentically(t *testing.T) {
	inputs := []string{
		"",
		"single",
		"x\r\ny\rz\n",
		"\r\r\n\n",
		"  tab\tbed \r\n\r\n trailing  ",
		"ünïcödé\rline\r\n",
	}
	lf := strings.NewReplacer("\r\n", "\n", "\r", "\n")

	for _, opts := range allOptions() {
		calc := New(opts)
		for _, input := range inputs {
			original, err := digestOf(calc, []byte(input))
			if err != nil {
				t.Fatal(err)
			}
			canonical, err := digestOf(calc, []byte(lf.Replace(input)))
			if err != nil {
				t.Fatal(err)
			}
			if original != canonical {
				t.Errorf("%s: %q hashed %s but its LF form hashed %s", opts, input, original, canonical)
			}
		}
	}
}

func TestSHA256Calculator_TrailingTerminatorInvariance(t *testing.T) {
	calc := New(normhash.DefaultOptions())

	for _, base := range []string{"a", "a\nb", "a\r\nb", "x\ry\r\nz"} {
		without, err := digestOf(calc, []byte(base))
		if err != nil {
			t.Fatal(err)
		}
		for _, term := range []string{"\n", "\r\n", "\r"} {
			with, err := digestOf(calc, []byte(base + term))
			if err != nil {
				t.Fatal(err)
			}
			if with != without {
				t.Errorf("%q with terminator %q hashed %s, without %s", base, term, with, without)
			}
		}
	}
}

func TestSHA256Calculator_OutputMatchesDigest(t *testing.T) {
	input := "first\r\n  second\rthird\n\nfifth"

	for _, opts := range allOptions() {
		result, out := calculate(t, opts, input)

		sum := sha256.Sum256([]byte(out))
		if hex.EncodeToString(sum[:]) != result.Digest {
			t.Errorf("%s: sha256 of output %q does not match digest %s", opts, out, result.Digest)
		}
		if int64(len(out)) != result.Bytes {
			t.Errorf("%s: Bytes = %d, output length %d", opts, result.Bytes, len(out))
		}
	}
}

func TestSHA256Calculator_RehashOutputWithoutSeparators(t *testing.T) {
	opts := normhash.Options{EOL: "", IgnoreWhitespace: true}
	result, out := calculate(t, opts, "a b\r\nc d\r\n")

	rehash, err := digestOf(New(normhash.Options{EOL: "", NoTrailingTerminator: true}), []byte(out))
	if err != nil {
		t.Fatal(err)
	}
	if rehash != result.Digest {
		t.Errorf("Re-hashed output %s differs from original digest %s", rehash, result.Digest)
	}
}

func TestSHA256Calculator_OneByteReads(t *testing.T) {
	for _, input := range sourceVariants {
		result, err := New(normhash.DefaultOptions()).Calculate(iotest.OneByteReader(strings.NewReader(input)), nil)
		if err != nil {
			t.Fatal(err)
		}
		if result.Digest != digestOfLFContent {
			t.Errorf("Calculate(%q) with one-byte reads = %s, expected %s", input, result.Digest, digestOfLFContent)
		}
	}
}

func TestSHA256Calculator_LongLine(t *testing.T) {
	line := strings.Repeat("x", 3*initialBufferSize)
	result, out := calculate(t, normhash.DefaultOptions(), line+"\r\n")

	if out != line+"\n" {
		t.Errorf("Long line was not preserved (got %d bytes)", len(out))
	}
	if result.Lines != 1 {
		t.Errorf("Expected 1 line, got %d", result.Lines)
	}
}

func TestSHA256Calculator_InvalidUTF8(t *testing.T) {
	_, err := New(normhash.DefaultOptions()).Calculate(strings.NewReader("ok\n\xff\xfe\n"), nil)
	if !errors.Is(err, normhash.ErrEncoding) {
		t.Fatalf("Expected ErrEncoding, got %v", err)
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("Expected error to name line 2, got %v", err)
	}
}

func TestSHA256Calculator_ReadError(t *testing.T) {
	boom := errors.New("disk on fire")
	r := io.MultiReader(strings.NewReader("a\nb\n"), iotest.ErrReader(boom))

	result, err := New(normhash.DefaultOptions()).Calculate(r, nil)
	if !errors.Is(err, normhash.ErrInputUnreadable) {
		t.Fatalf("Expected ErrInputUnreadable, got %v", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("Expected underlying cause to be preserved, got %v", err)
	}
	if result.Digest != "" {
		t.Errorf("Expected no digest on failure, got %s", result.Digest)
	}
}

type failingWriter struct {
	remaining int
}

func (w *failingWriter) Write(p []byte) (int, error) {
	if w.remaining <= 0 {
		return 0, errors.New("no space left on device")
	}
	w.remaining--
	return len(p), nil
}

func TestSHA256Calculator_WriteError(t *testing.T) {
	for _, remaining := range []int{0, 1, 2, 3} {
		result, err := New(normhash.DefaultOptions()).Calculate(strings.NewReader("a\nb\n"), &failingWriter{remaining: remaining})
		if !errors.Is(err, normhash.ErrOutputUnwritable) {
			t.Fatalf("Expected ErrOutputUnwritable after %d writes, got %v", remaining, err)
		}
		if result.Digest != "" {
			t.Errorf("Expected no digest on failure, got %s", result.Digest)
		}
	}
}

type shortWriter struct{}

func (shortWriter) Write(p []byte) (int, error) { return len(p) / 2, nil }

func TestSHA256Calculator_ShortWrite(t *testing.T) {
	_, err := New(normhash.DefaultOptions()).Calculate(strings.NewReader("abcd\n"), shortWriter{})
	if !errors.Is(err, io.ErrShortWrite) {
		t.Fatalf("Expected io.ErrShortWrite, got %v", err)
	}
}

func TestNewCalculator(t *testing.T) {
	var out bytes.Buffer
	result, err := NewCalculator(normhash.DefaultOptions()).Calculate(strings.NewReader("A B\r\nC D"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if result.Digest != digestOfLFContent {
		t.Errorf("Calculate() = %s, expected %s", result.Digest, digestOfLFContent)
	}
	if out.String() != "A B\nC D\n" {
		t.Errorf("Calculate() output = %q", out.String())
	}
}

// digestOf hashes an in-memory buffer without an output sink.
func digestOf(c Calculator, content []byte) (string, error) {
	result, err := c.Calculate(bytes.NewReader(content), nil)
	if err != nil {
		return "", err
	}
	return result.Digest, nil
}
