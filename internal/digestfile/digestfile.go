package digestfile

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/vvka-141/normhash/internal/files/filesystem"
	"github.com/vvka-141/normhash/pkg/normhash"
)

// ErrDigestFileNotFound is returned by Read when the sidecar file does not exist.
var ErrDigestFileNotFound = errors.New("digest file not found")

// Path returns the sidecar digest path for file.
func Path(file string) string {
	return file + normhash.DigestFileSuffix
}

// Format renders a digest in the layout used by sha256sum: the digest, two
// spaces, the file name and a newline.
func Format(digest, name string) string {
	return digest + "  " + name + "\n"
}

// Normalize validates a hex digest and returns it in lowercase.
func Normalize(digest string) (string, error) {
	digest = strings.ToLower(strings.TrimSpace(digest))
	if len(digest) != normhash.DigestHexLength {
		return "", fmt.Errorf("%q has %d characters, want %d: %w",
			digest, len(digest), normhash.DigestHexLength, normhash.ErrInvalidDigest)
	}
	if _, err := hex.DecodeString(digest); err != nil {
		return "", fmt.Errorf("%q: %w", digest, normhash.ErrInvalidDigest)
	}
	return digest, nil
}

// Parse extracts the digest from sidecar content. It accepts a bare digest or
// the first line of sha256sum output ("<digest>  <name>" or "<digest> *<name>").
func Parse(content string) (string, error) {
	const errCtx = "parsing digest file"

	for _, line := range strings.Split(content, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		digest, err := Normalize(fields[0])
		if err != nil {
			return "", fmt.Errorf("%s: %w", errCtx, err)
		}
		return digest, nil
	}
	return "", fmt.Errorf("%s: empty content: %w", errCtx, normhash.ErrInvalidDigest)
}

// Equal reports whether two digests are the same, ignoring case.
// The comparison runs in constant time for digests of equal length.
func Equal(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Save writes digest to the sidecar of file.
func Save(p filesystem.Provider, file, digest string) error {
	const errCtx = "saving digest"

	normalized, err := Normalize(digest)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	content := Format(normalized, filepath.Base(file))
	if err := filesystem.WriteFile(p, Path(file), []byte(content)); err != nil {
		return fmt.Errorf("%s: %w: %w", errCtx, normhash.ErrOutputUnwritable, err)
	}
	return nil
}

// Read returns the digest stored in the sidecar of file.
// Returns ErrDigestFileNotFound if the sidecar does not exist.
func Read(p filesystem.Provider, file string) (string, error) {
	const errCtx = "reading digest"

	dp := Path(file)
	content, err := p.ReadFile(dp)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %s: %w: %w", errCtx, dp, ErrDigestFileNotFound, normhash.ErrInputNotFound)
		}
		return "", fmt.Errorf("%s: %s: %w: %w", errCtx, dp, normhash.ErrInputUnreadable, err)
	}

	return Parse(string(content))
}
