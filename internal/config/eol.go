package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vvka-141/normhash/pkg/normhash"
)

var eolNames = map[string]string{
	"lf":   "\n",
	"crlf": "\r\n",
	"cr":   "\r",
	"none": "",
}

// ParseEOL turns a user-supplied terminator into its literal form. It accepts
// the lowercase names lf, crlf, cr and none, or a literal string in which \n,
// \r, \t, \\ and \xHH are unescaped.
func ParseEOL(s string) (string, error) {
	if eol, ok := eolNames[s]; ok {
		return eol, nil
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 == len(s) {
			return "", fmt.Errorf("eol %q: trailing backslash: %w", s, normhash.ErrInvalidConfig)
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case '\\':
			b.WriteByte('\\')
		case 'x':
			if i+2 >= len(s) {
				return "", fmt.Errorf("eol %q: short \\x escape: %w", s, normhash.ErrInvalidConfig)
			}
			v, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return "", fmt.Errorf("eol %q: bad \\x escape: %w", s, normhash.ErrInvalidConfig)
			}
			b.WriteByte(byte(v))
			i += 2
		default:
			return "", fmt.Errorf("eol %q: unknown escape \\%c: %w", s, s[i], normhash.ErrInvalidConfig)
		}
	}
	return b.String(), nil
}

// FormatEOL is the inverse of ParseEOL, preferring names over escapes. A
// literal that spells a name has its first byte hex-escaped.
func FormatEOL(eol string) string {
	for name, literal := range eolNames {
		if eol == literal {
			return name
		}
	}
	escaped := eolEscaper.Replace(eol)
	if _, isName := eolNames[escaped]; isName {
		escaped = fmt.Sprintf(`\x%02x`, escaped[0]) + escaped[1:]
	}
	return escaped
}

var eolEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
