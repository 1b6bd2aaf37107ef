package normhash

import (
	"fmt"
	"strings"
)

// Options configures a normalizing hash run.
//
// Options is a plain value: the With* helpers return modified copies and never
// mutate the receiver, so a single Options can be shared freely.
type Options struct {
	// EOL is inserted between consecutive lines and, unless NoTrailingTerminator
	// is set, once after the last line. It may be empty.
	EOL string

	// IgnoreWhitespace removes every Unicode whitespace rune from each line
	// before it is hashed.
	IgnoreWhitespace bool

	// NoTrailingTerminator suppresses the EOL that is otherwise appended after
	// the last line.
	NoTrailingTerminator bool
}

// DefaultOptions returns the default configuration: LF separators, whitespace
// preserved, trailing terminator appended.
func DefaultOptions() Options {
	return Options{EOL: DefaultEOL}
}

// WithEOL returns a copy of o using eol as line separator.
func (o Options) WithEOL(eol string) Options {
	o.EOL = eol
	return o
}

// WithIgnoreWhitespace returns a copy of o with whitespace stripping set to v.
func (o Options) WithIgnoreWhitespace(v bool) Options {
	o.IgnoreWhitespace = v
	return o
}

// WithNoTrailingTerminator returns a copy of o with the trailing terminator
// suppressed when v is true.
func (o Options) WithNoTrailingTerminator(v bool) Options {
	o.NoTrailingTerminator = v
	return o
}

// String renders the options for diagnostics, with the EOL quoted.
func (o Options) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "eol=%q", o.EOL)
	if o.IgnoreWhitespace {
		b.WriteString(" ignore-whitespace")
	}
	if o.NoTrailingTerminator {
		b.WriteString(" no-trailing-terminator")
	}
	return b.String()
}
