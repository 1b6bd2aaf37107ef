package normhash_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/normhash/pkg/normhash"
)

func TestDefaultOptions(t *testing.T) {
	opts := normhash.DefaultOptions()

	assert.Equal(t, "\n", opts.EOL)
	assert.False(t, opts.IgnoreWhitespace)
	assert.False(t, opts.NoTrailingTerminator)
}

func TestOptions_WithHelpersReturnCopies(t *testing.T) {
	base := normhash.DefaultOptions()

	changed := base.WithEOL("\r\n").WithIgnoreWhitespace(true).WithNoTrailingTerminator(true)

	assert.Equal(t, normhash.DefaultOptions(), base, "receiver must not be modified")
	assert.Equal(t, normhash.Options{EOL: "\r\n", IgnoreWhitespace: true, NoTrailingTerminator: true}, changed)
}

func TestOptions_String(t *testing.T) {
	assert.Equal(t, `eol="\n"`, normhash.DefaultOptions().String())
	assert.Equal(t, `eol="" ignore-whitespace no-trailing-terminator`,
		normhash.Options{IgnoreWhitespace: true, NoTrailingTerminator: true}.String())
}
