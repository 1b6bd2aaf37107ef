package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/normhash/internal/checksum"
	"github.com/vvka-141/normhash/internal/config"
	"github.com/vvka-141/normhash/pkg/normhash"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var outputFormats = []string{formatText, formatJSON, formatYAML}

// report is the machine-readable result of a hash run.
type report struct {
	Path    string        `json:"path" yaml:"path"`
	Output  string        `json:"output,omitempty" yaml:"output,omitempty"`
	Digest  string        `json:"digest" yaml:"digest"`
	Lines   int           `json:"lines" yaml:"lines"`
	Bytes   int64         `json:"bytes" yaml:"bytes"`
	Options reportOptions `json:"options" yaml:"options"`
	Match   *bool         `json:"match,omitempty" yaml:"match,omitempty"`
}

type reportOptions struct {
	EOL                  string `json:"eol" yaml:"eol"`
	IgnoreWhitespace     bool   `json:"ignore_whitespace" yaml:"ignore_whitespace"`
	NoTrailingTerminator bool   `json:"no_trailing_terminator" yaml:"no_trailing_terminator"`
}

func newReport(inPath, outPath string, opts normhash.Options, result checksum.Result) report {
	return report{
		Path:   inPath,
		Output: outPath,
		Digest: result.Digest,
		Lines:  result.Lines,
		Bytes:  result.Bytes,
		Options: reportOptions{
			EOL:                  config.FormatEOL(opts.EOL),
			IgnoreWhitespace:     opts.IgnoreWhitespace,
			NoTrailingTerminator: opts.NoTrailingTerminator,
		},
	}
}

func parseOutputFormat(s string) (string, error) {
	format := strings.ToLower(s)
	for _, f := range outputFormats {
		if format == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid argument %q for \"--format\" flag: must be one of %s", s, strings.Join(outputFormats, ", "))
}

// writeReport prints the digest alone for text, or the full report.
func writeReport(w io.Writer, format string, r report) error {
	var err error
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(r)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(r); err == nil {
			err = enc.Close()
		}
	default:
		_, err = fmt.Fprintln(w, r.Digest)
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
