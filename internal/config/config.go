package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/normhash/internal/files/filesystem"
	"github.com/vvka-141/normhash/pkg/normhash"
)

// ErrConfigNotFound is returned when the config file does not exist.
// Callers can check for this with errors.Is(err, config.ErrConfigNotFound).
var ErrConfigNotFound = errors.New("config file not found")

// Format selects the encoding of a project config file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

const (
	YAMLFileName = ".normhash.yaml"
	TOMLFileName = ".normhash.toml"
)

const fileHeader = "# normhash project configuration\n"

// ProjectConfig holds hashing defaults for a directory. Unset fields leave the
// corresponding option alone, so pointers distinguish "false" from "absent".
type ProjectConfig struct {
	EOL                  *string `yaml:"eol,omitempty" toml:"eol,omitempty"`
	IgnoreWhitespace     *bool   `yaml:"ignore_whitespace,omitempty" toml:"ignore_whitespace,omitempty"`
	NoTrailingTerminator *bool   `yaml:"no_trailing_terminator,omitempty" toml:"no_trailing_terminator,omitempty"`
}

// FileName returns the file name used for a format.
func (f Format) FileName() string {
	if f == FormatTOML {
		return TOMLFileName
	}
	return YAMLFileName
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml":
		return FormatYAML, nil
	case FormatTOML:
		return FormatTOML, nil
	}
	return "", fmt.Errorf("unsupported config format %q (use yaml or toml): %w", s, normhash.ErrInvalidConfig)
}

// Load reads the project config from dir, preferring .normhash.yaml over
// .normhash.toml. Returns ErrConfigNotFound if neither exists.
func Load(p filesystem.Provider, dir string) (*ProjectConfig, error) {
	for _, name := range []string{YAMLFileName, TOMLFileName} {
		cfg, err := LoadFile(p, filepath.Join(dir, name))
		if errors.Is(err, ErrConfigNotFound) {
			continue
		}
		return cfg, err
	}
	return nil, ErrConfigNotFound
}

// LoadFile reads a config file, choosing the decoder by extension.
// Unknown keys and unparsable values are rejected with normhash.ErrInvalidConfig.
func LoadFile(p filesystem.Provider, path string) (*ProjectConfig, error) {
	format, err := formatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := p.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, ErrConfigNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w: %w", path, normhash.ErrInvalidConfig, err)
	}

	cfg, err := decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w: %w", path, normhash.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every set field holds a usable value.
func (c *ProjectConfig) Validate() error {
	if c.EOL != nil {
		if _, err := ParseEOL(*c.EOL); err != nil {
			return err
		}
	}
	return nil
}

// Apply overlays the set fields of c onto opts.
func (c *ProjectConfig) Apply(opts normhash.Options) (normhash.Options, error) {
	if c == nil {
		return opts, nil
	}
	if c.EOL != nil {
		eol, err := ParseEOL(*c.EOL)
		if err != nil {
			return opts, err
		}
		opts = opts.WithEOL(eol)
	}
	if c.IgnoreWhitespace != nil {
		opts = opts.WithIgnoreWhitespace(*c.IgnoreWhitespace)
	}
	if c.NoTrailingTerminator != nil {
		opts = opts.WithNoTrailingTerminator(*c.NoTrailingTerminator)
	}
	return opts, nil
}

// FromOptions captures every field of opts in a config.
func FromOptions(opts normhash.Options) *ProjectConfig {
	eol := FormatEOL(opts.EOL)
	ignore := opts.IgnoreWhitespace
	noEOF := opts.NoTrailingTerminator
	return &ProjectConfig{
		EOL:                  &eol,
		IgnoreWhitespace:     &ignore,
		NoTrailingTerminator: &noEOF,
	}
}

// Save writes cfg into dir in the given format and returns the file path.
// The file is replaced atomically.
func Save(p filesystem.Provider, dir string, cfg *ProjectConfig, format Format) (string, error) {
	data, err := encode(cfg, format)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}

	path := filepath.Join(dir, format.FileName())
	if err := filesystem.WriteFile(p, path, data); err != nil {
		return "", fmt.Errorf("writing %s: %w: %w", path, normhash.ErrOutputUnwritable, err)
	}
	return path, nil
}

func formatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%s: unsupported config extension (use .yaml, .yml or .toml): %w", path, normhash.ErrInvalidConfig)
}

func decode(data []byte, format Format) (*ProjectConfig, error) {
	var cfg ProjectConfig
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg); err != nil {
			return nil, err
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF.
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	}
	return &cfg, nil
}

func encode(cfg *ProjectConfig, format Format) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	switch format {
	case FormatTOML:
		body, err = toml.Marshal(cfg)
	case FormatYAML:
		body, err = yaml.Marshal(cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q: %w", format, normhash.ErrInvalidConfig)
	}
	if err != nil {
		return nil, err
	}
	return append([]byte(fileHeader), body...), nil
}
