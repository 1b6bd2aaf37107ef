package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vvka-141/normhash/internal/config"
	"github.com/vvka-141/normhash/internal/files/filesystem"
	"github.com/vvka-141/normhash/pkg/normhash"
)

// Environment variables overriding the project config.
const (
	envEOL                  = "NORMHASH_EOL"
	envIgnoreWhitespace     = "NORMHASH_IGNORE_WHITESPACE"
	envNoTrailingTerminator = "NORMHASH_NO_TRAILING_TERMINATOR"
)

// optionFlags holds the hashing flags shared by every command.
type optionFlags struct {
	eol                  string
	ignoreWhitespace     bool
	noTrailingTerminator bool
	configPath           string
}

func (f *optionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.eol, "eol", "lf", `Line terminator: lf, crlf, cr, none, or a literal such as "\r\n"`)
	fs.BoolVarP(&f.ignoreWhitespace, "ignore-whitespace", "w", false, "Remove all whitespace from each line before hashing")
	fs.BoolVar(&f.noTrailingTerminator, "no-eof", false, "Do not append a terminator after the last line (alias: --no-trailing-terminator)")
	fs.StringVar(&f.configPath, "config", "", "Config file (.yaml, .yml or .toml); default is .normhash.yaml or .normhash.toml in the current directory")
}

// anyChanged reports whether an option flag was given explicitly.
func (f *optionFlags) anyChanged(cmd *cobra.Command) bool {
	for _, name := range []string{"eol", "ignore-whitespace", "no-eof"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// resolve computes the effective options.
// Priority (highest to lowest): flags > environment > config file > defaults.
func (f *optionFlags) resolve(cmd *cobra.Command) (normhash.Options, error) {
	opts := normhash.DefaultOptions()

	cfg, err := f.loadProjectConfig()
	if err != nil {
		return opts, err
	}
	if opts, err = cfg.Apply(opts); err != nil {
		return opts, err
	}
	if opts, err = applyEnvironment(opts); err != nil {
		return opts, err
	}
	return f.applyFlags(cmd, opts)
}

// loadProjectConfig loads godotenv and the project configuration.
// Returns nil config if no config file exists and none was requested.
func (f *optionFlags) loadProjectConfig() (*config.ProjectConfig, error) {
	_ = godotenv.Load()

	if f.configPath != "" {
		cfg, err := config.LoadFile(filesystem.NewOSFileSystem(), f.configPath)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("%w: %w", normhash.ErrInvalidConfig, err)
			}
			return nil, err
		}
		return cfg, nil
	}

	cfg, err := config.Load(filesystem.NewOSFileSystem(), ".")
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load project config: %w", err)
	}
	return cfg, nil
}

func (f *optionFlags) applyFlags(cmd *cobra.Command, opts normhash.Options) (normhash.Options, error) {
	if cmd.Flags().Changed("eol") {
		eol, err := config.ParseEOL(f.eol)
		if err != nil {
			return opts, fmt.Errorf("invalid argument %q for \"--eol\" flag: %w", f.eol, err)
		}
		opts = opts.WithEOL(eol)
	}
	if cmd.Flags().Changed("ignore-whitespace") {
		opts = opts.WithIgnoreWhitespace(f.ignoreWhitespace)
	}
	if cmd.Flags().Changed("no-eof") {
		opts = opts.WithNoTrailingTerminator(f.noTrailingTerminator)
	}
	return opts, nil
}

func applyEnvironment(opts normhash.Options) (normhash.Options, error) {
	if v, ok := os.LookupEnv(envEOL); ok && v != "" {
		eol, err := config.ParseEOL(v)
		if err != nil {
			return opts, fmt.Errorf("%s: %w", envEOL, err)
		}
		opts = opts.WithEOL(eol)
	}

	ignore, err := lookupBoolEnv(envIgnoreWhitespace)
	if err != nil {
		return opts, err
	}
	if ignore != nil {
		opts = opts.WithIgnoreWhitespace(*ignore)
	}

	noEOF, err := lookupBoolEnv(envNoTrailingTerminator)
	if err != nil {
		return opts, err
	}
	if noEOF != nil {
		opts = opts.WithNoTrailingTerminator(*noEOF)
	}
	return opts, nil
}

func lookupBoolEnv(name string) (*bool, error) {
	v, ok := os.LookupEnv(name)
	if !ok || v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%s=%q is not a boolean: %w", name, v, normhash.ErrInvalidConfig)
	}
	return &b, nil
}
