package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vvka-141/normhash/internal/files/filesystem"
	"github.com/vvka-141/normhash/internal/logging"
	"github.com/vvka-141/normhash/internal/services"
	"github.com/vvka-141/normhash/pkg/normhash"
)

const rootLong = `normhash computes a SHA-256 digest of a text file after normalizing its
line endings, so the same text hashes identically whether it was saved with
LF, CRLF or CR terminators, with or without a final newline.

Lines are split on "\n", "\r\n" and lone "\r", then rejoined with the
configured terminator (LF by default) and hashed. The normalized text can be
written to FILE_OUT; use "-" for standard input or output.

Defaults come from .normhash.yaml or .normhash.toml in the current directory,
then NORMHASH_EOL, NORMHASH_IGNORE_WHITESPACE and
NORMHASH_NO_TRAILING_TERMINATOR (a .env file is honored), then flags.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or digest
  20 - Input file not found
  21 - Input file unreadable
  22 - Output file unwritable
  23 - Input is not valid UTF-8
  30 - Digest mismatch (verify)`

// hashFlags holds the flags of the root hash command.
type hashFlags struct {
	format string
	save   bool
}

// newRootCmd builds the command tree. Each call returns fresh commands and
// flag state.
func newRootCmd() *cobra.Command {
	opts := &optionFlags{}
	flags := &hashFlags{}

	cmd := &cobra.Command{
		Use:   "normhash <FILE_IN> [FILE_OUT]",
		Short: "Line-ending independent SHA-256 of text files",
		Long:  rootLong,
		Example: `  normhash README.md
  normhash notes.txt notes.normalized.txt
  normhash --eol crlf -w --format json notes.txt
  cat notes.txt | normhash -`,
		Args:         RequireInputPath,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHash(cmd, opts, flags, args)
		},
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	opts.register(cmd.PersistentFlags())
	cmd.SetGlobalNormalizationFunc(normalizeFlagName)

	cmd.Flags().StringVar(&flags.format, "format", formatText, "Output format (text, json, yaml)")
	cmd.Flags().BoolVar(&flags.save, "save", false, "Also write the digest to FILE_IN.sha256")
	_ = cmd.RegisterFlagCompletionFunc("format", completeOutputFormats)
	_ = cmd.RegisterFlagCompletionFunc("eol", completeEOLNames)

	cmd.AddCommand(newVerifyCmd(opts), newInitCmd(opts), newVersionCmd())
	return cmd
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		printVersionInfo(os.Stdout)
		return nil
	}
	return newRootCmd().Execute()
}

// normalizeFlagName maps long-form aliases onto their canonical flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "no-trailing-terminator" {
		name = "no-eof"
	}
	return pflag.NormalizedName(name)
}

func runHash(cmd *cobra.Command, opts *optionFlags, flags *hashFlags, args []string) error {
	format, err := parseOutputFormat(flags.format)
	if err != nil {
		return err
	}

	options, err := opts.resolve(cmd)
	if err != nil {
		return err
	}

	inPath := args[0]
	outPath := ""
	if len(args) > 1 {
		outPath = args[1]
	}

	logger := logging.NewConsoleLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	hasher := newHasher(cmd, logger)

	result, err := hasher.HashFile(options, inPath, outPath)
	if err != nil {
		return err
	}

	if flags.save {
		if err := hasher.SaveDigest(inPath, result.Digest); err != nil {
			return err
		}
	}

	// Normalized text owns stdout when it is written there.
	out := cmd.OutOrStdout()
	if outPath == normhash.StdioPath {
		out = cmd.ErrOrStderr()
	}
	return writeReport(out, format, newReport(inPath, outPath, options, result))
}

func newHasher(cmd *cobra.Command, logger normhash.Logger) *services.Hasher {
	return services.NewHasher(filesystem.NewOSFileSystem(), logger).
		WithStdio(cmd.InOrStdin(), cmd.OutOrStdout())
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
