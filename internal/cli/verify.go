package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/normhash/internal/logging"
	"github.com/vvka-141/normhash/internal/tui"
	"github.com/vvka-141/normhash/pkg/normhash"
)

type verifyFlags struct {
	format string
}

func newVerifyCmd(opts *optionFlags) *cobra.Command {
	flags := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify <FILE_IN> [DIGEST]",
		Short: "Check a file against a normalized digest",
		Long: `Recompute the normalized digest of FILE_IN and compare it with DIGEST, or
with the digest stored in FILE_IN.sha256 when DIGEST is omitted.

Hashing options must match the ones used to create the digest.
Exits with code 30 when the digests differ.`,
		Example: `  normhash README.md --save
  normhash verify README.md
  normhash verify README.md 01ba4719c80b6fe911b091a7c05124b64eeece964e09c058ef8f9805daca546b`,
		Args: RequireVerifyTarget,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", formatText, "Output format (text, json, yaml)")
	_ = cmd.RegisterFlagCompletionFunc("format", completeOutputFormats)
	return cmd
}

func runVerify(cmd *cobra.Command, opts *optionFlags, flags *verifyFlags, args []string) error {
	format, err := parseOutputFormat(flags.format)
	if err != nil {
		return err
	}

	options, err := opts.resolve(cmd)
	if err != nil {
		return err
	}

	inPath := args[0]
	expected := ""
	if len(args) > 1 {
		expected = args[1]
	}

	logger := logging.NewConsoleLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	result, verifyErr := newHasher(cmd, logger).VerifyFile(options, inPath, expected)
	if verifyErr != nil && !errors.Is(verifyErr, normhash.ErrDigestMismatch) {
		return verifyErr
	}

	match := verifyErr == nil
	out := cmd.OutOrStdout()

	switch {
	case format != formatText:
		r := newReport(inPath, "", options, result)
		r.Match = &match
		if err := writeReport(out, format, r); err != nil {
			return err
		}
	case tui.IsInteractive():
		fmt.Fprintln(out, tui.VerifyLine(match, inPath, result.Digest))
	case match:
		fmt.Fprintf(out, "%s: OK\n", inPath)
	default:
		fmt.Fprintf(out, "%s: FAILED\n", inPath)
	}

	return verifyErr
}
