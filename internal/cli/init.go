package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/normhash/internal/config"
	"github.com/vvka-141/normhash/internal/files/filesystem"
	"github.com/vvka-141/normhash/internal/logging"
	"github.com/vvka-141/normhash/internal/tui"
	"github.com/vvka-141/normhash/internal/tui/wizards"
	"github.com/vvka-141/normhash/internal/ui"
)

// runInitWizard is replaced in tests.
var runInitWizard = wizards.RunInitWizard

type initFlags struct {
	format string
	force  bool
}

func newInitCmd(opts *optionFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a project config with hashing defaults",
		Long: `Write .normhash.yaml (or .normhash.toml with --format toml) into dir, or
the current directory, capturing the effective hashing options.

On an interactive terminal without option flags, a wizard asks for each
setting. Otherwise the options come from flags, environment and any
existing config, exactly as for hashing.

Examples:
  normhash init                      # Wizard, or defaults when piped
  normhash init --eol crlf -w        # Non-interactive
  normhash init ./project --format toml`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeDirectories,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, opts, flags, args)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", string(config.FormatYAML), "Config file format (yaml, toml)")
	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite an existing config file")
	_ = cmd.RegisterFlagCompletionFunc("format", completeConfigFormats)
	return cmd
}

func runInit(cmd *cobra.Command, opts *optionFlags, flags *initFlags, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	format, err := config.ParseFormat(flags.format)
	if err != nil {
		return err
	}

	fsys := filesystem.NewOSFileSystem()
	info, err := fsys.Stat(dir)
	if err != nil {
		return fmt.Errorf("target directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target path %s is not a directory", dir)
	}

	options, err := opts.resolve(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd))
	interactive := tui.IsInteractive()

	if interactive && !opts.anyChanged(cmd) {
		result, err := runInitWizard(dir, options, format)
		if err != nil {
			return fmt.Errorf("init wizard failed: %w", err)
		}
		if result.Cancelled {
			logger.Info("Cancelled.")
			return nil
		}
		options, format = result.Options, result.Format
	}

	target := filepath.Join(dir, format.FileName())
	switch _, err := fsys.Stat(target); {
	case err == nil:
		approved, err := overwriteApprover(cmd, flags.force, interactive).RequestApproval(cmd.Context(), target)
		if err != nil {
			return err
		}
		if !approved {
			return nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("checking %s: %w", target, err)
	}

	path, err := config.Save(fsys, dir, config.FromOptions(options), format)
	if err != nil {
		return err
	}
	logger.Verbose("Options: %s", options)

	if interactive {
		fmt.Fprintln(cmd.OutOrStdout(), tui.SuccessStyle.Render(tui.SymbolCheck+" Created "+path))
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
	}
	return nil
}

// overwriteApprover picks how an existing config is confirmed. Without
// --force on a non-interactive terminal, nothing is ever overwritten.
func overwriteApprover(cmd *cobra.Command, force, interactive bool) ui.Approver {
	switch {
	case force:
		return ui.NewForcedApprover(cmd.ErrOrStderr())
	case interactive:
		return ui.NewInteractiveApprover(cmd.InOrStdin(), cmd.ErrOrStderr())
	}
	return refuseOverwrite{}
}

type refuseOverwrite struct{}

func (refuseOverwrite) RequestApproval(_ context.Context, target string) (bool, error) {
	return false, fmt.Errorf("%s already exists (use --force to overwrite)", target)
}
