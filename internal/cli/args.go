package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireInputPath validates that FILE_IN and an optional FILE_OUT are provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireInputPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <FILE_IN>

Usage: %s

Example:
  %s README.md`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts between 1 and 2 arg(s), received %d", len(args))
	}
	return nil
}

// RequireVerifyTarget validates that FILE_IN and an optional DIGEST are provided.
func RequireVerifyTarget(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <FILE_IN>

Usage: %s

Examples:
  %s README.md            # compare against README.md.sha256
  %s README.md <digest>   # compare against a given digest`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts between 1 and 2 arg(s), received %d", len(args))
	}
	return nil
}
