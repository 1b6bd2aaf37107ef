package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var eolNames = []string{"lf", "crlf", "cr", "none"}

// completeEOLNames provides shell completion for the --eol flag.
func completeEOLNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return matchPrefix(eolNames, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeOutputFormats provides shell completion for the --format flag.
func completeOutputFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return matchPrefix(outputFormats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeConfigFormats provides shell completion for the init --format flag.
func completeConfigFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return matchPrefix([]string{"yaml", "toml"}, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	// Let the shell handle directory completion
	return nil, cobra.ShellCompDirectiveFilterDirs
}

func matchPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
