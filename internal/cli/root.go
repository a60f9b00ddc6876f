package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command for the tig CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tig",
		Short: "tig - local provenance for AI-assisted changes",
		Long: `tig correlates source-code commits with the AI conversation that
produced them, and keeps the .tig mirror in sync with manual edits.`,
	}

	cmd.AddCommand(NewQueryCommand())
	cmd.AddCommand(NewSyncCommand())
	cmd.AddCommand(NewLogCommand())

	return cmd
}

// Execute runs the CLI and returns the process exit code. Errors are
// printed to stderr with their remediation hint, when one exists.
func Execute() int {
	cmd := NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if hint := remediationFor(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		return GetExitCode(err)
	}
	return ExitSuccess
}
