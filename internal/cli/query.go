package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/tig/internal/blame"
	"github.com/roach88/tig/internal/index"
)

// responseDisplayLimit caps the response line of the text summary.
const responseDisplayLimit = 200

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	Dir  string
	JSON bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query <commit_hash> <file_path>",
		Short: "Resolve the conversation that produced a commit and file",
		Long: `Resolve which AI conversation produced the state of a file at a commit.

The commit hash may be a prefix. An empty result (no recorded provenance
for that commit) is a normal outcome, not an error: the command still
exits 0. Only a missing .tig directory is a failure.

Examples:
  tig query deadbeef src/auth.js
  tig query deadbeef src/auth.js --json`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "C", ".", "run as if started in this directory")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "emit the blame record as JSON")

	return cmd
}

func runQuery(opts *QueryOptions, cmd *cobra.Command, commitHash, filePath string) error {
	tigDir, err := index.Locate(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "provenance lookup unavailable", err)
	}

	idx := index.Load(tigDir)
	rec := blame.Resolve(idx, tigDir, commitHash, filePath)

	w := cmd.OutOrStdout()
	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	}

	if !rec.Found {
		fmt.Fprintf(w, "No context found for %s:%s\n", commitHash, filePath)
		return nil
	}

	fmt.Fprintf(w, "Conversation: %s\n", rec.ConversationID)
	fmt.Fprintf(w, "Timestamp:    %s\n", rec.Timestamp)
	fmt.Fprintf(w, "Prompt:       %s\n", rec.Prompt)
	fmt.Fprintf(w, "Response:     %s\n", truncate(rec.AIResponse, responseDisplayLimit))
	return nil
}
