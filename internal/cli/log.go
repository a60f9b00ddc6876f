package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/roach88/tig/internal/index"
	"github.com/roach88/tig/internal/store"
)

// LogOptions holds flags for the log command.
type LogOptions struct {
	Dir   string
	Limit int
	JSON  bool
}

// NewLogCommand creates the log command.
func NewLogCommand() *cobra.Command {
	opts := &LogOptions{}

	cmd := &cobra.Command{
		Use:   "log",
		Short: "List recent sync batches from the journal",
		Long: `List recent reconciliation batches recorded in the sync journal,
newest first.

Examples:
  tig log
  tig log -n 25 --json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLog(opts, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "C", ".", "run as if started in this directory")
	cmd.Flags().IntVarP(&opts.Limit, "limit", "n", 10, "maximum number of batches to list")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "emit batches as JSON")

	return cmd
}

func runLog(opts *LogOptions, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()

	tigDir, err := index.Locate(opts.Dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "journal unavailable", err)
	}

	batches := []store.Batch{}
	dbPath := filepath.Join(tigDir, "cache", "journal.db")
	if _, statErr := os.Stat(dbPath); statErr == nil {
		st, err := store.Open(dbPath)
		if err != nil {
			return WrapExitError(ExitFailure, "cannot open sync journal", err)
		}
		defer st.Close()

		batches, err = st.RecentBatches(context.Background(), opts.Limit)
		if err != nil {
			return WrapExitError(ExitFailure, "cannot read sync journal", err)
		}
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(batches)
	}

	if len(batches) == 0 {
		fmt.Fprintln(w, "No sync history.")
		return nil
	}

	for _, b := range batches {
		fmt.Fprintf(w, "%s  %s  %s\n", b.CreatedAt, shortHash(b.CommitHash), b.Message)
	}
	return nil
}

// shortHash abbreviates a commit hash for display.
func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	if hash == "" {
		return "-------"
	}
	return hash
}
