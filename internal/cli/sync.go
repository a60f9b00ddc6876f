package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/tig/internal/config"
	"github.com/roach88/tig/internal/index"
	"github.com/roach88/tig/internal/mirror"
	"github.com/roach88/tig/internal/store"
	"github.com/roach88/tig/internal/vcs"
)

// SyncOptions holds flags for the sync command.
type SyncOptions struct {
	Dir     string
	Message string
	Force   bool
	Verbose bool
}

// newVCSClient builds the version-control client for the mirror.
// Overridable in tests.
var newVCSClient = func(dir string) vcs.Client {
	return vcs.NewGit(dir)
}

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	opts := &SyncOptions{}

	cmd := &cobra.Command{
		Use:   "sync [paths...]",
		Short: "Reconcile the project tree with the .tig mirror",
		Long: `Detect manual edits in the project tree, copy them into the .tig
mirror, and record the batch as a single mirror commit.

With explicit paths only those (relative) paths are checked; otherwise
the whole tree is scanned for modified, added and deleted files.

Examples:
  tig sync
  tig sync src/auth.js -m "auth fixes"
  tig sync --force --verbose`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(opts, cmd, args)
		},
	}

	cmd.Flags().StringVarP(&opts.Dir, "dir", "C", ".", "run as if started in this directory")
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "commit message for the sync batch")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", false, "sync even if the mirror has uncommitted changes")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "print a line per file operation")

	return cmd
}

func runSync(opts *SyncOptions, cmd *cobra.Command, paths []string) error {
	w := cmd.OutOrStdout()

	tigDir, err := index.Locate(opts.Dir)
	if err != nil {
		return WrapExitError(ExitFailure, "sync unavailable", err)
	}
	projectRoot := filepath.Dir(tigDir)

	cfg, err := config.Load(tigDir)
	if err != nil {
		return WrapExitError(ExitFailure, "invalid configuration", err)
	}

	changes, err := mirror.Detect(projectRoot, tigDir, paths, &cfg.Sync)
	if err != nil {
		return WrapExitError(ExitFailure, "change detection failed", err)
	}
	if changes.Empty() {
		fmt.Fprintln(w, "Nothing to sync.")
		return nil
	}

	syncOpts := mirror.Options{
		Message: opts.Message,
		Force:   opts.Force,
	}
	if opts.Verbose {
		syncOpts.Log = func(format string, args ...any) {
			fmt.Fprintf(w, format+"\n", args...)
		}
	}

	res, err := mirror.Sync(projectRoot, tigDir, changes, newVCSClient(tigDir), syncOpts)
	if err != nil {
		return WrapExitError(ExitFailure, "sync failed", err)
	}

	recordBatch(tigDir, changes, res, syncOpts.Log)

	fmt.Fprintf(w, "Synced %d file(s)", res.Applied)
	if res.Failed > 0 {
		fmt.Fprintf(w, " (%d failed)", res.Failed)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Commit: %s\n", res.CommitHash)
	return nil
}

// recordBatch appends the batch to the sync journal. The journal is
// advisory, so failures only surface in verbose output.
func recordBatch(tigDir string, changes mirror.Changes, res *mirror.Result, logf func(string, ...any)) {
	if logf == nil {
		logf = func(string, ...any) {}
	}

	cacheDir := filepath.Join(tigDir, "cache")
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		logf("journal: %v", err)
		return
	}

	st, err := store.Open(filepath.Join(cacheDir, "journal.db"))
	if err != nil {
		logf("journal: %v", err)
		return
	}
	defer st.Close()

	err = st.RecordBatch(context.Background(), store.Batch{
		ID:         store.NewBatchID(),
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		CommitHash: res.CommitHash,
		Modified:   len(changes.Modified),
		Added:      len(changes.Added),
		Deleted:    len(changes.Deleted),
		Failed:     res.Failed,
		Message:    res.Message,
	})
	if err != nil {
		logf("journal: %v", err)
	}
}
