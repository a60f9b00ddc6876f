// Package mirror reconciles a live project tree against its shadow
// mirror: a three-way change detector and a committer that applies the
// detected changes as one version-control commit.
package mirror

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roach88/tig/internal/config"
	"github.com/roach88/tig/internal/index"
	"github.com/roach88/tig/internal/shadow"
)

// mirrorExcludedDirs are mirror subtrees that hold provenance metadata
// rather than mirrored project files.
var mirrorExcludedDirs = map[string]bool{
	".git":         true,
	"cache":        true,
	shadow.DirName: true,
}

// reservedNames are root-level mirror files owned by the provenance
// system, never candidates for sync.
var reservedNames = map[string]bool{
	index.FileName:       true,
	"config.json":        true,
	config.FileName:      true,
	"session_state.json": true,
	".gitignore":         true,
	".gitmodules":        true,
}

// Changes classifies the paths that differ between project and mirror.
// All paths are slash-separated and relative to the respective roots.
type Changes struct {
	Modified []string
	Added    []string
	Deleted  []string
}

// Empty reports whether no changes were detected.
func (c Changes) Empty() bool {
	return len(c.Modified) == 0 && len(c.Added) == 0 && len(c.Deleted) == 0
}

// Total returns the number of paths across all three classes.
func (c Changes) Total() int {
	return len(c.Modified) + len(c.Added) + len(c.Deleted)
}

// Summary renders the nonzero counts, e.g. "modified 2 file(s), added 1 file(s)".
func (c Changes) Summary() string {
	var parts []string
	if n := len(c.Modified); n > 0 {
		parts = append(parts, fmt.Sprintf("modified %d file(s)", n))
	}
	if n := len(c.Added); n > 0 {
		parts = append(parts, fmt.Sprintf("added %d file(s)", n))
	}
	if n := len(c.Deleted); n > 0 {
		parts = append(parts, fmt.Sprintf("deleted %d file(s)", n))
	}
	if len(parts) == 0 {
		return "no changes"
	}
	return strings.Join(parts, ", ")
}

// Detect classifies each candidate path as modified, added or deleted.
//
// With explicit paths, exactly those are checked. Otherwise discovery
// mode walks the mirror (minus metadata subtrees and reserved files) as
// the baseline, widens the candidate set with allow-listed project files
// absent from the mirror, and classifies the union.
//
// A read failure while comparing content classifies the path as
// modified; it is never silently skipped.
func Detect(projectRoot, mirrorRoot string, explicit []string, cfg *config.SyncConfig) (Changes, error) {
	var candidates []string
	if len(explicit) > 0 {
		seen := map[string]bool{}
		for _, p := range explicit {
			rel := filepath.ToSlash(filepath.Clean(p))
			// Provenance metadata is never a sync candidate, even
			// when named explicitly; syncing it would delete the
			// index or shadow logs from the mirror.
			if metadataPath(rel) {
				continue
			}
			if !seen[rel] {
				seen[rel] = true
				candidates = append(candidates, rel)
			}
		}
	} else {
		discovered, err := discover(projectRoot, mirrorRoot, cfg)
		if err != nil {
			return Changes{}, err
		}
		candidates = discovered
	}
	sort.Strings(candidates)

	var changes Changes
	for _, rel := range candidates {
		projPath := filepath.Join(projectRoot, filepath.FromSlash(rel))
		mirrorPath := filepath.Join(mirrorRoot, filepath.FromSlash(rel))

		inProject := isRegular(projPath)
		inMirror := isRegular(mirrorPath)

		switch {
		case inProject && inMirror:
			equal, err := equalFiles(projPath, mirrorPath)
			if err != nil || !equal {
				changes.Modified = append(changes.Modified, rel)
			}
		case inProject:
			changes.Added = append(changes.Added, rel)
		case inMirror:
			changes.Deleted = append(changes.Deleted, rel)
		}
		// Present in neither tree: not a change in any direction.
	}
	return changes, nil
}

// discover builds the discovery-mode candidate set: every mirrored file
// plus allow-listed project files the mirror does not know about yet.
func discover(projectRoot, mirrorRoot string, cfg *config.SyncConfig) ([]string, error) {
	seen := map[string]bool{}
	var candidates []string

	add := func(rel string) {
		if !seen[rel] {
			seen[rel] = true
			candidates = append(candidates, rel)
		}
	}

	err := filepath.WalkDir(mirrorRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(mirrorRoot, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if d.IsDir() {
			if rel != "." && mirrorExcludedDirs[d.Name()] && !strings.Contains(rel, "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if reservedNames[rel] {
			return nil
		}
		add(rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk mirror: %w", err)
	}

	err = filepath.WalkDir(projectRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable project subtrees are not sync candidates.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path == projectRoot {
				return nil
			}
			if strings.HasPrefix(name, ".") || cfg.Excludes(name) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !cfg.Allows(name) {
			return nil
		}
		rel, err := filepath.Rel(projectRoot, path)
		if err != nil {
			return err
		}
		add(filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk project: %w", err)
	}
	return candidates, nil
}

// metadataPath reports whether a relative path names a reserved
// provenance file or lives under one of the mirror's metadata subtrees.
func metadataPath(rel string) bool {
	if reservedNames[rel] {
		return true
	}
	seg := rel
	if i := strings.IndexByte(rel, '/'); i >= 0 {
		seg = rel[:i]
	}
	return mirrorExcludedDirs[seg]
}

func isRegular(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
