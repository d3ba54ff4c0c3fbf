package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/indaco/depsync/internal/core"
)

// Walker finds manifest files below a set of roots.
type Walker struct {
	fs        core.FileSystem
	filenames []string
	excludes  []string
	maxDepth  int
}

// NewWalker creates a Walker over the given filesystem.
func NewWalker(fs core.FileSystem, opts Options) *Walker {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = core.MaxDiscoveryDepth
	}
	return &Walker{
		fs:        fs,
		filenames: opts.Filenames,
		excludes:  opts.Exclude,
		maxDepth:  maxDepth,
	}
}

// Walk scans every root in order and returns the manifests found.
// Roots that do not exist are skipped; a path reachable from two roots is
// reported once, under the first root that reached it.
func (w *Walker) Walk(ctx context.Context, roots []string) ([]Match, error) {
	var matches []Match
	seen := make(map[string]bool)

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		root = filepath.Clean(root)
		info, err := w.fs.Stat(ctx, root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				slog.Debug("skipping missing root", "root", root)
				continue
			}
			return nil, fmt.Errorf("failed to access root %q: %w", root, err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("root %q is not a directory", root)
		}

		err = w.walkDirectory(ctx, root, root, 0, func(m Match) {
			if seen[m.Path] {
				return
			}
			seen[m.Path] = true
			matches = append(matches, m)
		})
		if err != nil {
			return nil, err
		}
	}

	slog.Debug("discovery finished", "roots", len(roots), "manifests", len(matches))
	return matches, nil
}

// walkDirectory visits dir and its subdirectories in name order.
func (w *Walker) walkDirectory(ctx context.Context, root, dir string, depth int, fn func(Match)) error {
	if depth > w.maxDepth {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := w.fs.ReadDir(ctx, dir)
	if err != nil {
		// Skip directories we can't read
		slog.Debug("skipping unreadable directory", "dir", dir, "error", err)
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			relPath = path
		}

		if entry.IsDir() {
			if w.shouldExclude(name, relPath, true) {
				continue
			}
			if err := w.walkDirectory(ctx, root, path, depth+1, fn); err != nil {
				return err
			}
			continue
		}

		if !slices.Contains(w.filenames, name) || w.shouldExclude(name, relPath, false) {
			continue
		}

		fn(Match{
			Root:     root,
			Path:     path,
			RelPath:  relPath,
			Filename: name,
		})
	}

	return nil
}

// shouldExclude checks if an entry should be skipped.
func (w *Walker) shouldExclude(name, relPath string, isDir bool) bool {
	if isDir {
		// Skip hidden directories (.git, .cache, ...)
		if strings.HasPrefix(name, ".") {
			return true
		}

		// Skip vendored and build directories
		if slices.Contains(skipDirs, name) {
			return true
		}
	}

	// Check configured excludes
	for _, pattern := range w.excludes {
		if matched, _ := filepath.Match(pattern, name); matched {
			return true
		}
		if matched, _ := filepath.Match(pattern, filepath.ToSlash(relPath)); matched {
			return true
		}
	}

	return false
}
