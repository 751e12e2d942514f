// SPDX-License-Identifier: MIT

// Package discovery walks a working directory to list the files a push may
// include.
package discovery

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/skaphos/gitbuddy/internal/model"
)

// DefaultExclude holds the patterns skipped when no configuration overrides them.
var DefaultExclude = []string{"**/__pycache__/**", "**/*.pyc", "**/.DS_Store", "**/node_modules/**"}

// Options configures a listing.
type Options struct {
	Root    string
	Exclude []string // glob patterns, matched against slash separated relative paths
}

// ListFiles walks opts.Root and returns regular files sorted by path.
// Hidden entries (any path segment starting with ".") are skipped, which also
// keeps the .git directory out of the listing.
func ListFiles(ctx context.Context, opts Options) ([]model.FileEntry, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, err
	}

	var files []model.FileEntry
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path != root && errors.Is(err, fs.ErrPermission) {
				// Unreadable entries are left out of the listing.
				if d != nil && d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if strings.HasPrefix(d.Name(), ".") || MatchesExclude(rel, opts.Exclude) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			// Dangling symlinks and special files are not pushable.
			return nil
		}
		files = append(files, model.FileEntry{Path: rel, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// MatchesExclude checks whether a path matches any of the given exclude
// glob patterns.
func MatchesExclude(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	slashPath := filepath.ToSlash(path)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		match, err := doublestar.Match(pattern, slashPath)
		if err != nil {
			continue
		}
		if match {
			return true
		}
	}
	return false
}
