// SPDX-License-Identifier: MIT

// Package model defines the core data types used throughout gitbuddy.
package model

import "strings"

// ChangeSet is the classification of one porcelain status report.
// The three path lists are pairwise disjoint and keep first-seen order.
type ChangeSet struct {
	// New holds untracked and newly added paths.
	New []string `json:"new" yaml:"new"`
	// Modified holds paths with content changes.
	Modified []string `json:"modified" yaml:"modified"`
	// Deleted holds removed paths.
	Deleted []string `json:"deleted" yaml:"deleted"`
}

// Empty reports whether no path was classified.
func (c ChangeSet) Empty() bool {
	return c.Len() == 0
}

// Len is the total number of classified paths.
func (c ChangeSet) Len() int {
	return len(c.New) + len(c.Modified) + len(c.Deleted)
}

// Changed returns new then modified paths. Deleted paths are excluded because
// there is nothing on disk left to stage by name.
func (c ChangeSet) Changed() []string {
	out := make([]string, 0, len(c.New)+len(c.Modified))
	out = append(out, c.New...)
	out = append(out, c.Modified...)
	return out
}

// RemoteTarget identifies the repository and branch a session pushes to.
type RemoteTarget struct {
	// URL is the canonical https clone URL ending in ".git".
	URL string `json:"url" yaml:"url"`
	// Host is the lowercased remote host, for example "github.com".
	Host string `json:"host" yaml:"host"`
	// Owner is the user or organization segment.
	Owner string `json:"owner" yaml:"owner"`
	// Repo is the repository name without ".git".
	Repo string `json:"repo" yaml:"repo"`
	// Branch is the branch pushed to. Empty means auto-detect.
	Branch string `json:"branch,omitempty" yaml:"branch,omitempty"`
}

// WithBranch returns a copy of t targeting branch.
func (t RemoteTarget) WithBranch(branch string) RemoteTarget {
	t.Branch = strings.TrimSpace(branch)
	return t
}

// FileEntry is one row of a working directory listing.
type FileEntry struct {
	// Path is relative to the listing root and slash separated.
	Path string `json:"path" yaml:"path"`
	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// Paths extracts the paths of entries in order.
func Paths(entries []FileEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Path)
	}
	return out
}
