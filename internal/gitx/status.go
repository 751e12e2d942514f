// SPDX-License-Identifier: MIT
package gitx

import (
	"strconv"
	"strings"

	"github.com/skaphos/gitbuddy/internal/model"
)

// Status code groups, matched against the trimmed two-character code.
// The groups overlap ("AM" is in two of them); the first group wins.
var (
	modifiedCodes = map[string]struct{}{"M": {}, "MM": {}, "AM": {}}
	newCodes      = map[string]struct{}{"A": {}, "??": {}, "AM": {}}
	deletedCodes  = map[string]struct{}{"D": {}, "AD": {}, "MD": {}}
)

const untrackedMarker = '?'

// ClassifyStatus turns the outcome of `git status --porcelain` into a
// ChangeSet. A failed outcome classifies as empty.
func ClassifyStatus(o Outcome) model.ChangeSet {
	if !o.OK {
		return model.ChangeSet{}
	}
	return ParsePorcelainStatus(o.Output)
}

// ParsePorcelainStatus parses porcelain v1 output into a ChangeSet.
func ParsePorcelainStatus(output string) model.ChangeSet {
	var cs model.ChangeSet
	seen := make(map[string]struct{})
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 3 || strings.HasPrefix(line, "## ") {
			continue
		}
		code := line[:2]
		path := porcelainPath(line[3:])
		if path == "" {
			continue
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		trimmed := strings.TrimSpace(code)
		switch {
		case inGroup(modifiedCodes, trimmed):
			cs.Modified = append(cs.Modified, path)
		case inGroup(newCodes, trimmed):
			cs.New = append(cs.New, path)
		case inGroup(deletedCodes, trimmed):
			cs.Deleted = append(cs.Deleted, path)
		case code[0] == untrackedMarker || code[1] == untrackedMarker:
			cs.New = append(cs.New, path)
		default:
			cs.Modified = append(cs.Modified, path)
		}
	}
	return cs
}

// UntrackedPaths returns the paths reported with the "??" code.
func UntrackedPaths(output string) []string {
	var paths []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if len(line) < 3 || !strings.HasPrefix(line, "??") {
			continue
		}
		if p := porcelainPath(line[3:]); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

func inGroup(group map[string]struct{}, code string) bool {
	_, ok := group[code]
	return ok
}

// porcelainPath extracts the path part of a status line. Renames and copies
// report "old -> new"; the destination is the path that exists on disk.
func porcelainPath(raw string) string {
	if i := strings.Index(raw, " -> "); i >= 0 {
		raw = raw[i+len(" -> "):]
	}
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, `"`) {
		if unquoted, err := strconv.Unquote(raw); err == nil {
			return unquoted
		}
	}
	return raw
}

// ParseBranchHeader extracts the branch name from the "## " header line of
// `git status --porcelain -b`. It returns "" for detached HEAD or when no
// header is present.
func ParseBranchHeader(output string) string {
	first, _, _ := strings.Cut(output, "\n")
	first = strings.TrimSpace(first)
	if !strings.HasPrefix(first, "## ") {
		return ""
	}
	info := strings.TrimPrefix(first, "## ")
	for _, prefix := range []string{"No commits yet on ", "Initial commit on "} {
		if strings.HasPrefix(info, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(info, prefix))
		}
	}
	if strings.HasPrefix(info, "HEAD (no branch)") {
		return ""
	}
	if branch, _, found := strings.Cut(info, "..."); found {
		return strings.TrimSpace(branch)
	}
	// "## main" when there is no upstream.
	branch, _, _ := strings.Cut(info, " ")
	return strings.TrimSpace(branch)
}
