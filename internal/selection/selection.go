// SPDX-License-Identifier: MIT

// Package selection decides which listed files a push acts on.
package selection

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/skaphos/gitbuddy/internal/model"
	"github.com/skaphos/gitbuddy/internal/strutil"
)

// Mode is how files are chosen.
type Mode string

const (
	// All selects the full listing.
	All Mode = "all"
	// ChangedOnly selects new and modified files that still exist.
	ChangedOnly Mode = "changed"
	// Manual selects files by 1-based index.
	Manual Mode = "select"
)

// DoneWord ends manual index entry.
const DoneWord = "done"

// ParseMode maps user input to a Mode. The empty string maps to fallback.
func ParseMode(raw string, fallback Mode) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return fallback, nil
	case "a", "all":
		return All, nil
	case "c", "changed", "changed-only":
		return ChangedOnly, nil
	case "s", "select", "manual", "m":
		return Manual, nil
	default:
		return "", fmt.Errorf("unknown selection mode %q (use all, changed or select)", raw)
	}
}

// Select returns the paths to act on for All and ChangedOnly. Manual
// selection goes through a Picker instead.
func Select(root string, files []model.FileEntry, changes model.ChangeSet, mode Mode) []string {
	switch mode {
	case ChangedOnly:
		return existing(root, changes.Changed())
	default:
		return model.Paths(files)
	}
}

func existing(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if _, err := os.Stat(filepath.Join(root, filepath.FromSlash(p))); err != nil {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ItemStatus is the verdict for one entry of a manual index list.
type ItemStatus int

const (
	// ItemAdded means the index was valid and newly selected.
	ItemAdded ItemStatus = iota
	// ItemDuplicate means the index was already selected.
	ItemDuplicate
	// ItemOutOfRange means the number is not a listed index.
	ItemOutOfRange
	// ItemNotNumber means the entry is not an integer.
	ItemNotNumber
)

// ItemReport describes how one entry of an index list was handled.
type ItemReport struct {
	Raw    string
	Index  int
	Path   string
	Status ItemStatus
}

// Valid reports whether the item refers to a listed file.
func (r ItemReport) Valid() bool {
	return r.Status == ItemAdded || r.Status == ItemDuplicate
}

// Picker accumulates manual selections across several index lists.
type Picker struct {
	files    []model.FileEntry
	selected []int
	seen     map[int]struct{}
}

// NewPicker returns a Picker over the displayed listing.
func NewPicker(files []model.FileEntry) *Picker {
	return &Picker{files: files, seen: make(map[int]struct{})}
}

// Add processes a comma separated list of 1-based indices. Every item gets
// its own report; bad items never stop the rest of the list.
func (p *Picker) Add(input string) []ItemReport {
	items := strutil.SplitCSV(input)
	reports := make([]ItemReport, 0, len(items))
	for _, raw := range items {
		rep := ItemReport{Raw: raw}
		idx, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			rep.Status = ItemNotNumber
		case idx < 1 || idx > len(p.files):
			rep.Index = idx
			rep.Status = ItemOutOfRange
		default:
			rep.Index = idx
			rep.Path = p.files[idx-1].Path
			if _, dup := p.seen[idx]; dup {
				rep.Status = ItemDuplicate
			} else {
				p.seen[idx] = struct{}{}
				p.selected = append(p.selected, idx)
				rep.Status = ItemAdded
			}
		}
		reports = append(reports, rep)
	}
	return reports
}

// Indices returns the selected 1-based indices in first-seen order.
func (p *Picker) Indices() []int {
	return append([]int(nil), p.selected...)
}

// Paths returns the selected paths in first-seen order.
func (p *Picker) Paths() []string {
	out := make([]string, 0, len(p.selected))
	for _, idx := range p.selected {
		out = append(out, p.files[idx-1].Path)
	}
	return out
}

// IsDone reports whether input is the sentinel that ends manual entry.
func IsDone(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), DoneWord)
}
