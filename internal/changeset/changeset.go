package changeset

import (
	"errors"
	"fmt"
	"sort"
)

// ErrLineNotFound is returned when a (pre-image, post-image) line key is
// absent from a FileDiff.
var ErrLineNotFound = errors.New("line not found in diff")

// DiffLine is one line of a unified diff body. Line numbers are 1-based;
// 0 means the line has no number on that side (Old == 0 for pure additions,
// New == 0 for pure deletions). Equality is structural: plain ==.
type DiffLine struct {
	Path string
	Old  int // pre-image line number
	New  int // post-image line number
	Text string
}

// Key returns the highlight-set key for this line.
func (l DiffLine) Key() LineKey {
	return LineKey{Path: l.Path, Old: l.Old, New: l.New}
}

// LineKey identifies a diff line position within a revision.
type LineKey struct {
	Path string
	Old  int
	New  int
}

// FileDiff is the ordered set of line changes to one file within one revision.
type FileDiff struct {
	Path  string
	Lines []DiffLine
}

// Line returns the diff line with exactly the given pre/post-image numbers.
func (d *FileDiff) Line(old, new int) (DiffLine, error) {
	for _, l := range d.Lines {
		if l.Old == old && l.New == new {
			return l, nil
		}
	}
	return DiffLine{}, fmt.Errorf("%s: (%d,%d): %w", d.Path, old, new, ErrLineNotFound)
}

// Revision is one commit's parsed change-set.
type Revision struct {
	ID      string
	Author  string
	Date    string
	Message string
	Diffs   map[string]*FileDiff
}

// SortedDiffs returns the file diffs ordered by path. This order is also the
// candidate numbering order shown to the user, so it must be deterministic.
func (r *Revision) SortedDiffs() []*FileDiff {
	paths := make([]string, 0, len(r.Diffs))
	for p := range r.Diffs {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	diffs := make([]*FileDiff, 0, len(paths))
	for _, p := range paths {
		diffs = append(diffs, r.Diffs[p])
	}
	return diffs
}
