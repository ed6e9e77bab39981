// Package match implements the fuzzy similarity heuristic used to propose
// candidate ancestor lines within a revision's change-set. The heuristic is
// deliberately simple: it favors lines sharing a leading token or phrase
// (likely the same statement edited at the tail) and leaves the final call
// to the human operator.
package match

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/masmgr/linetrace-go/internal/changeset"
)

// DefaultMinPrefixLength is the default shared-prefix ratio threshold.
const DefaultMinPrefixLength = 0.8

// Params configures the similarity heuristic. MinPrefixLength is the minimum
// ratio of shared leading text, relative to either line's length, required to
// call two lines a match. Valid values are in (0, 1].
type Params struct {
	MinPrefixLength float64
}

// DefaultParams returns the default heuristic parameters.
func DefaultParams() Params {
	return Params{MinPrefixLength: DefaultMinPrefixLength}
}

// LinesMatch reports whether two line texts are probably the same line,
// possibly edited. Both blank matches; exactly one blank does not; otherwise
// the longest common prefix must cover strictly more than MinPrefixLength of
// either line.
func LinesMatch(a, b string, p Params) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)

	if a == "" && b == "" {
		return true
	}
	if a == "" || b == "" {
		return false
	}

	prefix := commonPrefixLen(a, b)
	if float64(prefix)/float64(len(a)) > p.MinPrefixLength {
		return true
	}
	if float64(prefix)/float64(len(b)) > p.MinPrefixLength {
		return true
	}
	return false
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// PathFilter restricts which files of a change-set are scanned for
// candidates. An empty filter admits every path; exclude patterns win over
// include patterns.
type PathFilter struct {
	Include []string
	Exclude []string
}

// Admits reports whether candidates may be drawn from the given path.
func (f *PathFilter) Admits(path string) bool {
	if f == nil {
		return true
	}

	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range f.Exclude {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return false
		}
	}

	if len(f.Include) == 0 {
		return true
	}
	for _, pattern := range f.Include {
		if ok, _ := doublestar.Match(pattern, path); ok {
			return true
		}
	}
	return false
}

// FindMatches scans every line of every file diff in the revision and
// returns the candidates that plausibly originate the target line. A
// candidate must pass the similarity test, must not be the target line
// itself, and must have a pre-image line number: the trace proceeds
// backward, so pure additions cannot be ancestors. Candidates are returned
// in deterministic order (paths sorted, then diff order); this is also the
// 1-based numbering shown to the user.
func FindMatches(target changeset.DiffLine, rev *changeset.Revision, p Params, filter *PathFilter) []changeset.DiffLine {
	var matches []changeset.DiffLine

	for _, d := range rev.SortedDiffs() {
		if !filter.Admits(d.Path) {
			continue
		}
		for _, l := range d.Lines {
			if l == target || l.Old == 0 {
				continue
			}
			if LinesMatch(l.Text, target.Text, p) {
				matches = append(matches, l)
			}
		}
	}

	return matches
}
