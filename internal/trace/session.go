// Package trace drives the interactive backward trace: blame the target
// line, show the revision that introduced it, offer fuzzy candidate
// ancestors, and step into the parent revision on the operator's choice.
package trace

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/masmgr/linetrace-go/internal/annotate"
	"github.com/masmgr/linetrace-go/internal/changeset"
	"github.com/masmgr/linetrace-go/internal/git"
	"github.com/masmgr/linetrace-go/internal/match"
	"github.com/masmgr/linetrace-go/internal/output"
)

// ErrHistoryExhausted reports that the trace asked for the parent of a root
// revision: there is no further history to step into. It is a terminal
// condition, not a failure.
var ErrHistoryExhausted = errors.New("no further history")

// RevisionExpr is a revision reference to inspect next: either a bare
// identifier or that identifier's first parent.
type RevisionExpr struct {
	Base   string
	Parent bool
}

// String renders the expression in git revision syntax.
func (e RevisionExpr) String() string {
	if e.Parent {
		return e.Base + "^"
	}
	return e.Base
}

// ParentOf returns the expression for id's first parent.
func ParentOf(id string) RevisionExpr {
	return RevisionExpr{Base: id, Parent: true}
}

// Cursor identifies where the backward trace currently stands. Line 0 means
// no specific line: the whole revision is shown and no candidates are
// computed. Cursors are values; every accepted choice produces a new one.
type Cursor struct {
	Path string
	Line int
	Rev  RevisionExpr
}

// Session holds everything one trace needs. There is no package-level
// state, so independent sessions could run side by side.
type Session struct {
	Store     git.Store
	In        io.Reader
	Out       io.Writer
	Params    match.Params
	Filter    *match.PathFilter
	Context   int // clip distance around highlights; <= 0 shows full diffs
	FullDiffs bool
}

// step is the result of one ResolveStep: the revision to present, the
// highlight labels, and the candidate matches in display order.
type step struct {
	rev     *changeset.Revision
	labels  map[changeset.LineKey]string
	matches []changeset.DiffLine
}

// Run drives the trace from start until the operator quits. It returns
// ErrHistoryExhausted when a step asks for the parent of the root revision;
// every other error is fatal and identifies the failing revision, file, or
// line.
func (s *Session) Run(ctx context.Context, cur Cursor) error {
	in := bufio.NewScanner(s.In)

	for {
		st, next, err := s.resolveStep(ctx, cur)
		if err != nil {
			return err
		}
		cur = next

		clip := s.Context
		if s.FullDiffs || len(st.labels) == 0 {
			clip = 0
		}
		output.WriteRevision(s.Out, st.rev, st.labels, clip)

		choice, ok := s.presentChoice(in, st)
		if !ok || choice.Kind == ChoiceQuit {
			return nil
		}

		switch choice.Kind {
		case ChoiceIndex:
			m := st.matches[choice.Index-1]
			cur = Cursor{Path: m.Path, Line: m.Old, Rev: ParentOf(st.rev.ID)}
		case ChoiceLocation:
			cur = Cursor{Path: choice.Path, Line: choice.Line, Rev: ParentOf(st.rev.ID)}
		}

		separator := strings.Repeat("=", 120)
		fmt.Fprintf(s.Out, "%s\n%s\n%s\n", separator, separator, separator)
	}
}

// resolveStep performs one backward resolution: annotate the cursor's line,
// fetch the change-set of the revision that introduced it, and compute the
// candidate matches. It returns the updated cursor, since the annotation may
// move the trace to a different file path (a rename followed by blame).
func (s *Session) resolveStep(ctx context.Context, cur Cursor) (step, Cursor, error) {
	canonical, err := s.Store.ResolveRevision(ctx, cur.Rev.String())
	if err != nil {
		if cur.Rev.Parent {
			return step{}, cur, fmt.Errorf("%w past %s", ErrHistoryExhausted, cur.Rev.Base)
		}
		return step{}, cur, err
	}

	fmt.Fprintf(s.Out, "... blame %s -- %s\n", canonical, cur.Path)
	rawBlame, err := s.Store.BlameFile(ctx, cur.Path, canonical)
	if err != nil {
		return step{}, cur, err
	}
	ann, err := annotate.Parse(cur.Path, rawBlame)
	if err != nil {
		return step{}, cur, err
	}

	var target annotate.LineAnnotation
	showID := canonical
	if cur.Line != 0 {
		target, err = ann.ByCurLine(cur.Line)
		if err != nil {
			return step{}, cur, fmt.Errorf("revision %s: %w", canonical, err)
		}
		// Blame may attribute the line to a different file when it moved
		// across files; the trace follows it there.
		cur.Path = target.Path
		// Boundary records abbreviate the hash; resolve the originating
		// revision to the canonical form its patch header echoes.
		showID, err = s.Store.ResolveRevision(ctx, target.Rev.ID)
		if err != nil {
			return step{}, cur, err
		}
	}

	fmt.Fprintf(s.Out, "... show %s\n", showID)
	rawPatch, err := s.Store.ShowPatch(ctx, showID)
	if err != nil {
		return step{}, cur, err
	}
	rev, err := changeset.Parse(showID, rawPatch)
	if err != nil {
		return step{}, cur, err
	}

	st := step{rev: rev, labels: make(map[changeset.LineKey]string)}
	if cur.Line != 0 {
		d, ok := rev.Diffs[cur.Path]
		if !ok {
			return step{}, cur, fmt.Errorf("revision %s has no diff for %s", showID, cur.Path)
		}
		// The line as it was introduced: keyed by (no pre-image, original
		// line number).
		targetLine, err := d.Line(0, target.OrigLine)
		if err != nil {
			return step{}, cur, fmt.Errorf("revision %s: %w", showID, err)
		}

		st.labels[targetLine.Key()] = "target"
		st.matches = match.FindMatches(targetLine, rev, s.Params, s.Filter)
		for i, m := range st.matches {
			st.labels[m.Key()] = strconv.Itoa(i + 1)
		}
	}

	return st, cur, nil
}

// presentChoice prompts until the operator enters a valid choice. The false
// return means input was exhausted, which ends the trace like a quit.
func (s *Session) presentChoice(in *bufio.Scanner, st step) (Choice, bool) {
	for {
		if len(st.matches) > 0 {
			fmt.Fprintf(s.Out, "Choose a match to continue (1-%d), enter another location (file:line), or enter f to see full diff or q to quit.\n", len(st.matches))
		} else {
			fmt.Fprintln(s.Out, "No matches. Enter another location (file:line), or enter f to see full diff or q to quit.")
		}

		if !in.Scan() {
			return Choice{}, false
		}

		choice, ok := ParseChoice(in.Text(), len(st.matches))
		if !ok {
			continue
		}
		if choice.Kind == ChoiceFullDiff {
			output.WriteRevision(s.Out, st.rev, st.labels, 0)
			continue
		}
		return choice, true
	}
}
