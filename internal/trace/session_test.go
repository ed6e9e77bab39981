package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/masmgr/linetrace-go/internal/git"
	"github.com/masmgr/linetrace-go/internal/match"
)

// Synthetic two-revision history: r1 rewrote line 5 of a.txt (same leading
// text, differing trailing token) and r2 touched an unrelated line, so
// blaming a.txt:5 at r2 attributes the line to r1.
const r2Blame = `r1 a.txt 1 1) alpha
r1 a.txt 2 2) beta
r1 a.txt 3 3) gamma
r1 a.txt 4 4) delta
r1 a.txt 5 5) result = compute(x) + 2
`

const r1Patch = `commit r1
Author: Alice Example <alice@example.com>
Date:   Mon Aug 4 09:00:00 2025 +0000

    recompute result

diff --git a/a.txt b/a.txt
index 1111111..2222222 100644
--- a/a.txt
+++ b/a.txt
@@ -1,5 +1,5 @@
 alpha
 beta
 gamma
 delta
-result = compute(x) + 1
+result = compute(x) + 2
`

func newTestStore() *git.MockStore {
	return &git.MockStore{
		Revisions: map[string]string{"r2": "r2", "HEAD": "r2", "r1": "r1"},
		Patches:   map[string]string{"r1": r1Patch},
		Blames:    map[string]string{"r2 a.txt": r2Blame},
	}
}

func newTestSession(store git.Store, input string, out *bytes.Buffer) *Session {
	return &Session{
		Store:   store,
		In:      strings.NewReader(input),
		Out:     out,
		Params:  match.DefaultParams(),
		Context: 10,
	}
}

func TestRun_QuitAfterFirstStep(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "q\n", &out)

	err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "r2"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"... blame r2 -- a.txt",
		"... show r1",
		"r1 by Alice Example <alice@example.com> on Mon Aug 4 09:00:00 2025 +0000",
		"recompute result",
		"Choose a match to continue (1-1)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q\n%s", want, got)
		}
	}
}

// Selecting the single candidate steps the cursor to (a.txt, 5, r1^); the
// mock cannot resolve r1's parent, so the trace ends with the distinct
// history-exhausted condition rather than a generic failure.
func TestRun_SelectCandidateStepsToParent(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "1\n", &out)

	err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "r2"}})
	if !errors.Is(err, ErrHistoryExhausted) {
		t.Fatalf("expected ErrHistoryExhausted, got %v", err)
	}
	if !strings.Contains(err.Error(), "r1") {
		t.Errorf("error should name the exhausted revision: %v", err)
	}

	// Exactly one candidate was on offer.
	if !strings.Contains(out.String(), "Choose a match to continue (1-1)") {
		t.Errorf("expected exactly one candidate:\n%s", out.String())
	}
}

// The target line and the candidate are labeled in the rendered diff.
func TestRun_HighlightLabels(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "q\n", &out)

	if err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "r2"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "target: ") {
		t.Errorf("output missing target label:\n%s", got)
	}
	if !strings.Contains(got, "       1: ") {
		t.Errorf("output missing candidate label:\n%s", got)
	}
}

// Rejected input re-prompts; f redisplays; q then ends the trace cleanly.
func TestRun_RejectAndFullDiff(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "bogus\nf\nq\n", &out)

	if err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "r2"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompts := strings.Count(out.String(), "Choose a match to continue")
	if prompts != 3 {
		t.Errorf("expected 3 prompts (initial, after reject, after full diff), got %d", prompts)
	}
}

// An explicit file:line choice also advances to the shown revision's parent.
func TestRun_ExplicitLocation(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "a.txt:3\n", &out)

	err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "r2"}})
	if !errors.Is(err, ErrHistoryExhausted) {
		t.Fatalf("expected ErrHistoryExhausted, got %v", err)
	}
}

// EOF on input ends the trace like a quit.
func TestRun_InputExhausted(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "", &out)

	if err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "r2"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// A line number missing from the annotation is fatal and names the revision.
func TestRun_LineNotInAnnotation(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "q\n", &out)

	err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 99, Rev: RevisionExpr{Base: "r2"}})
	if err == nil {
		t.Fatal("expected error for missing line")
	}
	if !strings.Contains(err.Error(), "r2") {
		t.Errorf("error should name the revision: %v", err)
	}
}

// An unresolvable starting revision is a plain failure, not history
// exhaustion.
func TestRun_UnknownStartRevision(t *testing.T) {
	color.NoColor = true
	var out bytes.Buffer
	s := newTestSession(newTestStore(), "q\n", &out)

	err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "nope"}})
	if err == nil {
		t.Fatal("expected error for unknown revision")
	}
	if errors.Is(err, ErrHistoryExhausted) {
		t.Errorf("unknown start revision must not read as history exhaustion: %v", err)
	}
}

// With no line number, the whole revision is shown and no candidates are
// computed.
func TestRun_NoLine(t *testing.T) {
	color.NoColor = true
	store := newTestStore()
	store.Patches["r2"] = strings.ReplaceAll(r1Patch, "commit r1", "commit r2")

	var out bytes.Buffer
	s := newTestSession(store, "q\n", &out)

	if err := s.Run(context.Background(), Cursor{Path: "a.txt", Rev: RevisionExpr{Base: "r2"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := out.String()
	if !strings.Contains(got, "No matches.") {
		t.Errorf("expected the no-candidates prompt:\n%s", got)
	}
	if strings.Contains(got, "target: ") {
		t.Errorf("no target label expected without a line:\n%s", got)
	}
}

// A line attributed to the root commit carries a boundary marker with an
// abbreviated hash; the trace resolves it and shows the root revision.
func TestRun_RootBoundaryLine(t *testing.T) {
	color.NoColor = true
	store := &git.MockStore{
		Revisions: map[string]string{
			"r2":      "r2",
			"r0trunc": "r0canonical",
		},
		Patches: map[string]string{
			"r0canonical": strings.ReplaceAll(r1Patch, "commit r1", "commit r0canonical"),
		},
		Blames: map[string]string{
			"r2 a.txt": "^r0trunc a.txt 5 5) result = compute(x) + 2\n",
		},
	}

	var out bytes.Buffer
	s := newTestSession(store, "q\n", &out)

	if err := s.Run(context.Background(), Cursor{Path: "a.txt", Line: 5, Rev: RevisionExpr{Base: "r2"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "... show r0canonical") {
		t.Errorf("expected the canonical root revision to be shown:\n%s", out.String())
	}
}

func TestRevisionExpr_String(t *testing.T) {
	if got := (RevisionExpr{Base: "abc"}).String(); got != "abc" {
		t.Errorf("String() = %q", got)
	}
	if got := ParentOf("abc").String(); got != "abc^" {
		t.Errorf("ParentOf String() = %q", got)
	}
}
