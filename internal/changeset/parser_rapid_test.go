package changeset

import (
	"fmt"
	"strings"
	"testing"

	"pgregory.net/rapid"
)

// genHunk builds a synthetic hunk body as a sequence of context, deletion,
// and addition lines, and returns the expected counts.
type hunkSpec struct {
	oldStart int
	newStart int
	kinds    []int // 0 = context, 1 = deletion, 2 = addition
}

func genHunkSpec() *rapid.Generator[hunkSpec] {
	return rapid.Custom(func(t *rapid.T) hunkSpec {
		return hunkSpec{
			oldStart: rapid.IntRange(1, 500).Draw(t, "oldStart"),
			newStart: rapid.IntRange(1, 500).Draw(t, "newStart"),
			kinds:    rapid.SliceOfN(rapid.IntRange(0, 2), 1, 40).Draw(t, "kinds"),
		}
	})
}

func (h hunkSpec) render() string {
	oldCount, newCount := 0, 0
	var body strings.Builder
	for i, k := range h.kinds {
		switch k {
		case 0:
			fmt.Fprintf(&body, " line %d\n", i)
			oldCount++
			newCount++
		case 1:
			fmt.Fprintf(&body, "-line %d\n", i)
			oldCount++
		case 2:
			fmt.Fprintf(&body, "+line %d\n", i)
			newCount++
		}
	}
	return fmt.Sprintf("diff --git a/f.txt b/f.txt\n--- a/f.txt\n+++ b/f.txt\n@@ -%d,%d +%d,%d @@\n%s",
		h.oldStart, oldCount, h.newStart, newCount, body.String())
}

// Parsing any synthetic hunk must yield pre- and post-image numbers that
// each increase by exactly one per line carrying that side, starting at the
// hunk header's values, with every line numbered on at least one side.
func TestParse_CounterProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		spec := genHunkSpec().Draw(t, "hunk")

		rev, err := Parse("abc", spec.render())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		d := rev.Diffs["f.txt"]
		if len(d.Lines) != len(spec.kinds) {
			t.Fatalf("expected %d lines, got %d", len(spec.kinds), len(d.Lines))
		}

		wantOld, wantNew := spec.oldStart, spec.newStart
		for i, l := range d.Lines {
			if l.Old == 0 && l.New == 0 {
				t.Fatalf("line %d has no number on either side", i)
			}
			switch spec.kinds[i] {
			case 0:
				if l.Old != wantOld || l.New != wantNew {
					t.Fatalf("context line %d = (%d,%d), want (%d,%d)", i, l.Old, l.New, wantOld, wantNew)
				}
				wantOld++
				wantNew++
			case 1:
				if l.Old != wantOld || l.New != 0 {
					t.Fatalf("deletion line %d = (%d,%d), want (%d,0)", i, l.Old, l.New, wantOld)
				}
				wantOld++
			case 2:
				if l.Old != 0 || l.New != wantNew {
					t.Fatalf("addition line %d = (%d,%d), want (0,%d)", i, l.Old, l.New, wantNew)
				}
				wantNew++
			}
		}
	})
}
