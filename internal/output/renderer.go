// Package output renders parsed revisions and annotations to a terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/masmgr/linetrace-go/internal/annotate"
	"github.com/masmgr/linetrace-go/internal/changeset"
)

var (
	addStyle = color.New(color.Bold, color.FgGreen)
	delStyle = color.New(color.FgRed, color.CrossedOut)
)

// labelWidth is the width of the highlight-label column.
const labelWidth = 8

// WriteRevision prints a revision header, its message, and each file's diff
// in sorted path order. labels maps highlighted line positions to short
// display labels ("target", "1", "2", ...). When context is positive, lines
// farther than context away from every highlighted line of the same file, in
// both the pre- and post-image numbering, are suppressed, and files with no
// highlighted lines are omitted entirely.
func WriteRevision(w io.Writer, rev *changeset.Revision, labels map[changeset.LineKey]string, context int) {
	fmt.Fprintf(w, "%s by %s on %s\n", rev.ID, rev.Author, rev.Date)
	fmt.Fprintf(w, "    %s\n\n", strings.ReplaceAll(rev.Message, "\n", "\n    "))

	for _, d := range rev.SortedDiffs() {
		fileLabels := make(map[changeset.LineKey]string)
		for key, label := range labels {
			if key.Path == d.Path {
				fileLabels[key] = label
			}
		}

		if context > 0 && len(fileLabels) == 0 {
			continue
		}

		writeFileDiff(w, d, fileLabels, context)
		fmt.Fprintln(w)
	}
}

func writeFileDiff(w io.Writer, d *changeset.FileDiff, labels map[changeset.LineKey]string, context int) {
	if len(d.Lines) == 0 {
		fmt.Fprintf(w, "%s (diff is blank; may be a binary file)\n", strings.Repeat(" ", labelWidth+2))
		return
	}

	marginLen := 0
	for _, l := range d.Lines {
		if n := len(margin(l)); n > marginLen {
			marginLen = n
		}
	}

	for _, l := range d.Lines {
		if context > 0 && !nearHighlight(l, labels, context) {
			continue
		}

		if label, ok := labels[l.Key()]; ok {
			fmt.Fprintf(w, "%*s: ", labelWidth, label)
		} else {
			fmt.Fprint(w, strings.Repeat(" ", labelWidth+2))
		}

		writeLine(w, l, marginLen)
	}
}

// nearHighlight reports whether l is within context distance of any
// highlighted line, in either numbering.
func nearHighlight(l changeset.DiffLine, labels map[changeset.LineKey]string, context int) bool {
	for key := range labels {
		if l.Old != 0 && key.Old != 0 && abs(l.Old-key.Old) < context {
			return true
		}
		if l.New != 0 && key.New != 0 && abs(l.New-key.New) < context {
			return true
		}
	}
	return false
}

func writeLine(w io.Writer, l changeset.DiffLine, marginLen int) {
	switch {
	case l.Old == 0:
		fmt.Fprintf(w, "%*s %s\n", marginLen, margin(l), addStyle.Sprintf("+ %s", l.Text))
	case l.New == 0:
		fmt.Fprintf(w, "%*s %s\n", marginLen, margin(l), delStyle.Sprintf("- %s", l.Text))
	default:
		fmt.Fprintf(w, "%*s | %s\n", marginLen, margin(l), l.Text)
	}
}

// margin renders the "path:old->new" gutter for one line, with a blank side
// for pure additions and deletions.
func margin(l changeset.DiffLine) string {
	switch {
	case l.Old == 0:
		return fmt.Sprintf("%s:     ->%5d", l.Path, l.New)
	case l.New == 0:
		return fmt.Sprintf("%s:%5d->     ", l.Path, l.Old)
	default:
		return fmt.Sprintf("%s:%5d->%5d", l.Path, l.Old, l.New)
	}
}

// WriteAnnotation prints one attribution record per line.
func WriteAnnotation(w io.Writer, ann *annotate.FileAnnotation) {
	for _, l := range ann.Lines {
		rev := l.Rev.ID
		if l.Rev.Root {
			rev = "^" + rev
		}
		fmt.Fprintf(w, "%s %s:(%d/%d) | %s\n", rev, l.Path, l.OrigLine, l.CurLine, l.Text)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
