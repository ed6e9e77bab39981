package annotate

import (
	"errors"
	"fmt"
)

// ErrLineNotFound is returned when a line number is absent from a
// FileAnnotation (for example past the end of the file).
var ErrLineNotFound = errors.New("line not found in annotation")

// RevisionRef is a revision identifier from blame output. Root marks the
// boundary commit: git prefixes it with "^", which the parser strips so that
// call sites never re-derive that textual convention.
type RevisionRef struct {
	ID   string
	Root bool
}

// LineAnnotation is one line's attribution record. Path may differ from the
// queried file when the line moved across files.
type LineAnnotation struct {
	Path     string
	OrigLine int // position at the revision that introduced this line
	CurLine  int // position in the queried revision's file
	Rev      RevisionRef
	Text     string
}

// FileAnnotation is the per-line authorship history of one file as of one
// revision.
type FileAnnotation struct {
	Path  string
	Lines []LineAnnotation
}

// ByOrigLine returns the annotation whose original line number is n.
func (a *FileAnnotation) ByOrigLine(n int) (LineAnnotation, error) {
	for _, l := range a.Lines {
		if l.OrigLine == n {
			return l, nil
		}
	}
	return LineAnnotation{}, fmt.Errorf("%s: original line %d: %w", a.Path, n, ErrLineNotFound)
}

// ByCurLine returns the annotation whose current line number is n.
func (a *FileAnnotation) ByCurLine(n int) (LineAnnotation, error) {
	for _, l := range a.Lines {
		if l.CurLine == n {
			return l, nil
		}
	}
	return LineAnnotation{}, fmt.Errorf("%s: line %d: %w", a.Path, n, ErrLineNotFound)
}
