package annotate

import (
	"fmt"
	"strconv"
	"strings"
)

// Parse turns the raw output of "git blame -slfn" into a FileAnnotation.
// Each line carries a header terminated by the first ')':
//
//	<revision> <path> <orig-line> <cur-line>) <text>
//
// Everything after the ')' and its separator is verbatim line text,
// including leading whitespace. Any other shape is a hard error.
func Parse(path, raw string) (*FileAnnotation, error) {
	ann := &FileAnnotation{Path: path}

	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}

		paren := strings.IndexByte(line, ')')
		if paren == -1 {
			return nil, fmt.Errorf("%s: malformed blame line %q", path, line)
		}

		fields := strings.Fields(line[:paren])
		if len(fields) != 4 {
			return nil, fmt.Errorf("%s: malformed blame header %q", path, line[:paren])
		}

		orig, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("%s: bad original line number in %q", path, line)
		}
		cur, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%s: bad current line number in %q", path, line)
		}

		rev := RevisionRef{ID: fields[0]}
		if strings.HasPrefix(rev.ID, "^") {
			rev = RevisionRef{ID: rev.ID[1:], Root: true}
		}

		text := ""
		if paren+2 <= len(line) {
			text = line[paren+2:]
		}

		ann.Lines = append(ann.Lines, LineAnnotation{
			Path:     fields[1],
			OrigLine: orig,
			CurLine:  cur,
			Rev:      rev,
			Text:     text,
		})
	}

	return ann, nil
}
