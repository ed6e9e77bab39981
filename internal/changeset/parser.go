package changeset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// hunkHeader matches "@@ -old-start[,old-count] +new-start[,new-count] @@".
// The count part is optional: git omits it for single-line ranges.
var hunkHeader = regexp.MustCompile(`^@@ -([0-9]+)(?:,[0-9]+)? \+([0-9]+)(?:,[0-9]+)? @@`)

// Parse turns the raw output of "git show <id>" into a Revision. Lines before
// the first diff section are commit metadata; each "diff " line opens a new
// file section. Malformed input is always a hard error: tolerating it would
// corrupt the line-number bookkeeping that later matching depends on.
func Parse(id, raw string) (*Revision, error) {
	rev := &Revision{
		ID:    id,
		Diffs: make(map[string]*FileDiff),
	}

	var message []string
	var sections [][]string

	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}

		if len(sections) == 0 {
			switch {
			case strings.HasPrefix(line, "commit "):
				if got := line[7:]; got != rev.ID {
					return nil, fmt.Errorf("revision %s: patch header names %q", rev.ID, got)
				}
				continue
			case strings.HasPrefix(line, "Author:"):
				rev.Author = strings.TrimSpace(line[7:])
				continue
			case strings.HasPrefix(line, "Date:"):
				rev.Date = strings.TrimSpace(line[5:])
				continue
			}
		}

		if strings.HasPrefix(line, "diff") {
			sections = append(sections, nil)
		}

		if len(sections) > 0 {
			sections[len(sections)-1] = append(sections[len(sections)-1], line)
			continue
		}

		// Message lines are indented by four spaces in git show output.
		if len(line) < 4 {
			return nil, fmt.Errorf("revision %s: bad message line %q", rev.ID, line)
		}
		message = append(message, line[4:])
	}

	rev.Message = strings.Join(message, "\n")

	for _, section := range sections {
		d, err := parseFileDiff(rev.ID, section)
		if err != nil {
			return nil, err
		}
		rev.Diffs[d.Path] = d
	}

	return rev, nil
}

// parseFileDiff parses one "diff --git" section into a FileDiff. The two
// running counters start at each hunk header's values; context lines advance
// both, deletions only the pre-image counter, additions only the post-image
// counter.
func parseFileDiff(id string, lines []string) (*FileDiff, error) {
	d := &FileDiff{}

	inHunk := false
	oldNum, newNum := 0, 0

	for _, line := range lines {
		if !inHunk {
			if strings.HasPrefix(line, "--- a/") || strings.HasPrefix(line, "+++ b/") {
				path := line[6:]
				if d.Path == "" {
					d.Path = path
				} else if d.Path != path {
					return nil, fmt.Errorf("revision %s: diff paths disagree: %q vs %q", id, d.Path, path)
				}
				continue
			}
		}

		if m := hunkHeader.FindStringSubmatch(line); m != nil {
			inHunk = true
			oldNum, _ = strconv.Atoi(m[1])
			newNum, _ = strconv.Atoi(m[2])
			continue
		}

		if !inHunk {
			// Mode lines, "index", binary notices, "--- /dev/null" and the
			// like carry no line content.
			continue
		}

		switch line[0] {
		case ' ':
			d.Lines = append(d.Lines, DiffLine{Path: d.Path, Old: oldNum, New: newNum, Text: trimRight(line[1:])})
			oldNum++
			newNum++
		case '-':
			d.Lines = append(d.Lines, DiffLine{Path: d.Path, Old: oldNum, Text: trimRight(line[1:])})
			oldNum++
		case '+':
			d.Lines = append(d.Lines, DiffLine{Path: d.Path, New: newNum, Text: trimRight(line[1:])})
			newNum++
		case '\\':
			// "\ No newline at end of file": a marker, not a line.
		default:
			return nil, fmt.Errorf("revision %s: unrecognized diff line %q", id, line)
		}
	}

	return d, nil
}

func trimRight(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
