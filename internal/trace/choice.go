package trace

import (
	"strconv"
	"strings"
)

// ChoiceKind identifies the operator's decision at a prompt.
type ChoiceKind int

const (
	// ChoiceQuit ends the trace.
	ChoiceQuit ChoiceKind = iota
	// ChoiceFullDiff redisplays the current revision without clipping.
	ChoiceFullDiff
	// ChoiceIndex selects a numbered candidate match.
	ChoiceIndex
	// ChoiceLocation selects an explicit file:line pair.
	ChoiceLocation
)

// Choice is one parsed prompt input.
type Choice struct {
	Kind  ChoiceKind
	Index int    // 1-based candidate number, for ChoiceIndex
	Path  string // for ChoiceLocation
	Line  int    // for ChoiceLocation
}

// ParseChoice parses one line of prompt input. max is the number of
// candidates on offer. A bare digit string is ambiguous between a candidate
// index and a line number; it is read as a candidate index, and only
// accepted when it falls within 1..max — line numbers must be entered in
// the explicit file:line form.
func ParseChoice(input string, max int) (Choice, bool) {
	input = strings.TrimSpace(input)

	if input == "q" {
		return Choice{Kind: ChoiceQuit}, true
	}
	if input == "f" {
		return Choice{Kind: ChoiceFullDiff}, true
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n < 1 || n > max {
			return Choice{}, false
		}
		return Choice{Kind: ChoiceIndex, Index: n}, true
	}

	if path, lineStr, ok := strings.Cut(input, ":"); ok {
		line, err := strconv.Atoi(lineStr)
		if err != nil || path == "" || line < 1 {
			return Choice{}, false
		}
		return Choice{Kind: ChoiceLocation, Path: path, Line: line}, true
	}

	return Choice{}, false
}
