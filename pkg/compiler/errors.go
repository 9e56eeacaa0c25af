package compiler

import (
	"fmt"
	"sort"
	"strings"

	"tortuga/pkg/deptree"
)

// Code classifies a compile error.
type Code string

const (
	NoCSR              Code = "NoCSR"
	ManyCSR            Code = "ManyCSR"
	MissingData        Code = "MissingData"
	BadData            Code = "BadData"
	BadCC              Code = "BadCC"
	TooManyValues      Code = "TooManyValues"
	TooManyOccurrences Code = "TooManyOccurrences"
)

// CompileError is one diagnostic, attributed to the word whose phrase was
// being recognized. Word may be nil only for sentence construction failures.
type CompileError struct {
	Code    Code
	Word    *deptree.Word
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// CEList aggregates the compile errors of one phrase. It implements error so
// a recognizer can raise it directly; an empty list is never returned as a
// non-nil error.
type CEList struct {
	Errors []*CompileError
}

func errorf(code Code, word *deptree.Word, format string, args ...any) *CEList {
	l := &CEList{}
	l.Add(code, word, format, args...)
	return l
}

// Add appends one error to the list.
func (l *CEList) Add(code Code, word *deptree.Word, format string, args ...any) {
	l.Errors = append(l.Errors, &CompileError{Code: code, Word: word, Message: fmt.Sprintf(format, args...)})
}

// Merge absorbs the errors of other.
func (l *CEList) Merge(other *CEList) {
	if other != nil {
		l.Errors = append(l.Errors, other.Errors...)
	}
}

// Err returns l as an error, or nil when no errors were recorded.
func (l *CEList) Err() error {
	if len(l.Errors) == 0 {
		return nil
	}
	return l
}

// Codes returns the distinct error codes present, sorted, for assertions in
// tests and corpus runs.
func (l *CEList) Codes() []string {
	seen := make(map[string]bool)
	var codes []string
	for _, e := range l.Errors {
		if !seen[string(e.Code)] {
			seen[string(e.Code)] = true
			codes = append(codes, string(e.Code))
		}
	}
	sort.Strings(codes)
	return codes
}

// Error renders the report: errors are grouped by the word they point at,
// groups ordered by token index, each headed by the offending phrase.
func (l *CEList) Error() string {
	type group struct {
		index  int
		phrase string
		lines  []string
	}
	groups := make(map[int]*group)
	var order []int
	for _, e := range l.Errors {
		idx := 0
		phrase := "<sentence>"
		if e.Word != nil {
			idx = e.Word.Index
			phrase = e.Word.Phrase
		}
		g, ok := groups[idx]
		if !ok {
			g = &group{index: idx, phrase: phrase}
			groups[idx] = g
			order = append(order, idx)
		}
		g.lines = append(g.lines, fmt.Sprintf("  %s: %s", e.Code, e.Message))
	}
	sort.Ints(order)

	var b strings.Builder
	for i, idx := range order {
		if i > 0 {
			b.WriteByte('\n')
		}
		g := groups[idx]
		b.WriteString(g.phrase)
		for _, line := range g.lines {
			b.WriteByte('\n')
			b.WriteString(line)
		}
	}
	return b.String()
}
