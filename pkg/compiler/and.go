package compiler

import (
	"fmt"
	"strings"

	"tortuga/pkg/deptree"
)

// loopWrappers are the conjunct head words that introduce a repetition block
// instead of a command of their own ("... and do/repeat <body> twice").
var loopWrappers = map[string]bool{
	"do":     true,
	"repeat": true,
}

// repeatKeywords map the literal count adverbs to their iteration count.
var repeatKeywords = []struct {
	word  string
	count int
}{
	{"once", 1},
	{"twice", 2},
	{"thrice", 3},
}

// AndCSR splits a conjunction into its parts and compiles each in surface
// order. It is the only nonterminal recognizer and the only place the tree is
// mutated: the cc/conj edges are tombstoned before the head part is
// recompiled so the conjunction is not recognized again.
type AndCSR struct{}

func (AndCSR) Name() string { return "AndCSR" }

func (AndCSR) Detect(w *deptree.Word) (Params, error) {
	cc := w.Children("cc")
	conj := w.Children("conj")
	if len(cc) == 0 && len(conj) == 0 {
		return nil, nil
	}
	if len(cc) == 0 || len(conj) == 0 {
		return nil, errorf(BadCC, w, "%q pairs cc and conj unevenly", w.Phrase).Err()
	}
	for _, c := range cc {
		if strings.ToLower(c.Text) != "and" {
			return nil, errorf(BadData, c, "cannot join commands with %q, only \"and\"", c.Text).Err()
		}
	}
	parts := append([]*deptree.Word{w}, conj...)
	return Params{"parts": parts}, nil
}

func (AndCSR) Apply(c *Compiler, w *deptree.Word, p Params) ([]string, error) {
	parts := p["parts"].([]*deptree.Word)
	w.DropEdges("cc", "conj")

	var lines []string
	for _, part := range parts {
		var sub []string
		var err error
		if loopWrappers[strings.ToLower(part.Text)] {
			sub, err = compileWrapper(c, part)
		} else {
			sub, err = c.Convert(part)
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, sub...)
	}
	return lines, nil
}

// compileWrapper compiles a loop-wrapper part into a repeat block: the
// wrapper word contributes no instruction itself, its repetition count is
// stripped out, and the remaining dependents form the loop body.
func compileWrapper(c *Compiler, wrap *deptree.Word) ([]string, error) {
	count, countWord, err := findRepeatCount(wrap)
	if err != nil {
		return nil, err
	}

	var bodies []*deptree.Word
	for _, child := range wrap.Dependents() {
		if countWord != nil && spanContains(child, countWord) {
			continue
		}
		bodies = append(bodies, child)
	}
	if len(bodies) == 0 {
		return nil, errorf(MissingData, wrap, "%q has nothing to repeat", wrap.Phrase).Err()
	}

	lines := []string{fmt.Sprintf("repeat %d", count)}
	for _, body := range bodies {
		sub, err := c.Convert(body)
		if err != nil {
			return nil, err
		}
		lines = append(lines, sub...)
	}
	return append(lines, "end"), nil
}

// findRepeatCount resolves the wrapper's iteration count. A "<n> times"
// construct (numeral via nummod under the times token) takes priority; the
// literal keywords once/twice/thrice come second. It also returns the word
// carrying the count so the caller can exclude its subtree from the body.
//
// Only the wrapper's direct dependents are searched: a count buried deeper
// belongs to a nested wrapper, not this one.
func findRepeatCount(wrap *deptree.Word) (int, *deptree.Word, error) {
	var timesWords []*deptree.Word
	for _, sw := range wrap.Dependents() {
		if strings.ToLower(sw.Text) == "times" {
			timesWords = append(timesWords, sw)
		}
	}
	if len(timesWords) > 1 {
		return 0, nil, errorf(TooManyOccurrences, wrap, "%q says \"times\" more than once", wrap.Phrase).Err()
	}
	if len(timesWords) == 1 {
		times := timesWords[0]
		num := times.Follow("nummod")
		if num == nil {
			return 0, nil, errorf(MissingData, times, "%q does not say how many times", wrap.Phrase).Err()
		}
		n, ok := parseCount(num.Text)
		if !ok {
			return 0, nil, errorf(BadData, num, "%q is not a whole number of times", num.Text).Err()
		}
		return n, times, nil
	}

	var found []*deptree.Word
	count := 0
	for _, kw := range repeatKeywords {
		for _, sw := range wrap.Dependents() {
			if strings.ToLower(sw.Text) == kw.word {
				found = append(found, sw)
				count = kw.count
			}
		}
	}
	switch len(found) {
	case 0:
		return 0, nil, errorf(MissingData, wrap, "%q does not say how often", wrap.Phrase).Err()
	case 1:
		return count, found[0], nil
	default:
		return 0, nil, errorf(TooManyValues, wrap, "%q gives more than one repetition count", wrap.Phrase).Err()
	}
}

// spanContains reports whether target is inside the subtree of w.
func spanContains(w, target *deptree.Word) bool {
	for _, sw := range w.Span() {
		if sw == target {
			return true
		}
	}
	return false
}
