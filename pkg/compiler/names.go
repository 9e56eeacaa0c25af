package compiler

import (
	"strconv"
	"strings"

	"tortuga/pkg/deptree"
)

// genericNames are accepted in place of a proper noun when the caller allows
// generic turtle references.
var genericNames = map[string]bool{
	"turtle":   true,
	"everyone": true,
}

// numberWords covers the small numerals the annotation service leaves as
// plain tokens rather than digits.
var numberWords = map[string]int{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
}

func isProperNoun(w *deptree.Word) bool {
	return w.POS == "NNP" || w.POS == "NNPS"
}

// parseCount reads a non-negative integer from a numeral token, digits or a
// small number word.
func parseCount(text string) (int, bool) {
	if n, err := strconv.Atoi(text); err == nil {
		return n, n >= 0
	}
	n, ok := numberWords[strings.ToLower(text)]
	return n, ok
}

// extractNames resolves the coordinated turtle-name list rooted at w: the
// node itself plus its conj siblings. Each entry must be a proper noun, an
// allowed generic term, or carry exactly one compound child that is (the
// annotation service sometimes misattaches a unit token as the object with
// the real name linked via compound). A bad entry accumulates BadData but
// does not abort extraction of the rest.
func extractNames(w *deptree.Word, allowGeneric bool, errs *CEList) []string {
	if conj := w.Children("conj"); len(conj) > 0 {
		for _, cc := range w.Children("cc") {
			if strings.ToLower(cc.Text) != "and" {
				errs.Add(BadData, cc, "cannot list names with %q, only \"and\"", cc.Text)
			}
		}
	}
	list := append([]*deptree.Word{w}, w.Children("conj")...)
	var names []string
	for _, cand := range list {
		name, ok := resolveName(cand, allowGeneric)
		if !ok {
			errs.Add(BadData, cand, "%q does not name a turtle", cand.Text)
			continue
		}
		names = append(names, name)
	}
	return names
}

func resolveName(w *deptree.Word, allowGeneric bool) (string, bool) {
	if isProperNoun(w) {
		return w.Text, true
	}
	if allowGeneric && genericNames[strings.ToLower(w.Text)] {
		return strings.ToLower(w.Text), true
	}
	if comp := w.Children("compound"); len(comp) == 1 {
		if isProperNoun(comp[0]) {
			return comp[0].Text, true
		}
		if allowGeneric && genericNames[strings.ToLower(comp[0].Text)] {
			return strings.ToLower(comp[0].Text), true
		}
	}
	return "", false
}
