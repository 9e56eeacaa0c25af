package compiler

import (
	"strings"

	"tortuga/pkg/deptree"
)

// makeActions maps lifecycle verbs to their canonical action.
var makeActions = map[string]string{
	"make":    "create",
	"create":  "create",
	"build":   "create",
	"spawn":   "create",
	"destroy": "destroy",
	"remove":  "destroy",
	"kill":    "destroy",
}

// MakeCSR recognizes turtle lifecycle commands. The direct object either is
// the name list itself, or is the generic "turtle"/"turtles" with the real
// names introduced by an embedded clause ("a turtle named Tom").
type MakeCSR struct{}

func (MakeCSR) Name() string { return "MakeCSR" }

func (MakeCSR) Detect(w *deptree.Word) (Params, error) {
	var verbs []*deptree.Word
	for _, sw := range w.Span() {
		if _, ok := makeActions[strings.ToLower(sw.Text)]; ok && sw.POS == "VB" {
			verbs = append(verbs, sw)
		}
	}
	if len(verbs) != 1 {
		return nil, nil
	}
	verb := verbs[0]
	action := makeActions[strings.ToLower(verb.Text)]

	errs := &CEList{}
	dobjs := verb.Children("dobj")
	if len(dobjs) == 0 {
		return nil, errorf(MissingData, verb, "%q does not say what to %s", w.Phrase, verb.Text).Err()
	}
	if len(dobjs) > 1 {
		errs.Add(TooManyValues, verb, "%q has more than one object", w.Phrase)
	}
	dobj := dobjs[0]

	var names []string
	switch strings.ToLower(dobj.Text) {
	case "turtles":
		names = clauseNames(dobj, errs)
	case "turtle":
		names = singularGenericNames(dobj, action, errs)
	default:
		names = extractNames(dobj, true, errs)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	return Params{"action": action, "names": names}, nil
}

// clauseNames resolves names from the embedded clause of a generic object:
// acl introduces the clause verb ("named"), xcomp the first actual name.
func clauseNames(dobj *deptree.Word, errs *CEList) []string {
	acls := dobj.Children("acl")
	switch {
	case len(acls) == 0:
		errs.Add(MissingData, dobj, "%q does not say which turtles", dobj.Phrase)
		return nil
	case len(acls) > 1:
		errs.Add(TooManyOccurrences, dobj, "%q names its turtles more than once", dobj.Phrase)
		return nil
	}
	xcomps := acls[0].Children("xcomp")
	switch {
	case len(xcomps) == 0:
		errs.Add(MissingData, acls[0], "%q does not introduce any names", acls[0].Phrase)
		return nil
	case len(xcomps) > 1:
		errs.Add(TooManyOccurrences, acls[0], "%q introduces names more than once", acls[0].Phrase)
		return nil
	}
	return extractNames(xcomps[0], true, errs)
}

// singularGenericNames handles a direct object of literal "turtle". Creation
// needs "a" (or no) determiner and an embedded clause; destruction of "the
// turtle" with no clause targets the generic turtle itself.
func singularGenericNames(dobj *deptree.Word, action string, errs *CEList) []string {
	det, ok := dobj.Child("det")
	if !ok {
		errs.Add(TooManyValues, dobj, "%q has more than one determiner", dobj.Phrase)
		return nil
	}
	detText := ""
	if det != nil {
		detText = strings.ToLower(det.Text)
	}

	if action == "create" {
		if detText != "" && detText != "a" {
			errs.Add(BadData, det, "cannot create %q turtle", det.Text)
			return nil
		}
		return clauseNames(dobj, errs)
	}

	// destroy
	switch {
	case detText != "" && detText != "the":
		errs.Add(BadData, det, "cannot destroy %q turtle", det.Text)
		return nil
	case detText == "the" && len(dobj.Children("acl")) == 0:
		return []string{strings.ToLower(dobj.Text)}
	default:
		return clauseNames(dobj, errs)
	}
}

func (MakeCSR) Apply(c *Compiler, w *deptree.Word, p Params) ([]string, error) {
	action := p["action"].(string)
	names := p["names"].([]string)

	if action == "destroy" {
		for _, name := range names {
			if name == "everyone" {
				// Collapses the whole list: destroying everyone
				// subsumes any individual targets.
				return []string{"destroy everyone"}, nil
			}
		}
	}

	var lines []string
	for _, name := range names {
		lines = append(lines, action+" "+name)
	}
	return lines, nil
}
