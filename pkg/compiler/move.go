package compiler

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tortuga/pkg/deptree"
)

// moveActions maps action verbs to their canonical action.
var moveActions = map[string]string{
	"move":   "move",
	"shift":  "move",
	"turn":   "turn",
	"rotate": "turn",
}

// moveUnits maps unit words (singular form) to the canonical unit.
var moveUnits = map[string]string{
	"unit":   "pixel",
	"pixel":  "pixel",
	"meter":  "pixel",
	"degree": "deg",
	"radian": "rad",
}

// moveDirections maps direction words (singular form) to a canonical
// direction, resolved to an opcode in Apply once the action is known.
var moveDirections = map[string]string{
	"forward":       "fd",
	"ahead":         "fd",
	"backward":      "bk",
	"up":            "up",
	"upward":        "up",
	"down":          "down",
	"downward":      "down",
	"left":          "left",
	"leftward":      "left",
	"anticlockwise": "left",
	"right":         "right",
	"rightward":     "right",
	"clockwise":     "right",
}

// lookupVocab finds t (lowercased, optionally plural) in a vocabulary of
// singular forms.
func lookupVocab(vocab map[string]string, text string) (string, bool) {
	t := strings.ToLower(text)
	if v, ok := vocab[t]; ok {
		return v, true
	}
	if v, ok := vocab[strings.TrimSuffix(t, "s")]; ok {
		return v, true
	}
	return "", false
}

// MoveCSR recognizes motion and rotation commands: an action verb, exactly
// one unit word carrying a nummod amount, one direction word, and the target
// turtles as the verb's direct object.
type MoveCSR struct{}

func (MoveCSR) Name() string { return "MoveCSR" }

func (MoveCSR) Detect(w *deptree.Word) (Params, error) {
	var actions, units, directions []*deptree.Word
	for _, sw := range w.Span() {
		t := strings.ToLower(sw.Text)
		if _, ok := moveActions[t]; ok && sw.POS == "VB" {
			actions = append(actions, sw)
		}
		if _, ok := lookupVocab(moveUnits, t); ok {
			units = append(units, sw)
		}
		if _, ok := lookupVocab(moveDirections, t); ok {
			directions = append(directions, sw)
		}
	}
	if len(actions) != 1 || len(units) != 1 {
		return nil, nil
	}
	verb, unitWord := actions[0], units[0]

	amountWord := unitWord.Follow("nummod")
	if amountWord == nil {
		// No amount attached to the unit; this may still be some other
		// construct, so stay quiet and let other recognizers try.
		return nil, nil
	}

	// The verb+unit+amount shape is unmistakably a movement command, so
	// everything below is a hard diagnostic, not a pass.
	errs := &CEList{}
	var direction string
	switch len(directions) {
	case 0:
		errs.Add(MissingData, w, "no direction in %q", w.Phrase)
	case 1:
		direction, _ = lookupVocab(moveDirections, directions[0].Text)
	default:
		errs.Add(TooManyValues, w, "more than one direction in %q", w.Phrase)
	}

	var names []string
	dobjs := verb.Children("dobj")
	if len(dobjs) == 0 {
		errs.Add(MissingData, verb, "%q has nothing to %s", w.Phrase, verb.Text)
	} else {
		if len(dobjs) > 1 {
			errs.Add(TooManyValues, verb, "%q has more than one object", w.Phrase)
		}
		names = extractNames(dobjs[0], false, errs)
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	action, _ := lookupVocab(moveActions, verb.Text)
	unit, _ := lookupVocab(moveUnits, unitWord.Text)
	return Params{
		"action":    action,
		"unit":      unit,
		"direction": direction,
		"amount":    amountWord.Text,
		"names":     names,
	}, nil
}

var moveOps = map[string]string{
	"fd": "fd", "bk": "bk", "up": "up", "down": "down",
	"left": "shl", "right": "shr",
}

var turnOps = map[string]string{
	"left": "rol", "right": "ror",
}

func (MoveCSR) Apply(c *Compiler, w *deptree.Word, p Params) ([]string, error) {
	action := p["action"].(string)
	unit := p["unit"].(string)
	direction := p["direction"].(string)
	names := p["names"].([]string)

	amount, err := parseAmount(p["amount"].(string))
	if err != nil {
		return nil, errorf(BadData, w, "%q is not a number", p["amount"]).Err()
	}

	var lines []string
	switch action {
	case "move":
		if unit != "pixel" {
			return nil, errorf(BadData, w, "cannot move by %s", unit).Err()
		}
		op, ok := moveOps[direction]
		if !ok {
			return nil, errorf(BadData, w, "cannot move %s", direction).Err()
		}
		for _, name := range names {
			lines = append(lines, fmt.Sprintf("%s %s %s", op, name, amount))
		}
	case "turn":
		if unit != "deg" && unit != "rad" {
			return nil, errorf(BadData, w, "cannot turn by %s", unit).Err()
		}
		op, ok := turnOps[direction]
		if !ok {
			return nil, errorf(BadData, w, "cannot turn %s", direction).Err()
		}
		for _, name := range names {
			lines = append(lines, unit+" "+name)
			lines = append(lines, fmt.Sprintf("%s %s %s", op, name, amount))
		}
	default:
		return nil, errorf(BadData, w, "unknown action %q", action).Err()
	}
	return lines, nil
}

// parseAmount validates and normalizes the numeric operand. Whole values
// render with a trailing .0, fractional ones keep their precision.
func parseAmount(text string) (string, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if n, ok := numberWords[strings.ToLower(text)]; ok {
			v = float64(n)
		} else {
			return "", err
		}
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.1f", v), nil
	}
	return strconv.FormatFloat(v, 'f', -1, 64), nil
}
