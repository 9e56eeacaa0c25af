// Package compiler turns dependency trees into tortuga assembly.
//
// Recognition is done by control structure recognizers (CSRs). Each CSR
// detects one grammatical construct and either emits assembly (terminal) or
// splits the phrase into sub-phrases compiled recursively (nonterminal).
package compiler

import (
	"log/slog"
	"strings"

	"tortuga/pkg/deptree"
)

// Params carries the values a successful Detect hands to Apply, keyed by role
// name ("action", "direction", "names", ...).
type Params map[string]any

// CSR is one recognizer. Detect returns (nil, nil) when the pattern is not
// present, a non-nil Params when it is present and well formed, or a *CEList
// error when the pattern is clearly present but used incorrectly. A raised
// CEList is fatal for the phrase; it must not be skipped in favor of another
// candidate. Apply produces assembly lines from the detected parameters.
type CSR interface {
	Name() string
	Detect(w *deptree.Word) (Params, error)
	Apply(c *Compiler, w *deptree.Word, p Params) ([]string, error)
}

// Compiler holds the two ordered recognizer pools. Nonterminal CSRs are tried
// before terminal ones so sentence restructuring (conjunction splitting) wins
// over leaf recognition. The pools are explicit configuration; there is no
// global registry.
type Compiler struct {
	nonterminal []CSR
	terminal    []CSR
	log         *slog.Logger
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithLogger sets the debug logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Compiler) { c.log = log }
}

// WithCSRs replaces both recognizer pools.
func WithCSRs(nonterminal, terminal []CSR) Option {
	return func(c *Compiler) {
		c.nonterminal = nonterminal
		c.terminal = terminal
	}
}

// New returns a Compiler with the standard recognizer set.
func New(opts ...Option) *Compiler {
	c := &Compiler{
		nonterminal: []CSR{&AndCSR{}},
		terminal:    []CSR{&MoveCSR{}, &MakeCSR{}},
		log:         slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert compiles the phrase rooted at w into assembly lines. It is the
// recursion entry point: nonterminal CSRs re-enter it for each sub-phrase.
func (c *Compiler) Convert(w *deptree.Word) ([]string, error) {
	for _, pool := range [][]CSR{c.nonterminal, c.terminal} {
		lines, matched, err := c.applyPool(pool, w)
		if err != nil {
			return nil, err
		}
		if matched {
			return lines, nil
		}
	}
	return nil, errorf(NoCSR, w, "no recognizer matches %q", w.Phrase).Err()
}

// applyPool runs the selection algorithm over one pool: zero matches means
// try elsewhere, exactly one match is applied, more than one is ambiguity and
// raises ManyCSR naming every matching recognizer.
func (c *Compiler) applyPool(pool []CSR, w *deptree.Word) (lines []string, matched bool, err error) {
	type match struct {
		csr    CSR
		params Params
	}
	var matches []match
	for _, csr := range pool {
		p, err := csr.Detect(w)
		if err != nil {
			// The tree's shape already ruled out ambiguity; do not
			// consult the remaining recognizers.
			return nil, false, err
		}
		if p != nil {
			matches = append(matches, match{csr, p})
		}
	}
	switch len(matches) {
	case 0:
		return nil, false, nil
	case 1:
		m := matches[0]
		c.log.Debug("csr matched", "csr", m.csr.Name(), "phrase", w.Phrase)
		lines, err := m.csr.Apply(c, w, m.params)
		if err != nil {
			return nil, false, err
		}
		return lines, true, nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.csr.Name()
		}
		return nil, false, errorf(ManyCSR, w, "ambiguous phrase matches %s", strings.Join(names, ", ")).Err()
	}
}
