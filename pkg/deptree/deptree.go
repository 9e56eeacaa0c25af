// Package deptree builds the dependency tree of one parsed sentence.
//
// The annotation service hands back flat token and edge lists; Build turns
// them into Word nodes wired governor -> dependent and computes each node's
// phrase span (the subtree's tokens in surface order).
package deptree

import (
	"fmt"
	"sort"
	"strings"
)

// Token is one word of a sentence as returned by the annotation service.
// Index is 1-based and unique within the sentence.
type Token struct {
	Text  string
	Index int
	POS   string
}

// Edge is a typed dependency relation. Governor 0 marks the sentence root.
type Edge struct {
	Governor  int
	Dependent int
	Label     string
}

// Word is a node of the dependency tree. Words are created by Build and not
// mutated afterwards, except through DropEdges (see AndCSR handling in the
// compiler), which tombstones edge labels and re-derives this node's span
// without touching any other node.
type Word struct {
	Text  string
	Index int
	POS   string

	// Phrase is the space-joined surface text of the subtree.
	Phrase string

	edges   map[string][]*Word
	dropped map[string]bool
	span    []*Word
	spanSet map[string]struct{}
}

func newWord(t Token) *Word {
	return &Word{
		Text:  t.Text,
		Index: t.Index,
		POS:   t.POS,
		edges: make(map[string][]*Word),
	}
}

func (w *Word) String() string {
	return fmt.Sprintf("Word(%s, index=%d, pos=%s)", w.Text, w.Index, w.POS)
}

// Children returns the dependents attached under label, in sentence order.
// Tombstoned labels read as absent.
func (w *Word) Children(label string) []*Word {
	if w.dropped[label] {
		return nil
	}
	return w.edges[label]
}

// Child returns the single dependent under label. It returns nil if the label
// is absent and false if the label holds more than one dependent.
func (w *Word) Child(label string) (*Word, bool) {
	kids := w.Children(label)
	switch len(kids) {
	case 0:
		return nil, true
	case 1:
		return kids[0], true
	default:
		return nil, false
	}
}

// Follow walks an edge-label path from w, taking the sole dependent at each
// step. It returns nil if any step is missing or ambiguous.
func (w *Word) Follow(labels ...string) *Word {
	cur := w
	for _, label := range labels {
		next, ok := cur.Child(label)
		if !ok || next == nil {
			return nil
		}
		cur = next
	}
	return cur
}

// Span returns the subtree's words in surface order, including w itself.
func (w *Word) Span() []*Word {
	return w.span
}

// HasToken reports whether text occurs anywhere in the subtree.
func (w *Word) HasToken(text string) bool {
	_, ok := w.spanSet[text]
	return ok
}

// DropEdges tombstones the given labels on w and recomputes w's own phrase
// span as if those subtrees were never attached. Spans of other nodes,
// including the dropped dependents, keep their original values: error
// messages already captured against them must stay renderable.
func (w *Word) DropEdges(labels ...string) {
	if w.dropped == nil {
		w.dropped = make(map[string]bool)
	}
	for _, label := range labels {
		w.dropped[label] = true
	}
	w.computeSpan()
}

// Dependents returns all live dependents of w across every label, in
// sentence order.
func (w *Word) Dependents() []*Word {
	return w.children()
}

// children gathers all live dependents across labels, in sentence order.
func (w *Word) children() []*Word {
	var kids []*Word
	for label, words := range w.edges {
		if w.dropped[label] {
			continue
		}
		kids = append(kids, words...)
	}
	sort.Slice(kids, func(i, j int) bool { return kids[i].Index < kids[j].Index })
	return kids
}

// computeSpan derives Phrase, Span and the token set for w from the already
// computed spans of its children. Children left of w contribute before w,
// children right of w after, reconstructing surface order.
func (w *Word) computeSpan() {
	var left, right []*Word
	set := map[string]struct{}{w.Text: {}}
	for _, child := range w.children() {
		if child.Index < w.Index {
			left = append(left, child.span...)
		} else {
			right = append(right, child.span...)
		}
		for text := range child.spanSet {
			set[text] = struct{}{}
		}
	}
	span := make([]*Word, 0, len(left)+1+len(right))
	span = append(span, left...)
	span = append(span, w)
	span = append(span, right...)

	texts := make([]string, len(span))
	for i, sw := range span {
		texts[i] = sw.Text
	}
	w.span = span
	w.spanSet = set
	w.Phrase = strings.Join(texts, " ")
}

// computeSpans runs computeSpan over the subtree in postorder.
func computeSpans(w *Word) {
	for _, child := range w.children() {
		computeSpans(child)
	}
	w.computeSpan()
}

// Sentence is the flat annotation of one sentence as delivered by the
// annotation service.
type Sentence struct {
	Tokens []Token
	Edges  []Edge
}

// Tree builds the sentence's dependency tree.
func (s Sentence) Tree() (*Word, error) {
	return Build(s.Tokens, s.Edges)
}

// Build constructs the dependency tree for one sentence. Exactly one edge
// must attach its dependent to governor 0; that dependent is the root.
func Build(tokens []Token, edges []Edge) (*Word, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("deptree: sentence has no tokens")
	}
	words := make([]*Word, len(tokens))
	for i, t := range tokens {
		if t.Index != i+1 {
			return nil, fmt.Errorf("deptree: token %q has index %d, want %d", t.Text, t.Index, i+1)
		}
		words[i] = newWord(t)
	}

	var root *Word
	for _, e := range edges {
		if e.Dependent < 1 || e.Dependent > len(words) {
			return nil, fmt.Errorf("deptree: edge %q references dependent %d outside sentence of %d tokens", e.Label, e.Dependent, len(words))
		}
		dep := words[e.Dependent-1]
		if e.Governor == 0 {
			if root != nil {
				return nil, fmt.Errorf("deptree: multiple roots (%q and %q)", root.Text, dep.Text)
			}
			root = dep
			continue
		}
		if e.Governor < 1 || e.Governor > len(words) {
			return nil, fmt.Errorf("deptree: edge %q references governor %d outside sentence of %d tokens", e.Label, e.Governor, len(words))
		}
		gov := words[e.Governor-1]
		gov.edges[e.Label] = append(gov.edges[e.Label], dep)
	}
	if root == nil {
		return nil, fmt.Errorf("deptree: sentence has no root")
	}
	for _, w := range words {
		for label := range w.edges {
			kids := w.edges[label]
			sort.Slice(kids, func(i, j int) bool { return kids[i].Index < kids[j].Index })
		}
	}

	computeSpans(root)
	return root, nil
}

// Dump renders the subtree preorder, one node per line, for debug logging.
func Dump(w *Word) string {
	var b strings.Builder
	dump(&b, w, "root", 0)
	return b.String()
}

func dump(b *strings.Builder, w *Word, label string, indent int) {
	fmt.Fprintf(b, "%s%s: %q, %q\n", strings.Repeat("  ", indent), label, w.Text, w.Phrase)
	type kid struct {
		label string
		word  *Word
	}
	var kids []kid
	for label, words := range w.edges {
		if w.dropped[label] {
			continue
		}
		for _, child := range words {
			kids = append(kids, kid{label, child})
		}
	}
	sort.Slice(kids, func(i, j int) bool { return kids[i].word.Index < kids[j].word.Index })
	for _, k := range kids {
		dump(b, k.word, k.label, indent+1)
	}
}
