package compiler

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"tortuga/pkg/deptree"
)

// Annotator is the external dependency-parsing service, reduced to the one
// call the driver needs.
type Annotator interface {
	Annotate(ctx context.Context, text string) ([]deptree.Sentence, error)
}

// Driver runs the full text-to-assembly pipeline: annotate, build one tree
// per sentence, compile each tree. A sentence that fails to compile is
// reported and skipped; later sentences still compile.
type Driver struct {
	comp *Compiler
	ann  Annotator
	log  *slog.Logger
}

func NewDriver(comp *Compiler, ann Annotator, log *slog.Logger) *Driver {
	if log == nil {
		log = slog.Default()
	}
	return &Driver{comp: comp, ann: ann, log: log}
}

// CompileText compiles every sentence of text. The returned errs hold one
// entry per failed sentence (a *CEList, or a tree construction error); err is
// non-nil only for annotation transport failures, which abort the whole text.
func (d *Driver) CompileText(ctx context.Context, text string) (lines []string, errs []error, err error) {
	sentences, err := d.ann.Annotate(ctx, text)
	if err != nil {
		return nil, nil, fmt.Errorf("annotate %q: %w", text, err)
	}
	for _, s := range sentences {
		root, berr := s.Tree()
		if berr != nil {
			errs = append(errs, berr)
			continue
		}
		d.log.Debug("compiling sentence", "phrase", root.Phrase)
		sub, cerr := d.comp.Convert(root)
		if cerr != nil {
			errs = append(errs, cerr)
			continue
		}
		lines = append(lines, sub...)
	}
	return lines, errs, nil
}

// Run translates an input stream line by line: assembly goes to out,
// per-sentence diagnostics go to errOut, and the stream keeps going after a
// sentence fails.
func (d *Driver) Run(ctx context.Context, r io.Reader, out, errOut io.Writer) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		lines, errs, err := d.CompileText(ctx, text)
		if err != nil {
			return err
		}
		for _, e := range errs {
			fmt.Fprintln(errOut, e)
		}
		for _, line := range lines {
			fmt.Fprintln(out, line)
		}
	}
	return sc.Err()
}
