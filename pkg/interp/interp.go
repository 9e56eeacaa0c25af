// Package interp executes tortuga assembly on a stack machine.
//
// Instructions arrive one line at a time from a pull-based source, so the
// interpreter works identically over a file and an interactive session: a
// loop body typed in interactively is replayed from history on later
// iterations without prompting again.
package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"tortuga/pkg/asm"
)

// ErrUnmatchedEnd reports an end instruction with no open repeat block.
var ErrUnmatchedEnd = errors.New("unmatched end")

// LineSource yields the next raw instruction line, or io.EOF when the input
// is exhausted. It is the interpreter's only suspend point; an interactive
// source may block until the user types a line.
type LineSource func() (string, error)

// ReaderSource pulls lines from r.
func ReaderSource(r io.Reader) LineSource {
	sc := bufio.NewScanner(r)
	return func() (string, error) {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", err
			}
			return "", io.EOF
		}
		return sc.Text(), nil
	}
}

// SliceSource replays a fixed instruction sequence.
func SliceSource(lines []string) LineSource {
	i := 0
	return func() (string, error) {
		if i >= len(lines) {
			return "", io.EOF
		}
		line := lines[i]
		i++
		return line, nil
	}
}

// Sink receives every basic instruction in execution order, including the
// repeated emissions of loop iterations. It is the only channel to the
// renderer.
type Sink func(op string, args []string)

// loopFrame is one open repeat block: how many re-executions remain and
// where the body starts in history.
type loopFrame struct {
	remaining int
	resume    int
}

// Interpreter is created once per run and driven by Run. History grows
// lazily: a line is pulled from the source only when the program counter
// walks past everything already seen.
type Interpreter struct {
	src  LineSource
	sink Sink
	log  *slog.Logger

	history   []string
	pc        int
	loopStack []loopFrame
	skipDepth int
}

func New(src LineSource, sink Sink) *Interpreter {
	return &Interpreter{src: src, sink: sink, log: slog.Default()}
}

// SetLogger replaces the debug logger.
func (ip *Interpreter) SetLogger(log *slog.Logger) { ip.log = log }

// Run executes instructions until the source is exhausted or a fatal error
// occurs. A malformed instruction stream is not user-recoverable: the first
// invalid opcode, arity mismatch or unmatched end aborts the run.
func (ip *Interpreter) Run() error {
	for {
		if ip.pc == len(ip.history) {
			line, err := ip.src()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return err
			}
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			ip.history = append(ip.history, line)
		}

		in, err := asm.ParseLine(ip.history[ip.pc])
		if err != nil {
			return fmt.Errorf("line %d: %w", ip.pc+1, err)
		}
		ip.log.Debug("exec", "pc", ip.pc, "in", in.String(), "depth", len(ip.loopStack))
		if err := ip.step(in); err != nil {
			return err
		}
	}
}

func (ip *Interpreter) step(in asm.Instruction) error {
	switch {
	case ip.skipDepth > 0:
		// Inside a zero-iteration region nothing executes, but nested
		// blocks still have to be counted to find the matching end.
		switch in.Op {
		case "repeat":
			ip.skipDepth++
		case "end":
			ip.skipDepth--
		}
		ip.pc++

	case in.Op == "repeat":
		n, _ := strconv.Atoi(in.Args[0])
		if n == 0 {
			ip.skipDepth = 1
		} else {
			ip.loopStack = append(ip.loopStack, loopFrame{remaining: n - 1, resume: ip.pc + 1})
		}
		ip.pc++

	case in.Op == "end":
		if len(ip.loopStack) == 0 {
			return fmt.Errorf("line %d: %w", ip.pc+1, ErrUnmatchedEnd)
		}
		top := &ip.loopStack[len(ip.loopStack)-1]
		if top.remaining == 0 {
			ip.loopStack = ip.loopStack[:len(ip.loopStack)-1]
			ip.pc++
		} else {
			top.remaining--
			ip.pc = top.resume
		}

	default:
		if ip.sink != nil {
			ip.sink(in.Op, in.Args)
		}
		ip.pc++
	}
	return nil
}
