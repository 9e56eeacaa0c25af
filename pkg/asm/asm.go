// Package asm defines the tortuga assembly language: a fixed opcode set with
// fixed operand arity and types, one whitespace-delimited instruction per
// line. The compiler emits it, the interpreter consumes it.
package asm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Basic motion opcodes take a turtle name and an amount.
var nameAmountOps = map[string]bool{
	"fd":   true, // forward
	"bk":   true, // backward
	"rol":  true, // rotate left
	"ror":  true, // rotate right
	"shl":  true, // shift left (anti-clockwise)
	"shr":  true, // shift right (clockwise)
	"up":   true,
	"down": true,
}

// Name-only opcodes take just a turtle name.
var nameOnlyOps = map[string]bool{
	"deg":     true, // angle measure in degrees
	"rad":     true, // angle measure in radians
	"create":  true,
	"destroy": true,
}

var (
	ErrInvalidOpcode = errors.New("invalid opcode")
	ErrArityMismatch = errors.New("invalid number of arguments")
	ErrBadOperand    = errors.New("invalid operand")
)

// Instruction is one parsed assembly line.
type Instruction struct {
	Op   string
	Args []string
}

// Basic reports whether the instruction is forwarded to the renderer sink
// rather than interpreted as loop control.
func (in Instruction) Basic() bool {
	return in.Op != "repeat" && in.Op != "end"
}

func (in Instruction) String() string {
	if len(in.Args) == 0 {
		return in.Op
	}
	return in.Op + " " + strings.Join(in.Args, " ")
}

// Known reports whether op is part of the instruction set.
func Known(op string) bool {
	return op == "repeat" || op == "end" || nameAmountOps[op] || nameOnlyOps[op]
}

// ParseLine splits and validates one assembly line. The line must be
// non-blank; callers discard blank lines before parsing.
func ParseLine(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Instruction{}, fmt.Errorf("%w: blank line", ErrInvalidOpcode)
	}
	in := Instruction{Op: fields[0], Args: fields[1:]}

	switch {
	case nameAmountOps[in.Op]:
		if len(in.Args) != 2 {
			return Instruction{}, fmt.Errorf("%w for %q: got %d, want 2", ErrArityMismatch, in.Op, len(in.Args))
		}
		if _, err := strconv.ParseFloat(in.Args[1], 64); err != nil {
			return Instruction{}, fmt.Errorf("%w: %q is not a number in %q", ErrBadOperand, in.Args[1], line)
		}
	case nameOnlyOps[in.Op]:
		if len(in.Args) != 1 {
			return Instruction{}, fmt.Errorf("%w for %q: got %d, want 1", ErrArityMismatch, in.Op, len(in.Args))
		}
	case in.Op == "repeat":
		if len(in.Args) != 1 {
			return Instruction{}, fmt.Errorf("%w for %q: got %d, want 1", ErrArityMismatch, in.Op, len(in.Args))
		}
		n, err := strconv.Atoi(in.Args[0])
		if err != nil || n < 0 {
			return Instruction{}, fmt.Errorf("%w: repeat count %q must be a non-negative integer", ErrBadOperand, in.Args[0])
		}
	case in.Op == "end":
		if len(in.Args) != 0 {
			return Instruction{}, fmt.Errorf("%w for %q: got %d, want 0", ErrArityMismatch, in.Op, len(in.Args))
		}
	default:
		return Instruction{}, fmt.Errorf("%w %q", ErrInvalidOpcode, in.Op)
	}
	return in, nil
}
