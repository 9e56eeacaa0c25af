package asm

import (
	"errors"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line    string
		want    Instruction
		wantErr error
	}{
		{"fd alice 10.0", Instruction{Op: "fd", Args: []string{"alice", "10.0"}}, nil},
		{"  bk bob 3.5  ", Instruction{Op: "bk", Args: []string{"bob", "3.5"}}, nil},
		{"deg alice", Instruction{Op: "deg", Args: []string{"alice"}}, nil},
		{"create t1", Instruction{Op: "create", Args: []string{"t1"}}, nil},
		{"destroy everyone", Instruction{Op: "destroy", Args: []string{"everyone"}}, nil},
		{"repeat 3", Instruction{Op: "repeat", Args: []string{"3"}}, nil},
		{"repeat 0", Instruction{Op: "repeat", Args: []string{"0"}}, nil},
		{"end", Instruction{Op: "end", Args: []string{}}, nil},

		{"fly alice 10", Instruction{}, ErrInvalidOpcode},
		{"fd alice", Instruction{}, ErrArityMismatch},
		{"fd alice 10 20", Instruction{}, ErrArityMismatch},
		{"fd alice ten", Instruction{}, ErrBadOperand},
		{"deg", Instruction{}, ErrArityMismatch},
		{"repeat", Instruction{}, ErrArityMismatch},
		{"repeat -1", Instruction{}, ErrBadOperand},
		{"repeat 2.5", Instruction{}, ErrBadOperand},
		{"end 1", Instruction{}, ErrArityMismatch},
	}
	for _, tc := range tests {
		got, err := ParseLine(tc.line)
		if tc.wantErr != nil {
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("ParseLine(%q) error = %v; want %v", tc.line, err, tc.wantErr)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseLine(%q) unexpected error: %v", tc.line, err)
			continue
		}
		if got.Op != tc.want.Op || len(got.Args) != len(tc.want.Args) {
			t.Errorf("ParseLine(%q) = %+v; want %+v", tc.line, got, tc.want)
			continue
		}
		for i := range got.Args {
			if got.Args[i] != tc.want.Args[i] {
				t.Errorf("ParseLine(%q) arg %d = %q; want %q", tc.line, i, got.Args[i], tc.want.Args[i])
			}
		}
	}
}

func TestBasic(t *testing.T) {
	basics := []string{"fd", "bk", "rol", "ror", "shl", "shr", "up", "down", "deg", "rad", "create", "destroy"}
	for _, op := range basics {
		if !(Instruction{Op: op}).Basic() {
			t.Errorf("%q should be basic", op)
		}
	}
	for _, op := range []string{"repeat", "end"} {
		if (Instruction{Op: op}).Basic() {
			t.Errorf("%q should not be basic", op)
		}
	}
}

func TestKnown(t *testing.T) {
	for _, op := range []string{"fd", "deg", "create", "repeat", "end"} {
		if !Known(op) {
			t.Errorf("Known(%q) = false; want true", op)
		}
	}
	if Known("jmp") {
		t.Error(`Known("jmp") = true; want false`)
	}
}
