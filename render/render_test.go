package render

import (
	"strings"
	"testing"

	"github.com/muesli/termenv"

	"github.com/chazu/brainpond/vm"
)

func TestFrameFormatsCells(t *testing.T) {
	g := vm.NewGrid(2, 3)
	if err := g.Seed([]string{"@>"}, vm.Position{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	g.Set(vm.Position{Row: 0, Col: 2}, -42)

	r := NewWithProfile(termenv.Ascii)
	frame := r.Frame(g.Snapshot(), nil, 0, 0, 2, 3)

	lines := strings.Split(strings.TrimRight(frame, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("frame has %d lines, want 2", len(lines))
	}
	if lines[0] != "   @    >   -42" {
		t.Errorf("row 0 = %q, want %q", lines[0], "   @    >   -42")
	}
	if lines[1] != "    0    0    0" {
		t.Errorf("row 1 = %q, want %q", lines[1], "    0    0    0")
	}
}

func TestFrameWrapsWindow(t *testing.T) {
	g := vm.NewGrid(2, 2)
	g.Set(vm.Position{}, 7)

	r := NewWithProfile(termenv.Ascii)
	// A window past the grid edge wraps toroidally back to (0, 0).
	frame := r.Frame(g.Snapshot(), nil, 2, 2, 3, 3)
	if !strings.Contains(frame, "7") {
		t.Errorf("wrapped frame = %q, want cell 7 visible", frame)
	}
}

func TestFrameAsciiHasNoEscapes(t *testing.T) {
	g := vm.NewGrid(1, 4)
	if err := g.Seed([]string{"@[]."}, vm.Position{}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	heads := map[vm.Head]vm.Position{vm.HeadInstruction: {Row: 0, Col: 0}}

	r := NewWithProfile(termenv.Ascii)
	frame := r.Frame(g.Snapshot(), heads, 0, 0, 1, 4)
	if strings.Contains(frame, "\x1b") {
		t.Errorf("ascii profile frame contains escape sequences: %q", frame)
	}
}

func TestFrameColorProfileStylesOpcodes(t *testing.T) {
	g := vm.NewGrid(1, 1)
	g.Set(vm.Position{}, vm.EntryCell)

	r := NewWithProfile(termenv.ANSI)
	frame := r.Frame(g.Snapshot(), nil, 0, 0, 1, 1)
	if !strings.Contains(frame, "\x1b[") {
		t.Errorf("ANSI profile frame has no styling: %q", frame)
	}
	if !strings.Contains(frame, "@") {
		t.Errorf("frame missing opcode char: %q", frame)
	}
}
