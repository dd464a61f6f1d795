// Package render draws terminal views of a pond grid: opcode cells as
// colored characters, data cells as numbers, with head positions
// highlighted. It only ever reads snapshots; rendering never mutates the
// world.
package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/muesli/termenv"

	"github.com/chazu/brainpond/vm"
)

// Opcode foreground colors: entry green, movement yellow, arithmetic
// magenta, head selects blue, copies cyan, brackets red.
var opcodeColors = map[vm.Opcode]termenv.Color{
	vm.OpEntry:          termenv.ANSIGreen,
	vm.OpLeft:           termenv.ANSIYellow,
	vm.OpRight:          termenv.ANSIYellow,
	vm.OpUp:             termenv.ANSIYellow,
	vm.OpDown:           termenv.ANSIYellow,
	vm.OpInc:            termenv.ANSIMagenta,
	vm.OpDec:            termenv.ANSIMagenta,
	vm.OpSelInstruction: termenv.ANSIBlue,
	vm.OpSelTape:        termenv.ANSIBlue,
	vm.OpSelA:           termenv.ANSIBlue,
	vm.OpSelB:           termenv.ANSIBlue,
	vm.OpSelC:           termenv.ANSIBlue,
	vm.OpCopyOut:        termenv.ANSICyan,
	vm.OpCopyIn:         termenv.ANSICyan,
	vm.OpOpen:           termenv.ANSIRed,
	vm.OpClose:          termenv.ANSIRed,
}

// Background highlights for grid-space head positions. The tape head lives
// in tape-space and is never drawn on the grid.
var headColors = map[vm.Head]termenv.Color{
	vm.HeadInstruction: termenv.ANSIBrightYellow,
	vm.HeadA:           termenv.ANSIBrightRed,
	vm.HeadB:           termenv.ANSIBrightGreen,
	vm.HeadC:           termenv.ANSIBrightBlue,
}

// Renderer formats grid windows for a terminal.
type Renderer struct {
	out *termenv.Output
}

// New creates a renderer for the current terminal's color profile.
func New() *Renderer {
	return &Renderer{out: termenv.NewOutput(os.Stdout)}
}

// NewWithProfile creates a renderer with an explicit profile. Tests use
// termenv.Ascii for color-free deterministic output.
func NewWithProfile(p termenv.Profile) *Renderer {
	return &Renderer{out: termenv.NewOutput(io.Discard, termenv.WithProfile(p))}
}

// Frame renders the window rows [r0, r1) x cols [c0, c1) of a snapshot.
// heads may be nil; grid-space head positions inside the window get a
// background highlight. Each cell is five columns wide.
func (r *Renderer) Frame(snap *vm.GridSnapshot, heads map[vm.Head]vm.Position, r0, c0, r1, c1 int) string {
	var b strings.Builder
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			b.WriteString(r.cell(snap, heads, vm.Position{Row: row, Col: col}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (r *Renderer) cell(snap *vm.GridSnapshot, heads map[vm.Head]vm.Position, pos vm.Position) string {
	num := snap.At(pos)
	op := vm.OpcodeForCell(num)

	var text string
	if op != vm.OpNone {
		text = fmt.Sprintf("   %c ", op.Char())
	} else {
		text = fmt.Sprintf("%5d", num)
	}

	style := r.out.String(text)
	if op != vm.OpNone {
		style = style.Foreground(r.out.Profile.Convert(opcodeColors[op]))
	}
	for _, h := range []vm.Head{vm.HeadInstruction, vm.HeadA, vm.HeadB, vm.HeadC} {
		if p, ok := heads[h]; ok && p == pos {
			style = style.Background(r.out.Profile.Convert(headColors[h]))
			break
		}
	}
	return style.String()
}
