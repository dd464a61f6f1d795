// Package vm implements the BrainPond virtual machine: a shared toroidal
// grid of signed 8-bit cells that is simultaneously program text and data,
// interpreted by organisms whose five movable heads read, write, and copy
// cells for a bounded number of steps.
package vm

import "fmt"

// Cell is one signed 8-bit storage unit in the Grid or Tape. Values 1..16
// encode opcodes; every other value, including 0 and all negatives, is inert
// data and doubles as organism-addressable memory.
type Cell int8

// Position is a (row, column) coordinate in Grid-space or Tape-space.
type Position struct {
	Row, Col int
}

// ---------------------------------------------------------------------------
// Opcodes
// ---------------------------------------------------------------------------

// Opcode identifies one of the sixteen pond instructions, or OpNone for a
// cell holding inert data. The numeric values are the canonical on-grid
// encoding and must never be reordered: seeded programs are written in terms
// of them.
type Opcode byte

const (
	// OpNone classifies every cell value outside 1..16. It is not an
	// instruction and never appears on the grid as an opcode.
	OpNone Opcode = 0

	OpEntry          Opcode = 1  // '@' execution entry marker; runtime no-op
	OpLeft           Opcode = 2  // '<' steer or move left
	OpRight          Opcode = 3  // '>' steer or move right
	OpUp             Opcode = 4  // '^' steer or move up
	OpDown           Opcode = 5  // 'v' steer or move down
	OpInc            Opcode = 6  // '+' increment cell under the tape head
	OpDec            Opcode = 7  // '-' decrement cell under the tape head
	OpSelInstruction Opcode = 8  // 'i' select the instruction head
	OpSelTape        Opcode = 9  // 't' select the tape head
	OpSelA           Opcode = 10 // 'a' select head a
	OpSelB           Opcode = 11 // 'b' select head b
	OpSelC           Opcode = 12 // 'c' select head c
	OpCopyOut        Opcode = 13 // '.' copy current head's cell to previous head's cell
	OpCopyIn         Opcode = 14 // ',' copy previous head's cell to current head's cell
	OpOpen           Opcode = 15 // '[' jump past matching ']' when current cell is negative
	OpClose          Opcode = 16 // ']' jump back past matching '[' when current cell is positive

	// NumOpcodes is the size of the opcode set; opcode cell values occupy
	// 1..NumOpcodes.
	NumOpcodes = int(OpClose)
)

// EntryCell is the grid encoding of the entry marker, the value the driver
// scans for when discovering runnable organisms.
const EntryCell = Cell(OpEntry)

var opcodeChars = [NumOpcodes + 1]byte{
	OpEntry:          '@',
	OpLeft:           '<',
	OpRight:          '>',
	OpUp:             '^',
	OpDown:           'v',
	OpInc:            '+',
	OpDec:            '-',
	OpSelInstruction: 'i',
	OpSelTape:        't',
	OpSelA:           'a',
	OpSelB:           'b',
	OpSelC:           'c',
	OpCopyOut:        '.',
	OpCopyIn:         ',',
	OpOpen:           '[',
	OpClose:          ']',
}

var charOpcodes = func() map[byte]Opcode {
	m := make(map[byte]Opcode, NumOpcodes)
	for op := OpEntry; int(op) <= NumOpcodes; op++ {
		m[opcodeChars[op]] = op
	}
	return m
}()

// OpcodeForCell classifies a cell value. The classification is total: every
// one of the 256 possible values maps to exactly one opcode or to OpNone.
func OpcodeForCell(c Cell) Opcode {
	if c >= 1 && int(c) <= NumOpcodes {
		return Opcode(c)
	}
	return OpNone
}

// OpcodeForChar resolves an opcode character ('@', '<', ... ']'). The second
// result is false for characters outside the opcode set.
func OpcodeForChar(ch byte) (Opcode, bool) {
	op, ok := charOpcodes[ch]
	return op, ok
}

// Char returns the display character for an opcode. OpNone has no character.
func (op Opcode) Char() byte {
	if op == OpNone || int(op) > NumOpcodes {
		return 0
	}
	return opcodeChars[op]
}

func (op Opcode) String() string {
	if ch := op.Char(); ch != 0 {
		return string(ch)
	}
	return fmt.Sprintf("Opcode(%d)", byte(op))
}

// resolveSymbol maps one seed-pattern character to its cell value: opcode
// characters through the symbol table, decimal digits as literal data values
// 0..9. Anything else is not a legal symbol.
func resolveSymbol(ch rune) (Cell, bool) {
	if ch >= '0' && ch <= '9' {
		return Cell(ch - '0'), true
	}
	if ch > 0x7F {
		return 0, false
	}
	if op, ok := OpcodeForChar(byte(ch)); ok {
		return Cell(op), true
	}
	return 0, false
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

// InvalidSymbolError reports a seed-pattern character that resolves to
// neither an opcode nor a literal value in the signed 8-bit range. Seeding
// validates the entire pattern before touching the grid, so an
// InvalidSymbolError guarantees the grid was not modified.
type InvalidSymbolError struct {
	Char rune
	Row  int // pattern row containing the character
	Col  int // pattern column containing the character
}

func (e *InvalidSymbolError) Error() string {
	return fmt.Sprintf("vm: invalid symbol %q at pattern row %d col %d", e.Char, e.Row, e.Col)
}
