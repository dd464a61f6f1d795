package vm

// Head names one of the five position cursors an organism addresses the
// world with. The tape head lives in Tape-space; all others in Grid-space.
type Head byte

const (
	HeadInstruction Head = iota // program counter
	HeadTape                    // tape cursor
	HeadA
	HeadB
	HeadC

	// NumHeads is the number of cursors in a HeadSet.
	NumHeads = int(HeadC) + 1
)

func (h Head) String() string {
	switch h {
	case HeadInstruction:
		return "i"
	case HeadTape:
		return "t"
	case HeadA:
		return "a"
	case HeadB:
		return "b"
	default:
		return "c"
	}
}

// HeadForOpcode maps the five head-select opcodes to their heads. The second
// result is false for any other opcode.
func HeadForOpcode(op Opcode) (Head, bool) {
	switch op {
	case OpSelInstruction:
		return HeadInstruction, true
	case OpSelTape:
		return HeadTape, true
	case OpSelA:
		return HeadA, true
	case OpSelB:
		return HeadB, true
	case OpSelC:
		return HeadC, true
	}
	return HeadInstruction, false
}

// HeadSet owns one run's five cursors plus the two-slot selection history
// the copy opcodes address through. It is created per run and discarded with
// the run; it never outlives one.
type HeadSet struct {
	pos      [NumHeads]Position
	current  Head
	previous Head
}

// NewHeadSet places every head at the organism's entry coordinate except the
// tape head, which starts at the tape origin. The selection history starts
// as (current=instruction, previous=tape).
func NewHeadSet(entry Position) *HeadSet {
	s := &HeadSet{current: HeadInstruction, previous: HeadTape}
	for h := 0; h < NumHeads; h++ {
		s.pos[h] = entry
	}
	s.pos[HeadTape] = Position{}
	return s
}

// Position returns the cursor position of h.
func (s *HeadSet) Position(h Head) Position { return s.pos[h] }

// SetPosition moves the cursor of h. Callers are responsible for wrapping
// the coordinate in the head's own address space.
func (s *HeadSet) SetPosition(h Head, pos Position) { s.pos[h] = pos }

// Select makes h the current head and demotes the old current to previous.
// The history holds exactly these two slots; the third-oldest selection is
// forgotten.
func (s *HeadSet) Select(h Head) {
	s.previous = s.current
	s.current = h
}

// Current returns the currently selected head.
func (s *HeadSet) Current() Head { return s.current }

// Previous returns the previously selected head.
func (s *HeadSet) Previous() Head { return s.previous }
