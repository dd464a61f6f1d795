package vm

// ---------------------------------------------------------------------------
// Engine: the organism execution loop
// ---------------------------------------------------------------------------

// Engine defaults. The copy surcharge makes self-replication deliberately
// expensive relative to control and arithmetic instructions.
const (
	DefaultTapeHeight = 32
	DefaultTapeWidth  = 32
	DefaultCopyCost   = 200
)

// StepView is the read-only window an observer gets between completed
// steps: head positions, selection state, scan direction, and the run's
// private tape, queryable without mutating anything.
type StepView struct {
	Step      int // completed steps so far, starting at 1
	Direction Direction
	Current   Head
	Previous  Head

	heads *HeadSet
	tape  *Tape
	grid  *Grid
}

// HeadPosition returns the position of h at this step.
func (v *StepView) HeadPosition(h Head) Position { return v.heads.Position(h) }

// TapeAt reads the run's tape.
func (v *StepView) TapeAt(pos Position) Cell { return v.tape.At(pos) }

// GridAt reads the shared grid.
func (v *StepView) GridAt(pos Position) Cell { return v.grid.At(pos) }

// StepObserver is invoked after each completed step, never mid-step. The
// view is only valid for the duration of the call.
type StepObserver func(view *StepView)

// Result is the execution trace returned by Execute, for debugging and
// tests; callers that only evolve the pond can ignore it.
type Result struct {
	Entry     Position
	Steps     int // opcode dispatches performed
	Copies    int // copy dispatches that changed their destination
	Direction Direction
	Heads     [NumHeads]Position // final cursor positions, indexed by Head
}

// Engine executes organisms against a shared grid. One Engine serves many
// sequential runs; each run gets a fresh zeroed tape and head set, both
// discarded when the run's budget is spent.
type Engine struct {
	grid       *Grid
	tapeHeight int
	tapeWidth  int
	copyCost   int
	observer   StepObserver
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithTapeSize sets the per-run tape extents.
func WithTapeSize(height, width int) EngineOption {
	return func(e *Engine) {
		e.tapeHeight = height
		e.tapeWidth = width
	}
}

// WithCopyCost sets the extra budget charged for a copy that changes its
// destination. A copy whose destination already holds the source value costs
// only the base step.
func WithCopyCost(cost int) EngineOption {
	return func(e *Engine) { e.copyCost = cost }
}

// WithObserver installs a between-steps observation hook.
func WithObserver(obs StepObserver) EngineOption {
	return func(e *Engine) { e.observer = obs }
}

// NewEngine creates an engine over the given shared grid.
func NewEngine(grid *Grid, opts ...EngineOption) *Engine {
	e := &Engine{
		grid:       grid,
		tapeHeight: DefaultTapeHeight,
		tapeWidth:  DefaultTapeWidth,
		copyCost:   DefaultCopyCost,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs one organism from start with the given initial scan direction
// until the step budget is spent. Every step costs 1; a copy that changes
// its destination costs the copy surcharge on top. The run halts the instant
// the budget reaches zero or below; there is no other halting condition.
//
// Execution mutates only the shared grid (through the copy opcodes) and the
// run's private tape. All coordinates wrap in their own address space, so no
// in-run condition is an error.
func (e *Engine) Execute(start Position, dir Direction, budget int) Result {
	start = e.grid.wrap(start)
	heads := NewHeadSet(start)
	tape := NewTape(e.tapeHeight, e.tapeWidth)

	steps := 0
	copies := 0
	for remaining := budget; remaining > 0; remaining-- {
		ip := heads.Position(HeadInstruction)
		op := OpcodeForCell(e.grid.At(ip))

		switch op {
		case OpNone, OpEntry:
			// inert data, or the entry marker: no-op

		case OpLeft, OpRight, OpUp, OpDown:
			d, _ := DirectionForOpcode(op)
			if heads.Current() == HeadInstruction {
				dir = d
			} else {
				e.moveHead(heads, tape, heads.Current(), d)
			}

		case OpInc, OpDec:
			pos := heads.Position(HeadTape)
			v := tape.At(pos)
			if op == OpInc {
				v++ // int8 wraparound
			} else {
				v--
			}
			tape.Set(pos, v)

		case OpSelInstruction, OpSelTape, OpSelA, OpSelB, OpSelC:
			h, _ := HeadForOpcode(op)
			heads.Select(h)

		case OpCopyOut, OpCopyIn:
			src, dst := heads.Current(), heads.Previous()
			if op == OpCopyIn {
				src, dst = dst, src
			}
			v := e.readHead(heads, tape, src)
			if v != e.readHead(heads, tape, dst) {
				e.writeHead(heads, tape, dst, v)
				remaining -= e.copyCost
				copies++
			}

		case OpOpen, OpClose:
			v := e.readHead(heads, tape, heads.Current())
			if (op == OpOpen && v < 0) || (op == OpClose && v > 0) {
				heads.SetPosition(HeadInstruction, matchingBracket(e.grid, ip, dir, op))
			}
		}

		// The instruction head always advances one cell past whatever it
		// just executed, including a jump target.
		heads.SetPosition(HeadInstruction, e.grid.Step(heads.Position(HeadInstruction), dir))
		steps++

		if e.observer != nil {
			e.observer(&StepView{
				Step:      steps,
				Direction: dir,
				Current:   heads.Current(),
				Previous:  heads.Previous(),
				heads:     heads,
				tape:      tape,
				grid:      e.grid,
			})
		}
	}

	return Result{
		Entry:     start,
		Steps:     steps,
		Copies:    copies,
		Direction: dir,
		Heads:     heads.pos,
	}
}

// moveHead moves h one unit in d, wrapping in the head's own address space.
func (e *Engine) moveHead(heads *HeadSet, tape *Tape, h Head, d Direction) {
	pos := heads.Position(h)
	if h == HeadTape {
		heads.SetPosition(h, tape.Step(pos, d))
	} else {
		heads.SetPosition(h, e.grid.Step(pos, d))
	}
}

// readHead reads the cell under h: the tape for the tape head, the grid for
// every other head.
func (e *Engine) readHead(heads *HeadSet, tape *Tape, h Head) Cell {
	if h == HeadTape {
		return tape.At(heads.Position(h))
	}
	return e.grid.At(heads.Position(h))
}

func (e *Engine) writeHead(heads *HeadSet, tape *Tape, h Head, v Cell) {
	if h == HeadTape {
		tape.Set(heads.Position(h), v)
	} else {
		e.grid.Set(heads.Position(h), v)
	}
}
