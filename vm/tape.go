package vm

import "fmt"

// Tape is an organism's private working memory: a small toroidal cell array
// created zeroed for each run and discarded when the run's budget is spent.
// It is addressed by the tape head, decoupled from Grid-space.
type Tape struct {
	plane
}

// NewTape creates a zeroed height x width tape. It panics if either extent
// is not positive.
func NewTape(height, width int) *Tape {
	if height <= 0 || width <= 0 {
		panic(fmt.Sprintf("vm: invalid tape size %dx%d", height, width))
	}
	return &Tape{plane: newPlane(height, width)}
}
