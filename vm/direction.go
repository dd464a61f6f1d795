package vm

import (
	"fmt"
	"math/rand"
)

// Direction is one of the four unit scan vectors. The engine applies it to
// the instruction head after every dispatch; direction opcodes either steer
// it or move the currently selected head by it.
type Direction byte

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Delta returns the (row, col) unit offset for the direction.
func (d Direction) Delta() (dr, dc int) {
	switch d {
	case Left:
		return 0, -1
	case Right:
		return 0, 1
	case Up:
		return -1, 0
	default:
		return 1, 0
	}
}

// Inverse returns the opposite direction. Closing brackets resolve their
// match by scanning in the inverse of the current scan direction.
func (d Direction) Inverse() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	default:
		return Up
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "<"
	case Right:
		return ">"
	case Up:
		return "^"
	default:
		return "v"
	}
}

// ParseDirection is the inverse of String.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "<":
		return Left, nil
	case ">":
		return Right, nil
	case "^":
		return Up, nil
	case "v":
		return Down, nil
	}
	return Left, fmt.Errorf("vm: unknown direction %q", s)
}

// RandomDirection draws one of the four directions uniformly.
func RandomDirection(rng *rand.Rand) Direction {
	return Direction(rng.Intn(4))
}

// DirectionForOpcode maps the four direction opcodes to their vectors. The
// second result is false for any other opcode.
func DirectionForOpcode(op Opcode) (Direction, bool) {
	switch op {
	case OpLeft:
		return Left, true
	case OpRight:
		return Right, true
	case OpUp:
		return Up, true
	case OpDown:
		return Down, true
	}
	return Left, false
}
