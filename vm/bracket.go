package vm

// matchingBracket finds the counterpart of the bracket at start by a
// straight nested-depth scan along dir. Opening brackets scan forward,
// closing brackets scan in the inverse direction. If the scan wraps the
// whole grid back to start without the depth reaching zero, the bracket is
// unbalanced and start itself is returned; that fallback is defined
// behavior, not an error, and is also what keeps the scan finite.
func matchingBracket(g *Grid, start Position, dir Direction, bracket Opcode) Position {
	if bracket == OpClose {
		dir = dir.Inverse()
	}
	opposite := OpClose
	if bracket == OpClose {
		opposite = OpOpen
	}

	depth := 1
	pos := start
	for {
		pos = g.Step(pos, dir)
		if pos == start {
			return start
		}
		switch OpcodeForCell(g.At(pos)) {
		case bracket:
			depth++
		case opposite:
			depth--
		}
		if depth == 0 {
			return pos
		}
	}
}
