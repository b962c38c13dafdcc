package uttt

import "math/bits"

// Generate all legal moves in given position, in row-major board order.
// A move is legal if its cell is empty and its block is available. If the
// macro grid has no available block in an unfinished game, every empty cell
// is returned instead.
func (s *State) LegalMoves() *MoveList {
	movelist := NewMoveList()
	if s.termination != TerminationNone {
		return movelist
	}

	anyBlock := s.AvailableBlocks() == 0
	for x := range 9 {
		for y := range 9 {
			m := Move{X: uint8(x), Y: uint8(y)}
			if s.board[x][y] == PieceNone && (anyBlock || s.macro[m.BigIndex()] == BlockAvailable) {
				movelist.Append(m)
			}
		}
	}
	return movelist
}

// Same as LegalMoves, as a slice
func (s *State) Moves() []Move {
	return s.LegalMoves().Slice()
}

// Number of blocks with the available status
func (s *State) AvailableBlocks() int {
	n := 0
	for _, st := range s.macro {
		if st == BlockAvailable {
			n++
		}
	}
	return n
}

// Number of empty cells in given block
func (s *State) EmptyCells(bigIndex int) int {
	return 9 - bits.OnesCount16(s.bitboards[0][bigIndex]|s.bitboards[1][bigIndex])
}

// Check if given move is legal
func (s *State) IsLegal(m Move) bool {
	// Index out of range, game terminated or non-empty square
	if !m.IsValid() || s.termination != TerminationNone || s.board[m.X][m.Y] != PieceNone {
		return false
	}
	return s.macro[m.BigIndex()] == BlockAvailable || s.AvailableBlocks() == 0
}
