package uttt

import (
	"fmt"
	"math/bits"
)

// Game state of Ultimate Tic Tac Toe: the 9x9 board, the macro grid of block
// statuses and the move/round counters. Contains only arrays, so a plain
// value copy is a deep copy.
type State struct {
	board       BoardType
	bitboards   [2][9]uint16   // [player][bigIndex], bit = small index
	macro       [9]BlockStatus // indexed by big index
	moveNumber  int
	roundNumber int
	termination Termination
}

// Create an empty game, every block is playable and cross moves first
func NewState() *State {
	s := &State{}
	for i := range s.macro {
		s.macro[i] = BlockAvailable
	}
	return s
}

// Make a deep copy of the state (has no shared memory with this object)
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Getters
func (s *State) Board() BoardType {
	return s.board
}

func (s *State) Cell(x, y int) PieceType {
	return s.board[x][y]
}

// Status of the block at given macro row and column
func (s *State) Block(bx, by int) BlockStatus {
	return s.macro[bx*3+by]
}

func (s *State) Macro() [3][3]BlockStatus {
	var grid [3][3]BlockStatus
	for i, st := range s.macro {
		grid[i/3][i%3] = st
	}
	return grid
}

func (s *State) MoveNumber() int {
	return s.moveNumber
}

func (s *State) RoundNumber() int {
	return s.roundNumber
}

// Player to move, by convention moveNumber % 2
func (s *State) Turn() Player {
	return Player(s.moveNumber % 2)
}

// Number of pieces on the board
func (s *State) Pieces() int {
	n := 0
	for bi := range s.macro {
		n += bits.OnesCount16(s.bitboards[0][bi] | s.bitboards[1][bi])
	}
	return n
}

// Write a cell without touching the counters, call Resolve after the
// position is fully set up
func (s *State) SetCell(x, y int, piece PieceType) error {
	m, err := NewMove(x, y)
	if err != nil {
		return err
	}

	bi, si := m.BigIndex(), m.SmallIndex()
	s.board[x][y] = piece
	s.bitboards[0][bi] &^= 1 << si
	s.bitboards[1][bi] &^= 1 << si
	if p, ok := piece.Player(); ok {
		s.bitboards[p][bi] |= 1 << si
	}
	return nil
}

// Set the status of given block, used when loading external snapshots
func (s *State) SetBlock(bx, by int, status BlockStatus) {
	s.macro[bx*3+by] = status
}

// Set the counters, round number must be moveNumber / 2
func (s *State) SetCounters(moveNumber, roundNumber int) error {
	if moveNumber < 0 || roundNumber != moveNumber/2 {
		return fmt.Errorf("%w: move number %d, round number %d",
			ErrInconsistentState, moveNumber, roundNumber)
	}
	s.moveNumber = moveNumber
	s.roundNumber = roundNumber
	return nil
}

// Recompute block results from the board and the game termination. Blocks
// that are not terminal keep their playable flag, unless the game is over.
func (s *State) Resolve() {
	for bi := range s.macro {
		if s.macro[bi].IsTerminal() {
			continue
		}
		if st, ok := checkBlock(s.bitboards[PlayerCross][bi], s.bitboards[PlayerCircle][bi]); ok {
			s.macro[bi] = st
		}
	}

	s.checkTermination()
	if s.termination != TerminationNone {
		s.setPlayable(func(int) bool { return false })
	}
}

// Verifies legality of given move, then returns a new state with it applied.
// The receiver is not modified.
func (s *State) Play(m Move) (*State, error) {
	next := s.Clone()
	if err := next.MakeMove(m); err != nil {
		return nil, err
	}
	return next, nil
}

// Apply the move in place: puts the mover's piece on the board, advances the
// counters, resolves the block and the game, and selects the next playable
// block(s).
func (s *State) MakeMove(m Move) error {
	if !s.IsLegal(m) {
		return fmt.Errorf("%w: %s %s at move %d, possible moves=[%s]",
			ErrInvalidMove, m.Coords(), m, s.moveNumber, s.LegalMoves())
	}

	mover := s.Turn()
	bi, si := m.BigIndex(), m.SmallIndex()

	s.board[m.X][m.Y] = mover.Piece()
	s.bitboards[mover][bi] |= 1 << si

	s.moveNumber++
	if s.moveNumber%2 == 0 {
		s.roundNumber++
	}

	// Only the lines through the new piece can have changed
	if !s.macro[bi].IsTerminal() {
		if completesLine(s.bitboards[mover][bi], si) {
			s.macro[bi] = wonBy(mover)
		} else if s.bitboards[0][bi]|s.bitboards[1][bi] == _fullBlock {
			s.macro[bi] = BlockDrawn
		}
	}

	s.checkTermination()

	switch {
	case s.termination != TerminationNone:
		s.setPlayable(func(int) bool { return false })
	case s.macro[si].IsTerminal():
		// Sent to a finished block, the opponent may play in any open one
		s.setPlayable(func(int) bool { return true })
	default:
		s.setPlayable(func(i int) bool { return i == si })
	}
	return nil
}

// Update the playable flag of every non-terminal block
func (s *State) setPlayable(playable func(bigIndex int) bool) {
	for i := range s.macro {
		if s.macro[i].IsTerminal() {
			continue
		}
		if playable(i) {
			s.macro[i] = BlockAvailable
		} else {
			s.macro[i] = BlockUnplayable
		}
	}
}

func (s *State) String() string {
	return s.Notation()
}
