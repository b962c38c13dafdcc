package uttt

import (
	"fmt"
	"strings"
)

// Move is a pair of board coordinates, X is the row and Y the column, both in [0, 8]
type Move struct {
	X, Y uint8
}

// Returned by the engines when there is nothing to play
var MoveNone = Move{255, 255}

type MoveList struct {
	moves [9 * 9]Move
	size  uint8
}

// Make a new move list struct
func NewMoveList() *MoveList {
	return &MoveList{}
}

func ToMoveList(moves []Move) *MoveList {
	ml := &MoveList{}
	copy(ml.moves[:], moves)
	ml.size = uint8(len(moves))
	return ml
}

// Create a move from the coordinates, fails if they're outside of the board
func NewMove(x, y int) (Move, error) {
	if x < 0 || x > 8 || y < 0 || y > 8 {
		return MoveNone, fmt.Errorf("%w: (%d,%d) is outside of the board", ErrInvalidMove, x, y)
	}
	return Move{X: uint8(x), Y: uint8(y)}, nil
}

// Create a move, based on big (block) and small (cell within block) indexes
func MoveFromIndex(bigIndex, smallIndex int) Move {
	return Move{
		X: uint8(bigIndex/3*3 + smallIndex/3),
		Y: uint8(bigIndex%3*3 + smallIndex%3),
	}
}

// Reset the movelist, simply sets the size to 0
func (ml *MoveList) Clear() {
	ml.size = 0
}

// Get the actual slice of valid moves
func (ml *MoveList) Slice() []Move {
	return ml.moves[0:ml.size]
}

func (ml *MoveList) Size() int {
	return int(ml.size)
}

func (ml *MoveList) Append(m Move) {
	ml.moves[ml.size] = m
	ml.size++
}

func (ml *MoveList) Contains(m Move) bool {
	for _, v := range ml.Slice() {
		if v == m {
			return true
		}
	}
	return false
}

// Convert movelist into a string, uses move notation with space seperation
func (ml *MoveList) String() string {
	if ml.size == 0 {
		return "empty"
	}

	strMoves := make([]string, ml.size)
	for i, m := range ml.Slice() {
		strMoves[i] = m.String()
	}
	return strings.Join(strMoves, " ")
}

func (m Move) IsValid() bool {
	return m.X < 9 && m.Y < 9
}

// Index of the block containing the move, row-major over the macro grid
func (m Move) BigIndex() int {
	return int(m.X/3)*3 + int(m.Y/3)
}

// Index of the cell inside its block, this is also the index of the block
// the opponent is sent to
func (m Move) SmallIndex() int {
	return int(m.X%3)*3 + int(m.Y%3)
}

// Block row and column on the macro grid
func (m Move) Block() (int, int) {
	return int(m.X / 3), int(m.Y / 3)
}

func (m Move) Coords() string {
	if !m.IsValid() {
		return "(none)"
	}
	return fmt.Sprintf("(%d,%d)", m.X, m.Y)
}

// Get string representation of the move, will contain
// A/B/C 1/2/3 as the block and a/b/c 1/2/3 as the cell, for example
// big index = 7, small index = 2 -> B1c3
//
//	   A   B   C
//	 0 | 1 | 2    3
//	-----------
//	 3 | 4 | 5    2
//	-----------
//	 6 | 7 | 8    1
func (m Move) String() string {
	if !m.IsValid() {
		return "(none)"
	}

	bi, si := m.BigIndex(), m.SmallIndex()
	builder := strings.Builder{}
	builder.WriteByte('A' + byte(bi%3))
	builder.WriteByte('3' - byte(bi/3))
	builder.WriteByte('a' + byte(si%3))
	builder.WriteByte('3' - byte(si/3))
	return builder.String()
}

// Convert given move notation (see Move.String) or "x,y" coordinates to a Move
func MoveFromString(str string) (Move, error) {
	str = strings.Trim(strings.TrimSpace(str), "()")

	var x, y int
	if n, err := fmt.Sscanf(str, "%d,%d", &x, &y); err == nil && n == 2 {
		return NewMove(x, y)
	}

	if len(str) != 4 {
		return MoveNone, fmt.Errorf("%w: cannot parse %q", ErrInvalidMove, str)
	}

	// Helper function to make sure the coordinates are withing the range
	_cmp := func(i int, letter byte) bool {
		return (str[i] >= letter && str[i] <= letter+2) &&
			(str[i+1] >= '1' && str[i+1] <= '3')
	}

	if _cmp(0, 'A') && _cmp(2, 'a') {
		return MoveFromIndex(
			int((str[0]-'A')+('3'-str[1])*3),
			int((str[2]-'a')+('3'-str[3])*3)), nil
	}

	return MoveNone, fmt.Errorf("%w: cannot parse %q", ErrInvalidMove, str)
}
