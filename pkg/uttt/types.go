package uttt

import "errors"

// Type defines for the position
type PieceType int8
type Player uint8
type BlockStatus uint8
type BoardType [9][9]PieceType // [x][y], x is the row

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrInvalidNotation   = errors.New("invalid notation")
	ErrInvalidField      = errors.New("invalid field")
	ErrInconsistentState = errors.New("inconsistent state")
)

// Enum for the piece type
const (
	PieceNone PieceType = iota
	PieceCross
	PieceCircle
)

// Players, the value is also the move number parity of that player's turns
const (
	PlayerCross  Player = 0
	PlayerCircle Player = 1
)

// Local board (block) statuses on the macro grid. Unplayable and Available are
// sentinels, they never count as a player's mark in line detection.
const (
	BlockUnplayable BlockStatus = iota
	BlockAvailable
	BlockCrossWon
	BlockCircleWon
	BlockDrawn
)

func (p Player) Opponent() Player {
	return p ^ 1
}

func (p Player) Piece() PieceType {
	if p == PlayerCross {
		return PieceCross
	}
	return PieceCircle
}

func (p Player) String() string {
	if p == PlayerCross {
		return "x"
	}
	return "o"
}

// Get the owner of the piece, false for an empty cell
func (p PieceType) Player() (Player, bool) {
	switch p {
	case PieceCross:
		return PlayerCross, true
	case PieceCircle:
		return PlayerCircle, true
	}
	return 0, false
}

func (p PieceType) Rune() rune {
	switch p {
	case PieceCross:
		return 'x'
	case PieceCircle:
		return 'o'
	}
	return ' '
}

// Create piece from a rune
func PieceFromRune(square rune) PieceType {
	switch square {
	case 'x', 'X':
		return PieceCross
	case 'o', 'O':
		return PieceCircle
	default:
		return PieceNone
	}
}

// Won or drawn, such block is frozen for the rest of the game
func (b BlockStatus) IsTerminal() bool {
	return b >= BlockCrossWon
}

func (b BlockStatus) Winner() (Player, bool) {
	switch b {
	case BlockCrossWon:
		return PlayerCross, true
	case BlockCircleWon:
		return PlayerCircle, true
	}
	return 0, false
}

func (b BlockStatus) String() string {
	switch b {
	case BlockUnplayable:
		return "unplayable"
	case BlockAvailable:
		return "available"
	case BlockCrossWon:
		return "x-won"
	case BlockCircleWon:
		return "o-won"
	case BlockDrawn:
		return "drawn"
	}
	return "unknown"
}

func wonBy(p Player) BlockStatus {
	if p == PlayerCross {
		return BlockCrossWon
	}
	return BlockCircleWon
}
