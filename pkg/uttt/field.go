package uttt

import "fmt"

// Cell and macro cell markers used by the external game engine snapshot
const (
	FieldEmpty     = "."
	FieldAvailable = "-1"
	FieldTie       = "TIE"
	FieldPlayer0   = "0"
	FieldPlayer1   = "1"
)

// Create the state from the external game engine snapshot: a 9x9 board of
// "0", "1" or "." cells, a 3x3 macro board of "-1" (available), "." (not
// playable), "0"/"1" (won) or "TIE" (drawn) cells, and the counters.
// Block results missing from the macro board are derived from the cells.
func FromField(board [][]string, macro [][]string, moveNumber, roundNumber int) (*State, error) {
	if len(board) != 9 {
		return nil, fmt.Errorf("%w: board has %d rows, expected 9", ErrInvalidField, len(board))
	}
	if len(macro) != 3 {
		return nil, fmt.Errorf("%w: macro board has %d rows, expected 3", ErrInvalidField, len(macro))
	}

	s := &State{}
	if err := s.SetCounters(moveNumber, roundNumber); err != nil {
		return nil, err
	}

	for x, row := range board {
		if len(row) != 9 {
			return nil, fmt.Errorf("%w: board row %d has %d cells, expected 9", ErrInvalidField, x, len(row))
		}
		for y, cell := range row {
			var piece PieceType
			switch cell {
			case FieldPlayer0:
				piece = PieceCross
			case FieldPlayer1:
				piece = PieceCircle
			case FieldEmpty, FieldAvailable, "":
				piece = PieceNone
			default:
				return nil, fmt.Errorf("%w: unexpected cell %q at (%d,%d)", ErrInvalidField, cell, x, y)
			}
			_ = s.SetCell(x, y, piece)
		}
	}

	for bx, row := range macro {
		if len(row) != 3 {
			return nil, fmt.Errorf("%w: macro row %d has %d cells, expected 3", ErrInvalidField, bx, len(row))
		}
		for by, cell := range row {
			var status BlockStatus
			switch cell {
			case FieldAvailable:
				status = BlockAvailable
			case FieldEmpty, "":
				status = BlockUnplayable
			case FieldPlayer0:
				status = BlockCrossWon
			case FieldPlayer1:
				status = BlockCircleWon
			case FieldTie:
				status = BlockDrawn
			default:
				return nil, fmt.Errorf("%w: unexpected macro cell %q at (%d,%d)", ErrInvalidField, cell, bx, by)
			}
			s.SetBlock(bx, by, status)
		}
	}

	s.Resolve()
	return s, nil
}

// Convert the state into the external game engine snapshot format
func (s *State) Field() (board [9][9]string, macro [3][3]string) {
	for x := range 9 {
		for y := range 9 {
			switch s.board[x][y] {
			case PieceCross:
				board[x][y] = FieldPlayer0
			case PieceCircle:
				board[x][y] = FieldPlayer1
			default:
				board[x][y] = FieldEmpty
			}
		}
	}

	for bi, st := range s.macro {
		var cell string
		switch st {
		case BlockAvailable:
			cell = FieldAvailable
		case BlockCrossWon:
			cell = FieldPlayer0
		case BlockCircleWon:
			cell = FieldPlayer1
		case BlockDrawn:
			cell = FieldTie
		default:
			cell = FieldEmpty
		}
		macro[bi/3][bi%3] = cell
	}
	return board, macro
}
