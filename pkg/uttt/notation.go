package uttt

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	StartingPosition string = "9/9/9/9/9/9/9/9/9 x -"
)

// string notation for the ultimate tic tac toe position,
// much like the FEN representation of a chessboard:
//
//	X/X/X/X/X/X/X/X/X <turn> <next block> [move number]
//
// where `X` is one block (by big index), its cells listed by small index,
// with 'x' and 'o' for the pieces and digits for runs of empty cells.
// For example, let X be:
//
//	o | x | x
//	----------
//	x | o |
//	----------
//	o |   |
//
// then X format string would be:
//
//	oxxxo1o2
//
// <turn> - either 'o' or 'x'
//
// <next block> - the only playable block, a digit 0-8, or - if the player
// can move in every unfinished block
//
// [move number] - optional, defaults to the number of pieces on the board
//
// Examples:
//
// * 9/9/9/9/9/9/9/9/9 x -
//
// * 9/9/9/7x1/4xo3/8x/9/4o4/o8 x 0
func (s *State) Notation() string {
	builder := strings.Builder{}

	for bi := range 9 {
		counter := 0
		for si := range 9 {
			m := MoveFromIndex(bi, si)
			switch piece := s.board[m.X][m.Y]; piece {
			case PieceCross, PieceCircle:
				if counter > 0 {
					builder.WriteString(strconv.Itoa(counter))
					counter = 0
				}
				builder.WriteRune(piece.Rune())
			default:
				counter++
			}
		}

		if counter > 0 {
			builder.WriteString(strconv.Itoa(counter))
		}
		if bi != 8 {
			builder.WriteByte('/')
		}
	}

	// Add the turn
	builder.WriteByte(' ')
	builder.WriteString(s.Turn().String())

	// Add the next block
	builder.WriteByte(' ')
	if bi, ok := s.nextBlock(); ok {
		builder.WriteByte('0' + byte(bi))
	} else {
		builder.WriteByte('-')
	}

	if s.moveNumber != s.Pieces() {
		builder.WriteByte(' ')
		builder.WriteString(strconv.Itoa(s.moveNumber))
	}
	return builder.String()
}

// The single playable block, false if the player may choose between blocks
// (or can't play at all)
func (s *State) nextBlock() (int, bool) {
	next, open := -1, 0
	for bi, st := range s.macro {
		if st.IsTerminal() {
			continue
		}
		open++
		if st == BlockAvailable {
			if next != -1 {
				return 0, false
			}
			next = bi
		}
	}
	return next, next != -1 && open > 1
}

// Create the state from given notation string, "startpos" is accepted as an
// alias of StartingPosition
func FromNotation(notation string) (*State, error) {
	if notation == "startpos" {
		notation = StartingPosition
	}

	fields := strings.Fields(notation)
	if len(fields) != 3 && len(fields) != 4 {
		return nil, fmt.Errorf("%w: expected 3 or 4 space separated fields, got %d",
			ErrInvalidNotation, len(fields))
	}

	blocks := strings.Split(fields[0], "/")
	if len(blocks) != 9 {
		return nil, fmt.Errorf("%w: expected 9 blocks, got %d", ErrInvalidNotation, len(blocks))
	}

	s := &State{}
	for bi, block := range blocks {
		smallIndex := 0
		for _, v := range block {
			switch {
			case v == 'x' || v == 'o':
				if smallIndex >= 9 {
					return nil, fmt.Errorf("%w: too many squares in block %d", ErrInvalidNotation, bi)
				}
				m := MoveFromIndex(bi, smallIndex)
				_ = s.SetCell(int(m.X), int(m.Y), PieceFromRune(v))
				smallIndex++
			case '1' <= v && v <= '9':
				// Number, meaning skip given number of squares
				smallIndex += int(v - '0')
			default:
				return nil, fmt.Errorf("%w: unexpected token %q in block %d", ErrInvalidNotation, v, bi)
			}
		}
		if smallIndex != 9 {
			return nil, fmt.Errorf("%w: block %d has %d squares", ErrInvalidNotation, bi, smallIndex)
		}
	}

	// Read the side
	var turn Player
	switch fields[1] {
	case "x":
		turn = PlayerCross
	case "o":
		turn = PlayerCircle
	default:
		return nil, fmt.Errorf("%w: invalid side %q", ErrInvalidNotation, fields[1])
	}

	// Read the move number
	moveNumber := s.Pieces()
	if len(fields) == 4 {
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid move number %q", ErrInvalidNotation, fields[3])
		}
		moveNumber = n
	}
	if Player(moveNumber%2) != turn {
		return nil, fmt.Errorf("%w: move number %d doesn't match side %s",
			ErrInconsistentState, moveNumber, turn)
	}
	if err := s.SetCounters(moveNumber, moveNumber/2); err != nil {
		return nil, err
	}

	// Read the next block, resolve the blocks first so a finished
	// target block falls back to every open block
	s.Resolve()
	switch next := fields[2]; {
	case next == "-":
		s.setPlayable(func(int) bool { return true })
	case len(next) == 1 && next[0] >= '0' && next[0] <= '8':
		target := int(next[0] - '0')
		s.setPlayable(func(i int) bool { return i == target || s.macro[target].IsTerminal() })
	default:
		return nil, fmt.Errorf("%w: invalid next block %q, expected a digit 0-8 or -", ErrInvalidNotation, next)
	}

	s.Resolve()
	return s, nil
}
