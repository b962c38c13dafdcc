package uttt

import (
	"errors"
	"math/rand"
	"testing"
)

func toField(board [9][9]string, macro [3][3]string) ([][]string, [][]string) {
	b := make([][]string, 9)
	for x := range board {
		b[x] = board[x][:]
	}
	m := make([][]string, 3)
	for x := range macro {
		m[x] = macro[x][:]
	}
	return b, m
}

func TestFromField(t *testing.T) {
	board := emptyField()
	board[4][4] = FieldPlayer0
	macro := [][]string{
		{FieldEmpty, FieldEmpty, FieldEmpty},
		{FieldEmpty, FieldAvailable, FieldEmpty},
		{FieldEmpty, FieldEmpty, FieldEmpty},
	}

	s, err := FromField(board, macro, 1, 0)
	if err != nil {
		t.Fatal(err)
	}

	expected, _ := NewState().Play(Move{4, 4})
	if *s != *expected {
		t.Errorf("Expected %s, got %s", expected.Notation(), s.Notation())
	}
	if s.Turn() != PlayerCircle {
		t.Errorf("Expected circle to move, got %s", s.Turn())
	}
}

func TestNoAvailableBlockAllowsAnyEmptyCell(t *testing.T) {
	board := emptyField()
	board[4][4] = FieldPlayer0
	macro := [][]string{
		{FieldEmpty, FieldEmpty, FieldEmpty},
		{FieldEmpty, FieldEmpty, FieldEmpty},
		{FieldEmpty, FieldEmpty, FieldEmpty},
	}

	s, err := FromField(board, macro, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.IsTerminated() || s.AvailableBlocks() != 0 {
		t.Fatalf("Expected an unfinished game without available blocks, got %s", s.Notation())
	}

	expected := make([]Move, 0, 80)
	for x := range 9 {
		for y := range 9 {
			if x != 4 || y != 4 {
				expected = append(expected, Move{X: uint8(x), Y: uint8(y)})
			}
		}
	}
	moves := s.Moves()
	if len(moves) != len(expected) {
		t.Fatalf("Expected %d moves, got %d", len(expected), len(moves))
	}
	for i := range moves {
		if moves[i] != expected[i] {
			t.Fatalf("Move %d: expected %s, got %s", i, expected[i].Coords(), moves[i].Coords())
		}
	}

	if s.IsLegal(Move{4, 4}) {
		t.Error("Occupied cell reported as legal")
	}
	for _, m := range []Move{{0, 0}, {3, 5}, {8, 8}} {
		if !s.IsLegal(m) {
			t.Errorf("Expected %s to be legal", m.Coords())
		}
		next, err := s.Play(m)
		if err != nil {
			t.Errorf("Play(%s): %v", m.Coords(), err)
			continue
		}
		// The opponent is sent to the block of the small index
		if next.AvailableBlocks() != 1 || next.Block(m.SmallIndex()/3, m.SmallIndex()%3) != BlockAvailable {
			t.Errorf("After %s expected only block %d available, got %s", m.Coords(), m.SmallIndex(), next.Notation())
		}
	}
}

func TestFieldRoundTrip(t *testing.T) {
	r := rand.New(rand.NewSource(5))

	for i := 0; i < 100; i++ {
		s := NewState()
		for !s.IsTerminated() {
			b, m := toField(s.Field())
			parsed, err := FromField(b, m, s.MoveNumber(), s.RoundNumber())
			if err != nil {
				t.Fatal(err)
			}
			if *parsed != *s {
				t.Fatalf("Round trip mismatch for %s: got %s", s.Notation(), parsed.Notation())
			}

			moves := s.Moves()
			_ = s.MakeMove(moves[r.Intn(len(moves))])
		}
	}
}

func TestFieldErrors(t *testing.T) {
	validMacro := func() [][]string {
		return [][]string{
			{FieldAvailable, FieldAvailable, FieldAvailable},
			{FieldAvailable, FieldAvailable, FieldAvailable},
			{FieldAvailable, FieldAvailable, FieldAvailable},
		}
	}

	t.Run("short-board", func(t *testing.T) {
		if _, err := FromField(emptyField()[:8], validMacro(), 0, 0); !errors.Is(err, ErrInvalidField) {
			t.Errorf("Expected ErrInvalidField, got %v", err)
		}
	})

	t.Run("short-row", func(t *testing.T) {
		board := emptyField()
		board[3] = board[3][:5]
		if _, err := FromField(board, validMacro(), 0, 0); !errors.Is(err, ErrInvalidField) {
			t.Errorf("Expected ErrInvalidField, got %v", err)
		}
	})

	t.Run("bad-cell", func(t *testing.T) {
		board := emptyField()
		board[0][0] = "2"
		if _, err := FromField(board, validMacro(), 0, 0); !errors.Is(err, ErrInvalidField) {
			t.Errorf("Expected ErrInvalidField, got %v", err)
		}
	})

	t.Run("bad-macro", func(t *testing.T) {
		macro := validMacro()
		macro[1][1] = "draw"
		if _, err := FromField(emptyField(), macro, 0, 0); !errors.Is(err, ErrInvalidField) {
			t.Errorf("Expected ErrInvalidField, got %v", err)
		}
	})

	t.Run("counters", func(t *testing.T) {
		if _, err := FromField(emptyField(), validMacro(), 5, 1); !errors.Is(err, ErrInconsistentState) {
			t.Errorf("Expected ErrInconsistentState, got %v", err)
		}
	})
}
