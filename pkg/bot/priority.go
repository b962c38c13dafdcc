package bot

import (
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"go.uber.org/zap"
)

// Preferred {row, col} inside a 3x3 grid: center, corners, then edges
var _preferred = [9][2]int{
	{1, 1},
	{0, 0}, {2, 2}, {0, 2}, {2, 0},
	{0, 1}, {2, 1}, {1, 0}, {1, 2},
}

// Plays a move that wins a block if there is one, otherwise the first
// empty preferred cell of the first preferred available block
type Priority struct {
	logger *zap.Logger
}

func NewPriority(opts ...Option) *Priority {
	o := newOptions(opts)
	return &Priority{logger: o.logger}
}

func (b *Priority) Name() string {
	return "priority"
}

func (b *Priority) SelectMove(s *uttt.State) (uttt.Move, bool) {
	moves := s.Moves()
	if len(moves) == 0 {
		return uttt.MoveNone, false
	}

	mover := s.Turn()
	for _, m := range moves {
		if bx, by := m.Block(); !s.Block(bx, by).IsTerminal() && s.CompletesLine(m, mover) {
			b.logger.Debug("winning move", zap.String("move", m.Coords()))
			return m, true
		}
	}

	for _, block := range _preferred {
		if s.Block(block[0], block[1]) != uttt.BlockAvailable {
			continue
		}
		for _, cell := range _preferred {
			x, y := block[0]*3+cell[0], block[1]*3+cell[1]
			if s.Cell(x, y) == uttt.PieceNone {
				return uttt.Move{X: uint8(x), Y: uint8(y)}, true
			}
		}
	}

	// No available block on the macro grid, take the first legal move
	return moves[0], true
}
