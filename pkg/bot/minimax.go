package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/IlikeChooros/go-uttt/pkg/minimax"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"go.uber.org/zap"
)

// Plays the move found by a fixed-depth alpha-beta search, ties broken at random
type Minimax struct {
	engine  *minimax.Engine[uttt.Move, *uttt.State]
	weights uttt.Weights
	logger  *zap.Logger
}

func NewMinimax(opts ...Option) *Minimax {
	o := newOptions(opts)
	b := &Minimax{weights: o.weights, logger: o.logger}

	b.engine = minimax.NewEngine[uttt.Move, *uttt.State](b.evaluate)
	b.engine.SetLimits(o.limits)
	b.engine.SetRand(o.rand)
	b.engine.SetLogger(o.logger)
	return b
}

func (b *Minimax) evaluate(root, pos *uttt.State, depthLeft int) int {
	return b.weights.Evaluate(pos, root.Turn(), depthLeft)
}

func (b *Minimax) Name() string {
	return fmt.Sprintf("minimax-d%d", b.engine.Limits().Depth)
}

func (b *Minimax) Engine() *minimax.Engine[uttt.Move, *uttt.State] {
	return b.engine
}

// Run the search, the state isn't modified
func (b *Minimax) Search(ctx context.Context, s *uttt.State) (minimax.Result[uttt.Move], bool, error) {
	return b.engine.Search(ctx, s)
}

// Like SelectMoveContext without a deadline. A search stopped by the movetime
// limit yields no move; any other error means the state is corrupted and it panics.
func (b *Minimax) SelectMove(s *uttt.State) (uttt.Move, bool) {
	m, ok, err := b.SelectMoveContext(context.Background(), s)
	if errors.Is(err, minimax.ErrSearchStopped) {
		b.logger.Warn("search stopped, no move selected",
			zap.String("bot", b.Name()),
			zap.String("position", s.Notation()),
			zap.Error(err),
		)
		return uttt.MoveNone, false
	}
	if err != nil {
		panic(fmt.Sprintf("minimax search failed on %s: %v", s.Notation(), err))
	}
	return m, ok
}

// Select a move, the search stops with ctx. Errors wrap minimax.ErrSearchStopped
// when ctx is done or the movetime runs out.
func (b *Minimax) SelectMoveContext(ctx context.Context, s *uttt.State) (uttt.Move, bool, error) {
	result, ok, err := b.Search(ctx, s)
	if err != nil {
		return uttt.MoveNone, false, err
	}
	if !ok {
		b.logger.Warn("no legal moves", zap.String("position", s.Notation()))
		return uttt.MoveNone, false, nil
	}

	b.logger.Debug("selected move",
		zap.String("bot", b.Name()),
		zap.String("move", result.Move.Coords()),
		zap.Int("score", result.Score),
		zap.Int("ties", len(result.BestMoves)),
	)
	return result.Move, true, nil
}
