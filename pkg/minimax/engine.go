package minimax

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Depth-bounded minimax search with alpha-beta pruning. The root player
// maximizes, the opponent minimizes, every evaluation is taken from the
// root player's perspective. Equally scored root moves are broken with the
// engine's random source, which is the only randomness of the search.
//
// Search may be called concurrently, as long as the engine isn't
// reconfigured at the same time.
type Engine[M comparable, P Position[M, P]] struct {
	eval     Evaluator[P]
	limits   Limits
	listener Listener[M]
	logger   *zap.Logger
	mu       sync.Mutex // guards rand
	rand     *rand.Rand
}

func NewEngine[M comparable, P Position[M, P]](eval Evaluator[P]) *Engine[M, P] {
	return &Engine[M, P]{
		eval:     eval,
		limits:   *DefaultLimits(),
		listener: NewListener[M](),
		logger:   zap.NewNop(),
		rand:     rand.New(rand.NewSource(SeedGeneratorFn())),
	}
}

func (e *Engine[M, P]) SetLimits(limits *Limits) {
	e.limits = *limits
}

func (e *Engine[M, P]) Limits() Limits {
	return e.limits
}

// Replace the tie-break random source, use a seeded one for reproducible picks
func (e *Engine[M, P]) SetRand(r *rand.Rand) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rand = r
}

func (e *Engine[M, P]) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.logger = logger
}

func (e *Engine[M, P]) SetListener(listener Listener[M]) {
	e.listener = listener
}

func (e *Engine[M, P]) Listener() *Listener[M] {
	return &e.listener
}

// State of one Search call
type search[M comparable, P Position[M, P]] struct {
	*Engine[M, P]
	ctx     context.Context
	root    P
	limiter *limiter
	mu      sync.Mutex // serializes the root move callback
}

// Search the root position to the configured depth. Returns false if the
// root has no legal moves (the game is over), that isn't an error. The
// search fails if a move can't be played or if it's stopped by the context
// or the movetime limit; the error wraps ErrSearchStopped then.
func (e *Engine[M, P]) Search(ctx context.Context, root P) (Result[M], bool, error) {
	s := &search[M, P]{
		Engine:  e,
		ctx:     ctx,
		root:    root,
		limiter: newLimiter(e.limits.Movetime),
	}

	var moves []M
	if !root.IsTerminated() {
		moves = root.Moves()
	}
	if len(moves) == 0 {
		e.logger.Debug("no legal moves at the root")
		return Result[M]{}, false, nil
	}

	if err := s.limiter.poll(ctx); err != nil {
		return Result[M]{}, false, s.fail(err)
	}

	var (
		best      int
		bestMoves []M
		err       error
	)
	if e.limits.NThreads > 1 && len(moves) > 1 {
		best, bestMoves, err = s.parallelRoot(moves)
	} else {
		best, bestMoves, err = s.sequentialRoot(moves)
	}
	if err != nil {
		return Result[M]{}, false, s.fail(err)
	}

	e.mu.Lock()
	pick := bestMoves[e.rand.Intn(len(bestMoves))]
	e.mu.Unlock()

	stats := s.stats(best, bestMoves)
	e.listener.invokeStop(stats)
	e.logger.Debug("search finished",
		zap.Int("depth", stats.Depth),
		zap.Int("score", best),
		zap.Uint64("nodes", stats.Nodes),
		zap.Uint64("cutoffs", stats.Cutoffs),
		zap.Int("best_moves", len(bestMoves)),
		zap.Any("move", pick),
		zap.Int("time_ms", stats.TimeMs),
	)

	return Result[M]{Move: pick, Score: best, BestMoves: bestMoves, Stats: stats}, true, nil
}

func (s *search[M, P]) stats(score int, bestMoves []M) Stats[M] {
	elapsed := s.limiter.elapsed()
	nodes := s.limiter.nodes.Load()
	return Stats[M]{
		Depth:      s.limits.Depth,
		Nodes:      nodes,
		Cutoffs:    s.limiter.cutoffs.Load(),
		TimeMs:     elapsed,
		Nps:        nodes * 1000 / uint64(elapsed),
		Score:      score,
		BestMoves:  bestMoves,
		StopReason: s.limiter.stopReason(),
	}
}

func (s *search[M, P]) fail(err error) error {
	s.listener.invokeStop(s.stats(0, nil))
	s.logger.Debug("search failed", zap.Error(err))
	return err
}

// Root children in move order. Once a best score exists, the remaining
// children are searched with the window (best-1, +inf): children equal to
// the best get their exact score and join the tie set, worse ones fail low.
func (s *search[M, P]) sequentialRoot(moves []M) (int, []M, error) {
	best := -Infinity
	var bestMoves []M

	for _, m := range moves {
		child, err := s.root.Play(m)
		if err != nil {
			return 0, nil, fmt.Errorf("play root move %v: %w", m, err)
		}

		alpha := -Infinity
		if s.limits.Pruning && best > -Infinity {
			alpha = best - 1
		}
		score, err := s.alphaBeta(child, s.limits.Depth-1, alpha, Infinity, false)
		if err != nil {
			return 0, nil, err
		}

		s.listener.invokeRootMove(RootMove[M]{
			Move:  m,
			Score: score,
			Exact: !s.limits.Pruning || score > alpha,
		})

		switch {
		case score > best:
			best = score
			bestMoves = append(bestMoves[:0], m)
		case score == best:
			bestMoves = append(bestMoves, m)
		}
	}
	return best, bestMoves, nil
}

// Every root child searched with the full window on its own goroutine, the
// scores are exact, so the tie set is the same as in the sequential search
func (s *search[M, P]) parallelRoot(moves []M) (int, []M, error) {
	scores := make([]int, len(moves))
	g, ctx := errgroup.WithContext(s.ctx)
	g.SetLimit(s.limits.NThreads)

	// The group context is cancelled once any worker fails
	worker := &search[M, P]{
		Engine:  s.Engine,
		ctx:     ctx,
		root:    s.root,
		limiter: s.limiter,
	}

	for i, m := range moves {
		g.Go(func() error {
			child, err := s.root.Play(m)
			if err != nil {
				return fmt.Errorf("play root move %v: %w", m, err)
			}
			score, err := worker.alphaBeta(child, s.limits.Depth-1, -Infinity, Infinity, false)
			if err != nil {
				return err
			}
			scores[i] = score

			s.mu.Lock()
			s.listener.invokeRootMove(RootMove[M]{Move: m, Score: score, Exact: true})
			s.mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, nil, err
	}

	best := -Infinity
	var bestMoves []M
	for i, score := range scores {
		switch {
		case score > best:
			best = score
			bestMoves = append(bestMoves[:0], moves[i])
		case score == best:
			bestMoves = append(bestMoves, moves[i])
		}
	}
	return best, bestMoves, nil
}

// Fail-soft alpha-beta, the root player maximizes. Without pruning no
// sibling is ever skipped and the result is the plain minimax value.
func (s *search[M, P]) alphaBeta(pos P, depth, alpha, beta int, maximizing bool) (int, error) {
	if err := s.limiter.visit(s.ctx); err != nil {
		return 0, err
	}

	if depth <= 0 || pos.IsTerminated() {
		return s.eval(s.root, pos, depth), nil
	}

	moves := pos.Moves()
	if len(moves) == 0 {
		return s.eval(s.root, pos, depth), nil
	}

	if maximizing {
		best := -Infinity
		for _, m := range moves {
			child, err := pos.Play(m)
			if err != nil {
				return 0, fmt.Errorf("play move %v: %w", m, err)
			}
			score, err := s.alphaBeta(child, depth-1, alpha, beta, false)
			if err != nil {
				return 0, err
			}

			best = max(best, score)
			alpha = max(alpha, best)
			if s.limits.Pruning && alpha >= beta {
				s.limiter.cutoffs.Add(1)
				break
			}
		}
		return best, nil
	}

	best := Infinity
	for _, m := range moves {
		child, err := pos.Play(m)
		if err != nil {
			return 0, fmt.Errorf("play move %v: %w", m, err)
		}
		score, err := s.alphaBeta(child, depth-1, alpha, beta, true)
		if err != nil {
			return 0, err
		}

		best = min(best, score)
		beta = min(beta, best)
		if s.limits.Pruning && alpha >= beta {
			s.limiter.cutoffs.Add(1)
			break
		}
	}
	return best, nil
}
