package bot

import (
	"context"
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/minimax"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"go.uber.org/zap"
)

// Move selection strategy. SelectMove returns false if the state has no
// legal move, the game is over then. Bots aren't safe for concurrent use.
type Bot interface {
	Name() string
	SelectMove(s *uttt.State) (uttt.Move, bool)
}

// Bots whose selection can block, the search stops when ctx is done
type ContextBot interface {
	Bot
	SelectMoveContext(ctx context.Context, s *uttt.State) (uttt.Move, bool, error)
}

// Select with ctx if b supports it, plain SelectMove otherwise
func SelectMove(ctx context.Context, b Bot, s *uttt.State) (uttt.Move, bool, error) {
	if cb, ok := b.(ContextBot); ok {
		return cb.SelectMoveContext(ctx, s)
	}
	m, ok := b.SelectMove(s)
	return m, ok, nil
}

type options struct {
	limits  *minimax.Limits
	weights uttt.Weights
	rand    *rand.Rand
	logger  *zap.Logger
}

type Option func(*options)

func defaultOptions() *options {
	return &options{
		limits:  minimax.DefaultLimits(),
		weights: uttt.DefaultWeights(),
		logger:  zap.NewNop(),
	}
}

func newOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	if o.rand == nil {
		o.rand = rand.New(rand.NewSource(minimax.SeedGeneratorFn()))
	}
	return o
}

// Search depth in plies
func WithDepth(depth int) Option {
	return func(o *options) {
		o.limits.SetDepth(depth)
	}
}

// Number of goroutines searching the root children
func WithThreads(threads int) Option {
	return func(o *options) {
		o.limits.SetThreads(threads)
	}
}

// Replace every search limit at once
func WithLimits(limits *minimax.Limits) Option {
	return func(o *options) {
		l := *limits
		o.limits = &l
	}
}

func WithWeights(weights uttt.Weights) Option {
	return func(o *options) {
		o.weights = weights
	}
}

// Random source for tie-breaks (and random moves), seed it for reproducible games
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}
