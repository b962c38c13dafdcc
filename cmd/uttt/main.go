package main

/*
Command line front end of the engine.

Pick a move for a position:

	uttt --position "9/9/9/9/4x4/9/9/9/9 o 4" --depth 4

Or let two bots play each other:

	uttt --arena --bot minimax --opponent priority --games 50 --workers 4
*/

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/IlikeChooros/go-uttt/pkg/bench"
	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/IlikeChooros/go-uttt/pkg/minimax"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/muesli/termenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {
	cfg, err := Setup(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := newLogger(cfg.Debug)
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(run(ctx, cfg, logger, os.Stdout))
}

func newLogger(debug bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger
}

func run(ctx context.Context, cfg *Config, logger *zap.Logger, w io.Writer) int {
	if cfg.Seed != 0 {
		seed := cfg.Seed
		minimax.SetSeedGeneratorFn(func() int64 { return seed })
	}

	if cfg.Arena {
		if err := runArena(ctx, cfg, logger, w); err != nil {
			logger.Error("arena failed", zap.Error(err))
			return 1
		}
		return 0
	}

	if err := runSelect(ctx, cfg, logger, w); err != nil {
		logger.Error("move selection failed", zap.Error(err))
		return 1
	}
	return 0
}

func limits(cfg *Config) *minimax.Limits {
	return minimax.DefaultLimits().
		SetDepth(cfg.Depth).
		SetThreads(cfg.Threads).
		SetMovetime(cfg.Movetime).
		SetPruning(!cfg.NoPruning)
}

func newBot(name string, cfg *Config, logger *zap.Logger) bot.Bot {
	opts := []bot.Option{
		bot.WithLimits(limits(cfg)),
		bot.WithLogger(logger),
		bot.WithRand(rand.New(rand.NewSource(minimax.SeedGeneratorFn()))),
	}

	switch name {
	case "priority":
		return bot.NewPriority(opts...)
	case "random":
		return bot.NewRandom(opts...)
	}
	return bot.NewMinimax(opts...)
}

func outputOptions(cfg *Config) []termenv.OutputOption {
	if !cfg.Color {
		return []termenv.OutputOption{termenv.WithProfile(termenv.Ascii)}
	}
	return nil
}

func runSelect(ctx context.Context, cfg *Config, logger *zap.Logger, w io.Writer) error {
	s, err := uttt.FromNotation(cfg.Position)
	if err != nil {
		return err
	}

	b := newBot(cfg.Bot, cfg, logger)
	var (
		move uttt.Move
		ok   bool
		info string
	)

	if mm, isMinimax := b.(*bot.Minimax); isMinimax {
		result, found, err := mm.Search(ctx, s)
		if err != nil {
			return err
		}
		move, ok = result.Move, found
		info = fmt.Sprintf("score %d, nodes %d, cutoffs %d, %d ms, tied moves: %s\n",
			result.Score, result.Stats.Nodes, result.Stats.Cutoffs, result.Stats.TimeMs,
			uttt.ToMoveList(result.BestMoves))
	} else {
		move, ok = b.SelectMove(s)
	}

	renderBoard(w, s, move, outputOptions(cfg)...)
	fmt.Fprintln(w)
	if !ok {
		fmt.Fprintln(w, "bestmove none")
		return nil
	}

	next, err := s.Play(move)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "bestmove %s %s\nposition %s\n", move, move.Coords(), next.Notation())
	fmt.Fprint(w, info)
	return nil
}

func runArena(ctx context.Context, cfg *Config, logger *zap.Logger, w io.Writer) error {
	s, err := uttt.FromNotation(cfg.Position)
	if err != nil {
		return err
	}

	// Bots log at debug level only, the arena output is the summary
	botLogger := zap.NewNop()
	if cfg.Debug {
		botLogger = logger
	}

	arena := bench.NewVersusArena(s,
		func() bot.Bot { return newBot(cfg.Bot, cfg, botLogger) },
		func() bot.Bot { return newBot(cfg.Opponent, cfg, botLogger) },
	).WithLogger(logger)
	arena.Setup(cfg.Games, cfg.Workers)

	summary, err := arena.Run(ctx, bench.NewLogListener(logger))
	if err != nil {
		return err
	}
	fmt.Fprint(w, summary.String())
	return nil
}
