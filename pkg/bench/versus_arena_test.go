package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/IlikeChooros/go-uttt/pkg/minimax"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

func TestMain(m *testing.M) {
	minimax.SetSeedGeneratorFn(func() int64 {
		return 42
	})
	fmt.Printf("Using seed %d\n", minimax.SeedGeneratorFn())
	os.Exit(m.Run())
}

type countingListener struct {
	DefaultListener
	mu        sync.Mutex
	moves     int
	games     int
	workers   int
	summaries []VersusSummaryInfo
	gameIDs   map[string]bool
}

func (l *countingListener) OnMoveMade(VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.moves++
}

func (l *countingListener) OnFinishedGame(info VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.games++
	l.gameIDs[info.GameID] = true
}

func (l *countingListener) OnFinishedWork(VersusWorkerInfo) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.workers++
}

func (l *countingListener) Summary(summary VersusSummaryInfo) {
	l.summaries = append(l.summaries, summary)
}

func randomFactory(seed *int64, mu *sync.Mutex) BotFactory {
	return func() bot.Bot {
		mu.Lock()
		defer mu.Unlock()
		*seed++
		return bot.NewRandom(bot.WithRand(rand.New(rand.NewSource(*seed))))
	}
}

func TestVersusArena(t *testing.T) {
	var mu sync.Mutex
	seed := int64(0)

	arena := NewVersusArena(uttt.NewState(), randomFactory(&seed, &mu), func() bot.Bot {
		return bot.NewPriority()
	})
	arena.Setup(20, 3)

	listener := &countingListener{gameIDs: make(map[string]bool)}
	summary, err := arena.Run(context.Background(), listener)
	if err != nil {
		t.Fatal(err)
	}

	if summary.TotalGames != 20 || summary.P1Wins+summary.P2Wins+summary.Draws != 20 {
		t.Errorf("Unexpected summary %s", summary)
	}
	if summary.FirstToMoveWins+summary.SecondToMoveWins+summary.Draws != 20 {
		t.Errorf("Side wins don't add up: %s", summary)
	}
	if summary.Workers != 3 || summary.P1Name != "random" || summary.P2Name != "priority" {
		t.Errorf("Unexpected summary %s", summary)
	}

	if listener.games != 20 || len(listener.gameIDs) != 20 {
		t.Errorf("Expected 20 games with unique ids, got %d games, %d ids", listener.games, len(listener.gameIDs))
	}
	if listener.workers != 3 || len(listener.summaries) != 1 {
		t.Errorf("Expected 3 workers and 1 summary, got %d and %d", listener.workers, len(listener.summaries))
	}
	if listener.moves < 20*17 {
		t.Errorf("Games are too short, %d moves in total", listener.moves)
	}

	if s := summary.String(); !strings.Contains(s, `"total_games":20`) {
		t.Errorf("Unexpected JSON summary %s", s)
	}
}

func TestVersusArenaCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	arena := NewVersusArena(uttt.NewState(),
		func() bot.Bot { return bot.NewPriority() },
		func() bot.Bot { return bot.NewPriority() })
	arena.Setup(4, 2)

	if _, err := arena.Run(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestVersusArenaMovetimeExceeded(t *testing.T) {
	arena := NewVersusArena(uttt.NewState(),
		func() bot.Bot {
			return bot.NewMinimax(bot.WithLimits(minimax.DefaultLimits().SetDepth(6).SetMovetime(0)))
		},
		func() bot.Bot { return bot.NewRandom() })
	arena.Setup(1, 1)

	summary, err := arena.Run(context.Background(), nil)
	if !errors.Is(err, minimax.ErrSearchStopped) {
		t.Fatalf("Expected ErrSearchStopped, got %v", err)
	}
	if summary.TotalGames != 0 {
		t.Errorf("Expected no finished games, got %d", summary.TotalGames)
	}
}

func TestVersusArenaCancelledDuringSearch(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// A depth 9 search from the starting position runs far longer than the timeout
	arena := NewVersusArena(uttt.NewState(),
		func() bot.Bot { return bot.NewMinimax(bot.WithDepth(9)) },
		func() bot.Bot { return bot.NewMinimax(bot.WithDepth(9)) })
	arena.Setup(1, 1)

	start := time.Now()
	_, err := arena.Run(ctx, nil)
	if !errors.Is(err, minimax.ErrSearchStopped) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected a stopped search, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Search didn't stop with the context, took %s", elapsed)
	}
}

func TestToAgentResult(t *testing.T) {
	cases := []struct {
		outcome     GameOutcome
		p1WentFirst bool
		expected    VersusMatchResult
	}{
		{GameOutcome{IsDraw: true}, true, VersusDraw},
		{GameOutcome{FirstPlayerWon: true}, true, VersusPl1Win},
		{GameOutcome{FirstPlayerWon: true}, false, VersusPl2Win},
		{GameOutcome{FirstPlayerWon: false}, true, VersusPl2Win},
		{GameOutcome{FirstPlayerWon: false}, false, VersusPl1Win},
	}

	for _, c := range cases {
		if r := toAgentResult(c.outcome, c.p1WentFirst); r != c.expected {
			t.Errorf("%+v, p1 first=%v: expected %d, got %d", c.outcome, c.p1WentFirst, c.expected, r)
		}
	}
}

func TestComputeOutcome(t *testing.T) {
	s, err := uttt.FromNotation("xxx6/9/9/9/xxx6/9/9/9/xxx6 o -")
	if err != nil {
		t.Fatal(err)
	}
	if o := computeOutcome(s); !o.FirstPlayerWon || o.IsDraw {
		t.Errorf("Expected the first player to win, got %+v", o)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected a panic for an unfinished game")
		}
	}()
	computeOutcome(uttt.NewState())
}
