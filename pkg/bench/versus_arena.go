package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/bot"
	"github.com/IlikeChooros/go-uttt/pkg/minimax"
	"github.com/IlikeChooros/go-uttt/pkg/uttt"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

/*
Arena benchmark subpackage, plays a series of games between two bots.
Every worker goroutine builds its own pair of bots, since bots aren't safe
for concurrent use.
*/

var ErrNoMove = errors.New("bot found no move")

type BotFactory func() bot.Bot

type VersusArena struct {
	VersusArenaStats
	Player1  BotFactory
	Player2  BotFactory
	NGames   int
	NThreads int
	Position *uttt.State
	logger   *zap.Logger
}

func NewVersusArena(position *uttt.State, player1, player2 BotFactory) *VersusArena {
	return &VersusArena{
		Player1:  player1,
		Player2:  player2,
		NGames:   100,
		NThreads: 2,
		Position: position,
		logger:   zap.NewNop(),
	}
}

func (va *VersusArena) WithLogger(logger *zap.Logger) *VersusArena {
	if logger != nil {
		va.logger = logger
	}
	return va
}

func (va *VersusArena) Setup(nGames, nThreads int) {
	va.NGames = max(nGames, 0)
	va.NThreads = max(nThreads, 1)
}

// Play NGames games, distributed equally between NThreads workers. The side
// of each bot is drawn at random for every game. Stops early (with the
// context's error) when ctx is cancelled.
func (va *VersusArena) Run(ctx context.Context, listener ListenerLike) (VersusSummaryInfo, error) {
	if listener == nil {
		listener = DefaultListener{}
	}
	va.VersusArenaStats = VersusArenaStats{}

	g, ctx := errgroup.WithContext(ctx)
	nGames := va.NGames / va.NThreads
	rest := va.NGames % va.NThreads
	for i := range va.NThreads {
		n := nGames
		if i < rest {
			n++
		}
		g.Go(func() error {
			return va.worker(ctx, i, n, listener)
		})
	}
	err := g.Wait()

	summary := VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Workers:          va.NThreads,
		P1Name:           va.Player1().Name(),
		P2Name:           va.Player2().Name(),
	}
	if err != nil {
		va.logger.Warn("arena stopped", zap.Error(err), zap.Int("finished", summary.TotalGames))
		return summary, err
	}

	listener.Summary(summary)
	return summary, nil
}

func (va *VersusArena) worker(ctx context.Context, id, nGames int, listener ListenerLike) error {
	r := rand.New(rand.NewSource(minimax.SeedGeneratorFn() + int64(id)))
	p1, p2 := va.Player1(), va.Player2()
	local := VersusArenaStats{}

	for i := range nGames {
		p1WentFirst := r.Intn(2) == 0
		first, second := p1, p2
		if !p1WentFirst {
			first, second = p2, p1
		}

		info := VersusWorkerInfo{
			WorkerID:      id,
			GameID:        uuid.NewString(),
			NGames:        nGames,
			FinishedGames: i,
			P1WentFirst:   p1WentFirst,
			P1Name:        p1.Name(),
			P2Name:        p2.Name(),
		}
		outcome, err := playGame(ctx, first, second, va.Position.Clone(), &info, listener)
		if err != nil {
			return fmt.Errorf("worker %d, game %s: %w", id, info.GameID, err)
		}

		info.Result = toAgentResult(outcome, p1WentFirst)
		info.FinishedGames = i + 1
		va.add(info.Result, outcome)
		local.add(info.Result, outcome)
		info.P1Wins, info.P2Wins, info.Draws = local.P1Wins(), local.P2Wins(), local.Draws()

		va.logger.Debug("game finished",
			zap.String("game_id", info.GameID),
			zap.Int("worker", id),
			zap.Int("moves", info.GameMoveNum),
			zap.Int("result", int(info.Result)),
		)
		listener.OnFinishedGame(info)
	}

	listener.OnFinishedWork(VersusWorkerInfo{
		WorkerID:      id,
		NGames:        nGames,
		FinishedGames: nGames,
		P1Wins:        local.P1Wins(),
		P2Wins:        local.P2Wins(),
		Draws:         local.Draws(),
		P1Name:        p1.Name(),
		P2Name:        p2.Name(),
	})
	return nil
}

// Play one game from gamePos, first moves in the starting position
func playGame(ctx context.Context, first, second bot.Bot, gamePos *uttt.State,
	info *VersusWorkerInfo, listener ListenerLike,
) (GameOutcome, error) {
	info.Moves = make([]uttt.Move, 0, 81)
	players := [2]bot.Bot{first, second}
	firstSide := gamePos.Turn()

	for turn := 0; !gamePos.IsTerminated(); turn++ {
		if err := ctx.Err(); err != nil {
			return GameOutcome{}, err
		}

		b := players[turn%2]
		m, ok, err := bot.SelectMove(ctx, b, gamePos)
		if err != nil {
			return GameOutcome{}, fmt.Errorf("%s: %w", b.Name(), err)
		}
		if !ok {
			return GameOutcome{}, fmt.Errorf("%w: %s in %s", ErrNoMove, b.Name(), gamePos.Notation())
		}
		if err := gamePos.MakeMove(m); err != nil {
			return GameOutcome{}, fmt.Errorf("%s: %w", b.Name(), err)
		}

		info.Moves = append(info.Moves, m)
		info.GameMoveNum = len(info.Moves)
		listener.OnMoveMade(*info)
	}

	outcome := computeOutcome(gamePos)
	// Starting positions with circle to move swap the sides
	if firstSide == uttt.PlayerCircle && !outcome.IsDraw {
		outcome.FirstPlayerWon = !outcome.FirstPlayerWon
	}
	return outcome, nil
}
