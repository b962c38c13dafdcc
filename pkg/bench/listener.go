package bench

import (
	"go.uber.org/zap"
)

// Receives the arena progress. Worker callbacks are made from the worker
// goroutines, Summary once all of them are done.
type ListenerLike interface {
	OnMoveMade(info VersusWorkerInfo)
	OnFinishedGame(info VersusWorkerInfo)
	OnFinishedWork(info VersusWorkerInfo)
	Summary(summary VersusSummaryInfo)
}

type DefaultListener struct{}

func (DefaultListener) OnMoveMade(VersusWorkerInfo)     {}
func (DefaultListener) OnFinishedGame(VersusWorkerInfo) {}
func (DefaultListener) OnFinishedWork(VersusWorkerInfo) {}
func (DefaultListener) Summary(VersusSummaryInfo)       {}

// Logs every finished game and the summary
type LogListener struct {
	DefaultListener
	logger *zap.Logger
}

func NewLogListener(logger *zap.Logger) *LogListener {
	return &LogListener{logger: logger}
}

func (l *LogListener) OnFinishedGame(info VersusWorkerInfo) {
	l.logger.Info("game finished",
		zap.String("game_id", info.GameID),
		zap.Int("worker", info.WorkerID),
		zap.Int("moves", info.GameMoveNum),
		zap.Int("result", int(info.Result)),
		zap.Bool("player1_first", info.P1WentFirst),
		zap.Int("finished", info.FinishedGames),
		zap.Int("games", info.NGames),
	)
}

func (l *LogListener) OnFinishedWork(info VersusWorkerInfo) {
	l.logger.Debug("worker finished",
		zap.Int("worker", info.WorkerID),
		zap.Int("player1_wins", info.P1Wins),
		zap.Int("player2_wins", info.P2Wins),
		zap.Int("draws", info.Draws),
	)
}

func (l *LogListener) Summary(summary VersusSummaryInfo) {
	l.logger.Info("arena finished",
		zap.String("player1", summary.P1Name),
		zap.String("player2", summary.P2Name),
		zap.Int("games", summary.TotalGames),
		zap.Int("player1_wins", summary.P1Wins),
		zap.Int("player2_wins", summary.P2Wins),
		zap.Int("draws", summary.Draws),
	)
}
