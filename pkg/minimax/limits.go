package minimax

import (
	"encoding/json"
	"strings"
)

type Limits struct {
	Depth    int
	Movetime int // milliseconds, -1 for no time limit
	NThreads int
	Pruning  bool
}

func (l Limits) String() string {
	builder := strings.Builder{}
	_ = json.NewEncoder(&builder).Encode(l)
	return builder.String()
}

const (
	DefaultDepthLimit    int = 3
	DefaultMovetimeLimit int = -1
)

func DefaultLimits() *Limits {
	return &Limits{
		Depth:    DefaultDepthLimit,
		Movetime: DefaultMovetimeLimit,
		NThreads: 1,
		Pruning:  true,
	}
}

// Set the search depth in plies, at least 1
func (l *Limits) SetDepth(depth int) *Limits {
	l.Depth = max(depth, 1)
	return l
}

// Set the maximum time for engine to think, the search fails with
// ErrSearchStopped when it runs out. Negative values disable the limit.
func (l *Limits) SetMovetime(movetime int) *Limits {
	if movetime < 0 {
		movetime = DefaultMovetimeLimit
	}
	l.Movetime = movetime
	return l
}

// Number of goroutines searching the root children, 1 searches sequentially
func (l *Limits) SetThreads(threads int) *Limits {
	l.NThreads = max(threads, 1)
	return l
}

// Enable or disable alpha-beta cutoffs, without them the search is plain minimax
func (l *Limits) SetPruning(pruning bool) *Limits {
	l.Pruning = pruning
	return l
}
