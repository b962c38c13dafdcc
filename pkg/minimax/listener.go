package minimax

// Statistics of a search, passed to the listener and returned in the Result
type Stats[M comparable] struct {
	Depth      int
	Nodes      uint64
	Cutoffs    uint64
	TimeMs     int
	Nps        uint64
	Score      int
	BestMoves  []M
	StopReason StopReason
}

// Score of a single root move. With pruning enabled in a sequential search
// a move worse than the best one so far only gets an upper bound, Exact
// is false then.
type RootMove[M comparable] struct {
	Move  M
	Score int
	Exact bool
}

type ListenerFunc[M comparable] func(Stats[M])
type RootMoveFunc[M comparable] func(RootMove[M])

type Listener[M comparable] struct {
	// called after every root child is searched
	onRootMove RootMoveFunc[M]

	// called once, when the search ends (finished or stopped)
	onStop ListenerFunc[M]
}

func NewListener[M comparable]() Listener[M] {
	return Listener[M]{}
}

// Attach root move callback. In a parallel search it's called from the
// worker goroutines, one call at a time.
func (listener *Listener[M]) OnRootMove(onRootMove RootMoveFunc[M]) *Listener[M] {
	listener.onRootMove = onRootMove
	return listener
}

// Attach 'on search end' callback, makes 'StopReason' available in the stats
func (listener *Listener[M]) OnStop(onStop ListenerFunc[M]) *Listener[M] {
	listener.onStop = onStop
	return listener
}

func (listener *Listener[M]) invokeRootMove(rm RootMove[M]) {
	if listener.onRootMove != nil {
		listener.onRootMove(rm)
	}
}

func (listener *Listener[M]) invokeStop(stats Stats[M]) {
	if listener.onStop != nil {
		listener.onStop(stats)
	}
}
