package minimax

// Game position the engine can search. Play must not modify the receiver,
// it returns the successor position (usually a clone with the move applied).
type Position[M comparable, P any] interface {
	// Legal moves, empty if the game is over
	Moves() []M
	Play(M) (P, error)
	IsTerminated() bool
}

// Scores pos from the perspective of the player to move at the root. depthLeft
// is the remaining search depth, terminal scores should grow with it so the
// fastest win and the slowest loss are preferred. Scores must stay strictly
// between -Infinity and Infinity.
type Evaluator[P any] func(root, pos P, depthLeft int) int

// Outcome of a finished search
type Result[M comparable] struct {
	Move      M   // picked uniformly at random from BestMoves
	Score     int // minimax value of the root
	BestMoves []M // every root move scoring Score, in move generation order
	Stats     Stats[M]
}
