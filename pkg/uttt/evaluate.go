package uttt

// Terminal scores. Any heuristic value stays far below WinScore, so a win
// adjusted by the remaining depth never collides with a heuristic score.
const (
	WinScore  = 1_000_000
	DrawScore = 0
)

// Weights of the heuristic evaluation
type Weights struct {
	Piece int // every piece on the board, plus its positional bonus
	Block int // every won block, plus the block's positional bonus
}

func DefaultWeights() Weights {
	return Weights{Piece: 1, Block: 10}
}

// Score the state from self's perspective using the default weights
func Evaluate(s *State, self Player, depthLeft int) int {
	return DefaultWeights().Evaluate(s, self, depthLeft)
}

// Score the state from self's perspective. Finished games score WinScore
// plus the remaining depth (faster wins and slower losses are preferred),
// draws score DrawScore, anything else the heuristic.
func (w Weights) Evaluate(s *State, self Player, depthLeft int) int {
	switch s.termination {
	case TerminationNone:
		return w.Heuristic(s, self)
	case TerminationDraw:
		return DrawScore
	}

	if winner, _ := s.termination.Winner(); winner == self {
		return WinScore + depthLeft
	}
	return -(WinScore + depthLeft)
}

// Signed material and position difference between self and the opponent
func (w Weights) Heuristic(s *State, self Player) int {
	score := 0
	for x := range 9 {
		for y := range 9 {
			p, ok := s.board[x][y].Player()
			if !ok {
				continue
			}
			v := w.Piece + CellBonus(x, y)
			if p == self {
				score += v
			} else {
				score -= v
			}
		}
	}

	for bi, st := range s.macro {
		p, ok := st.Winner()
		if !ok {
			continue
		}
		v := w.Block + centerBonus(bi/3, bi%3)
		if p == self {
			score += v
		} else {
			score -= v
		}
	}
	return score
}

// Positional bonus of a cell: its centrality inside the block plus the
// centrality of the block on the macro grid. The board center scores highest.
// Replaces the whole-board distance (4-|x-4|)+(4-|y-4|), which favours the
// cells of corner blocks that lie next to the board center.
func CellBonus(x, y int) int {
	return centerBonus(x%3, y%3) + centerBonus(x/3, y/3)
}

// 2 for the center of a 3x3 grid, 1 for the edges, 0 for the corners
func centerBonus(i, j int) int {
	return (1 - abs(i-1)) + (1 - abs(j-1))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
