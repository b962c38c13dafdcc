package uttt

type Termination int

const (
	TerminationNone      Termination = 0
	TerminationCircleWon Termination = 1
	TerminationCrossWon  Termination = 2
	TerminationDraw      Termination = 4
)

const _fullBlock uint16 = 0b111111111

// horizontal, vertical and diagonal patterns as bitboards (bit = small index)
var _winningBitboardPatterns = [8]uint16{
	0b111000000, 0b000111000, 0b000000111,
	0b100100100, 0b010010010, 0b001001001,
	0b100010001, 0b001010100,
}

// The same patterns as index triples, used on the macro grid
var _patterns = [8][3]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// For each small index, the patterns passing through it: the row, the column
// and the diagonals when the cell lies on them
var _linesThrough = func() (lines [9][]uint16) {
	for i := range 9 {
		for _, p := range _winningBitboardPatterns {
			if p&(1<<i) != 0 {
				lines[i] = append(lines[i], p)
			}
		}
	}
	return lines
}()

func (t Termination) String() string {
	switch t {
	case TerminationNone:
		return "none"
	case TerminationCircleWon:
		return "o-won"
	case TerminationCrossWon:
		return "x-won"
	case TerminationDraw:
		return "draw"
	}
	return "unknown"
}

func (t Termination) Winner() (Player, bool) {
	switch t {
	case TerminationCrossWon:
		return PlayerCross, true
	case TerminationCircleWon:
		return PlayerCircle, true
	}
	return 0, false
}

// Get the termination of the game, kept up to date by MakeMove and Resolve
func (s *State) Termination() Termination {
	return s.termination
}

// Either player has a macro line, or every block is won or drawn
func (s *State) IsTerminated() bool {
	return s.termination != TerminationNone
}

// Whether placing p's piece on m completes a row, column or diagonal of m's
// block. Only the lines through m are checked, the cell itself is assumed to
// hold p's piece, so this works both before and after the move is made.
func (s *State) CompletesLine(m Move, p Player) bool {
	if !m.IsValid() {
		return false
	}
	si := m.SmallIndex()
	return completesLine(s.bitboards[p][m.BigIndex()]|1<<si, si)
}

func completesLine(bb uint16, smallIndex int) bool {
	for _, pattern := range _linesThrough[smallIndex] {
		if bb&pattern == pattern {
			return true
		}
	}
	return false
}

// Check if given block is terminated, returns false if it's unresolved
func checkBlock(crossbb, circlebb uint16) (BlockStatus, bool) {
	// See if there is any winning patterns
	for _, pattern := range _winningBitboardPatterns {
		if crossbb&pattern == pattern {
			return BlockCrossWon, true
		}
		if circlebb&pattern == pattern {
			return BlockCircleWon, true
		}
	}

	// If not, check if that's a draw (this square is fully filled)
	if crossbb|circlebb == _fullBlock {
		return BlockDrawn, true
	}
	return BlockAvailable, false
}

// Result of a single 3x3 board, indexed [row][col]; false if it's unresolved
func LocalResult(cells [3][3]PieceType) (BlockStatus, bool) {
	var crossbb, circlebb uint16
	for i := range 9 {
		switch cells[i/3][i%3] {
		case PieceCross:
			crossbb |= 1 << i
		case PieceCircle:
			circlebb |= 1 << i
		}
	}
	return checkBlock(crossbb, circlebb)
}

// Result of the macro grid. Only won blocks count as a player's mark, the
// game is a draw when every block is terminal and no line exists.
func MacroResult(grid [3][3]BlockStatus) Termination {
	var flat [9]BlockStatus
	for i := range flat {
		flat[i] = grid[i/3][i%3]
	}
	return macroResult(&flat)
}

func macroResult(macro *[9]BlockStatus) Termination {
	for i := range _patterns {
		v := macro[_patterns[i][0]]
		if v == macro[_patterns[i][1]] && v == macro[_patterns[i][2]] {
			if v == BlockCrossWon {
				return TerminationCrossWon
			}
			if v == BlockCircleWon {
				return TerminationCircleWon
			}
		}
	}

	for _, st := range macro {
		if !st.IsTerminal() {
			return TerminationNone
		}
	}
	return TerminationDraw
}

func (s *State) checkTermination() {
	s.termination = macroResult(&s.macro)
}
