package bot

import (
	"math/rand"

	"github.com/IlikeChooros/go-uttt/pkg/uttt"
)

// Plays a uniformly random legal move
type Random struct {
	rand *rand.Rand
}

func NewRandom(opts ...Option) *Random {
	return &Random{rand: newOptions(opts).rand}
}

func (b *Random) Name() string {
	return "random"
}

func (b *Random) SelectMove(s *uttt.State) (uttt.Move, bool) {
	moves := s.Moves()
	if len(moves) == 0 {
		return uttt.MoveNone, false
	}
	return moves[b.rand.Intn(len(moves))], true
}
