package minimax

import (
	"math"
	"time"
)

// Bound of the search window, every evaluation must be strictly inside
const Infinity = math.MaxInt32

// How often (in nodes) the search checks the context and the movetime
const checkInterval = 1024

type SeedGeneratorFnType func() int64

var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for the tie-break random number
// generators, by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
