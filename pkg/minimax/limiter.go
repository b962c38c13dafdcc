package minimax

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

var ErrSearchStopped = errors.New("search stopped")

type StopReason int

const (
	StopNone      StopReason = iota
	StopInterrupt            // context cancelled
	StopMovetime             // time limit reached
)

func (sr StopReason) String() string {
	switch sr {
	case StopNone:
		return "None"
	case StopInterrupt:
		return "Interrupt"
	case StopMovetime:
		return "Movetime"
	}
	return "Unknown"
}

// Shared by every goroutine of one search: counts the nodes and polls the
// stop conditions every checkInterval nodes
type limiter struct {
	start    time.Time
	deadline time.Time // zero if there is no movetime limit
	nodes    atomic.Uint64
	cutoffs  atomic.Uint64
	reason   atomic.Int32
}

func newLimiter(movetime int) *limiter {
	l := &limiter{start: time.Now()}
	if movetime >= 0 {
		l.deadline = l.start.Add(time.Duration(movetime) * time.Millisecond)
	}
	return l
}

// Count a node, returns an error once the search should stop
func (l *limiter) visit(ctx context.Context) error {
	n := l.nodes.Add(1)
	if l.reason.Load() != int32(StopNone) {
		return l.err(ctx)
	}
	if n%checkInterval != 0 {
		return nil
	}
	return l.poll(ctx)
}

// Check the context and the deadline
func (l *limiter) poll(ctx context.Context) error {
	switch {
	case ctx.Err() != nil:
		l.reason.CompareAndSwap(int32(StopNone), int32(StopInterrupt))
	case !l.deadline.IsZero() && !time.Now().Before(l.deadline):
		l.reason.CompareAndSwap(int32(StopNone), int32(StopMovetime))
	default:
		return nil
	}
	return l.err(ctx)
}

func (l *limiter) stopReason() StopReason {
	return StopReason(l.reason.Load())
}

func (l *limiter) err(ctx context.Context) error {
	reason := l.stopReason()
	if reason == StopInterrupt && ctx.Err() != nil {
		return fmt.Errorf("%w: %s: %w", ErrSearchStopped, reason, context.Cause(ctx))
	}
	return fmt.Errorf("%w: %s", ErrSearchStopped, reason)
}

// Elapsed milliseconds, at least 1
func (l *limiter) elapsed() int {
	return max(int(time.Since(l.start).Milliseconds()), 1)
}
