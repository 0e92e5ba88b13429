package society

import (
	"context"
	"time"

	"github.com/cory-johannsen/society/internal/sim/action"
)

// TickFunc observes the actions of one completed tick. label is the clock
// label the tick was resolved at.
type TickFunc func(label string, actions []action.Action)

// Runner steps a Society a fixed number of times, optionally paced in real time.
type Runner struct {
	society  *Society
	interval time.Duration
	onTick   TickFunc
}

// NewRunner creates a Runner. An interval of zero runs ticks back to back; a
// nil onTick is ignored.
//
// Precondition: s must be non-nil; interval >= 0.
func NewRunner(s *Society, interval time.Duration, onTick TickFunc) *Runner {
	if onTick == nil {
		onTick = func(string, []action.Action) {}
	}
	return &Runner{society: s, interval: interval, onTick: onTick}
}

// Run advances the society by ticks steps or until ctx is done.
//
// Postcondition: Returns the number of completed ticks and ctx's error if it
// stopped early.
func (r *Runner) Run(ctx context.Context, ticks int) (int, error) {
	var pace <-chan time.Time
	if r.interval > 0 {
		ticker := time.NewTicker(r.interval)
		defer ticker.Stop()
		pace = ticker.C
	}
	for done := 0; done < ticks; done++ {
		if done > 0 && pace != nil {
			select {
			case <-pace:
			case <-ctx.Done():
				return done, ctx.Err()
			}
		}
		label := r.society.Clock().Now()
		actions, err := r.society.Step(ctx)
		if err != nil {
			return done, err
		}
		r.onTick(label, actions)
	}
	return ticks, nil
}
