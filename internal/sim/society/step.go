package society

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/agent"
)

// Step advances the society by one tick:
//
//  1. every agent that is not dead resolves its tick concurrently;
//  2. all of them are joined;
//  3. each resolved action is logged to its targets;
//  4. areas recount occupants, collect events and refresh summaries concurrently;
//  5. the clock advances.
//
// Classification failures degrade to Wait inside step 1 and are never returned.
//
// Precondition: ctx is not already done.
// Postcondition: Returns one Action per agent that was not dead when the tick
// started, in registry order, or ctx's error without touching any state.
func (s *Society) Step(ctx context.Context) ([]action.Action, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	now := s.clock.Now()
	narrative := s.Narrative()
	world := s.worldInfo(now, narrative)

	areaInfo := make(map[string]string)
	for _, a := range s.location.Areas() {
		areaInfo[a.ID] = a.Info()
	}

	live := s.agents.Live()
	actions := make([]action.Action, len(live))
	g := new(errgroup.Group)
	if s.cfg.MaxConcurrency > 0 {
		g.SetLimit(s.cfg.MaxConcurrency)
	}
	for i, a := range live {
		info := areaInfo[a.Area]
		g.Go(func() error {
			actions[i] = s.resolve(ctx, a, world, info, now)
			return nil
		})
	}
	_ = g.Wait()

	for _, act := range actions {
		if act.Ongoing {
			continue
		}
		for _, r := range act.Recipients() {
			r.History.Append(act.Log(r))
		}
	}

	failed := s.location.Update(ctx, s.agents.All(), actions, s.oracle, narrative, s.logger)
	s.clock.Tick()

	s.logger.Info("tick",
		zap.String("time", now),
		zap.Int("actions", len(actions)),
		zap.Int("summary_failures", failed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return actions, nil
}

// resolve produces the agent's action for the tick and applies it. Only a's
// own state is written.
func (s *Society) resolve(ctx context.Context, a *agent.Agent, world, areaInfo, now string) action.Action {
	if a.Status.Busy() {
		sleeping := a.Status == agent.Sleeping
		if a.Advance() && sleeping && s.cfg.Satiation {
			a.Sleepiness = 0
		}
		return action.NewOngoing(a, now)
	}

	var act action.Action
	switch {
	case a.Starving():
		act = action.NewDead(a, now)
	case a.Exhausted():
		act = action.NewSleep(a, now, true, s.dice)
	default:
		act = s.decide(ctx, a, world, areaInfo, now)
	}
	s.apply(a, act)
	return act
}

// decide asks the oracle for a decision and classifies it, degrading to Wait
// on any failure. Reasoning is kept only for classified decisions.
func (s *Society) decide(ctx context.Context, a *agent.Agent, world, areaInfo, now string) action.Action {
	d, err := a.Decide(ctx, s.oracle, world, areaInfo, s.cfg.HistoryWindow)
	if err == nil {
		var act action.Action
		act, err = s.Classify(ctx, a, d.Action, areaInfo, now)
		if err == nil {
			a.Thinking = d.Thinking
			return act
		}
	}
	s.logger.Warn("decision degraded to wait",
		zap.String("agent", a.ID),
		zap.String("kind", d.Action.Type),
		zap.Error(err),
	)
	return action.NewWait(a, now)
}

// apply imposes act on its actor and records the actor's own log line.
func (s *Society) apply(a *agent.Agent, act action.Action) {
	switch act.Kind {
	case action.Eat:
		if s.cfg.Satiation {
			a.Hunger = 0
		}
	case action.Move:
		a.Destination = act.Destination
	}
	a.Begin(act.Status, act.Duration, act.Fatigue, act.Effort)
	if act.Kind == action.Sleep && act.Faint {
		a.Sleepiness = 0
	}
	a.History.Append(act.Log(a))
}
