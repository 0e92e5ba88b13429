package society

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/agent"
	"github.com/cory-johannsen/society/internal/sim/clock"
)

// Classify turns a raw decision into exactly one Action, or an error of one
// of the action error kinds. actor is not modified.
//
// Precondition: actor belongs to this society; areaInfo describes its area.
func (s *Society) Classify(ctx context.Context, actor *agent.Agent, raw agent.RawAction, areaInfo, now string) (action.Action, error) {
	kind, err := action.ParseKind(raw.Type)
	if err != nil {
		return action.Action{}, err
	}

	switch kind {
	case action.Talk:
		if len(raw.Target) == 0 {
			return action.Action{}, fmt.Errorf("%w: talk target", action.ErrMissingField)
		}
		targets, err := s.resolveTargets(raw.Target)
		if err != nil {
			return action.Action{}, err
		}
		return action.NewTalk(actor, targets, now, raw.Content)

	case action.Eat:
		return action.NewEat(actor, now, raw.Food)

	case action.Sleep:
		return action.NewSleep(actor, now, false, s.dice), nil

	case action.Move:
		if raw.Destination == "" {
			return action.Action{}, fmt.Errorf("%w: move destination", action.ErrMissingField)
		}
		dest, ok := s.location.Search(raw.Destination)
		if !ok {
			return action.Action{}, fmt.Errorf("%w: destination %q", action.ErrLookup, raw.Destination)
		}
		duration, err := s.location.TravelTime(actor.Area, dest.ID)
		if err != nil {
			return action.Action{}, fmt.Errorf("%w: %w", action.ErrLookup, err)
		}
		return action.NewMove(actor, now, duration, dest.ID, dest.NameWithID(), raw.Means), nil

	case action.Other:
		if raw.Detail == "" {
			return action.Action{}, fmt.Errorf("%w: other detail", action.ErrMissingField)
		}
		targets, err := s.resolveTargets(raw.Target)
		if err != nil {
			return action.Action{}, err
		}
		ev, err := action.Evaluate(ctx, s.oracle, raw, actor, areaInfo)
		if err != nil {
			return action.Action{}, err
		}
		duration, err := clock.Parse(ev.Duration)
		if err != nil {
			return action.Action{}, fmt.Errorf("%w: duration %q: %w", action.ErrValidation, ev.Duration, err)
		}
		if duration == 0 {
			s.logger.Warn("other action duration has no components",
				zap.String("agent", actor.ID),
				zap.String("duration", ev.Duration),
			)
		}
		return action.NewOther(actor, targets, now, duration, ev.Action), nil
	}
	return action.Action{}, fmt.Errorf("%w: %q", action.ErrUnknownKind, raw.Type)
}

func (s *Society) resolveTargets(queries []string) ([]*agent.Agent, error) {
	targets, err := s.agents.Resolve(queries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", action.ErrLookup, err)
	}
	return targets, nil
}
