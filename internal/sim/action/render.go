package action

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/society/internal/sim/agent"
)

// Header renders the per-tick log header for a clock label.
func Header(time string) string {
	return "■ " + time + "\n"
}

// Log renders the action as seen by viewer. A nil viewer is a bystander.
//
// Postcondition: The actor appears as "You" and a targeted viewer as "you";
// everyone else is shown as "Name (id)".
func (a Action) Log(viewer *agent.Agent) string {
	return Header(a.Time) + a.Sentence(viewer)
}

// Sentence renders the action without its header.
func (a Action) Sentence(viewer *agent.Agent) string {
	actor := a.Actor.NameWithID()
	if viewer != nil && viewer == a.Actor {
		actor = "You"
	}
	target := a.targetRef(viewer)

	switch a.Kind {
	case Dead:
		return actor + " passed away."
	case Wait:
		return actor + " did nothing."
	case Talk:
		return fmt.Sprintf("%s spoke to %s.\n\"%s\"", actor, target, a.Content)
	case Eat:
		return fmt.Sprintf("%s ate %s.", actor, strings.Join(a.Food, ", "))
	case Sleep:
		if a.Faint {
			return actor + " fainted from accumulated fatigue."
		}
		return actor + " fell asleep."
	case Move:
		if a.Means == "" {
			return fmt.Sprintf("%s moved to %s.", actor, a.Place)
		}
		return fmt.Sprintf("%s moved to %s by %s.", actor, a.Place, a.Means)
	case Other:
		return strings.NewReplacer("{actor}", actor, "{target}", target).Replace(a.Template)
	}
	return actor + " did something indescribable."
}

func (a Action) targetRef(viewer *agent.Agent) string {
	names := make([]string, 0, len(a.Target))
	for _, t := range a.Target {
		if viewer != nil && t == viewer {
			return "you"
		}
		names = append(names, t.NameWithID())
	}
	return strings.Join(names, ", ")
}

// Recipients returns each distinct target other than the actor, in order of
// first appearance.
func (a Action) Recipients() []*agent.Agent {
	seen := make(map[*agent.Agent]bool, len(a.Target))
	var out []*agent.Agent
	for _, t := range a.Target {
		if t == a.Actor || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
