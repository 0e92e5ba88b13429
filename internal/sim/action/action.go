// Package action defines the closed set of behaviours an agent can resolve to
// in one tick, with their costs, durations and log rendering.
package action

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/society/internal/sim/agent"
	"github.com/cory-johannsen/society/internal/sim/clock"
	"github.com/cory-johannsen/society/internal/sim/dice"
)

// Kind discriminates the Action variants.
type Kind int

const (
	Dead Kind = iota
	Wait
	Talk
	Eat
	Sleep
	Move
	Other
)

var kindNames = [...]string{
	Dead:  "dead",
	Wait:  "wait",
	Talk:  "talk",
	Eat:   "eat",
	Sleep: "sleep",
	Move:  "move",
	Other: "other",
}

// String returns the wire tag of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind maps a decision tag to a Kind. Only the five decidable kinds are
// accepted; dead and wait are never chosen by the oracle.
func ParseKind(tag string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "talk":
		return Talk, nil
	case "eat":
		return Eat, nil
	case "sleep":
		return Sleep, nil
	case "move":
		return Move, nil
	case "other":
		return Other, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, tag)
}

var (
	// EatDuration is the fixed length of a meal.
	EatDuration = clock.MustCalc(0, 0, 30)
	// MinSleep and MaxSleep bound a sampled sleep length.
	MinSleep = clock.Hours(5)
	MaxSleep = clock.Hours(8)
)

// Action is one resolved behaviour of one agent in one tick. Only the payload
// fields of its Kind are meaningful.
type Action struct {
	Kind  Kind
	Actor *agent.Agent
	// Target lists the agents acted upon in instruction order; duplicates are kept.
	Target []*agent.Agent
	// Time is the clock label of the tick the action was resolved in.
	Time string
	// Duration is the activity length in ticks.
	Duration int
	// Status is imposed on the actor when the action is applied.
	Status agent.Status
	// Fatigue is added to sleepiness and Effort to hunger when applied.
	Fatigue int
	Effort  int
	// Ongoing marks the placeholder produced for a busy agent. Ongoing actions
	// are never applied, logged or aggregated.
	Ongoing bool

	Content     string   // Talk
	Food        []string // Eat
	Faint       bool     // Sleep
	Destination string   // Move: area id
	Place       string   // Move: rendered destination
	Means       string   // Move: optional
	Template    string   // Other: sentence with {actor} and {target}
}

// NewDead is the terminal action of a starving agent.
func NewDead(actor *agent.Agent, time string) Action {
	return Action{Kind: Dead, Actor: actor, Time: time, Status: agent.Dead}
}

// NewWait is the no-op action; every classification failure degrades to it.
// Like every other living tick it costs one unit of each need.
func NewWait(actor *agent.Agent, time string) Action {
	return Action{Kind: Wait, Actor: actor, Time: time, Duration: 1, Status: agent.Actable, Fatigue: 1, Effort: 1}
}

// NewOngoing is the placeholder for an agent that spent the tick busy. It
// reports the actor's status after bookkeeping.
func NewOngoing(actor *agent.Agent, time string) Action {
	a := NewWait(actor, time)
	a.Ongoing = true
	a.Status = actor.Status
	return a
}

// NewTalk builds a conversation line addressed to targets. Quote marks are
// stripped from content.
//
// Postcondition: Returns an error wrapping ErrMissingField if targets or content are empty.
func NewTalk(actor *agent.Agent, targets []*agent.Agent, time, content string) (Action, error) {
	if len(targets) == 0 {
		return Action{}, fmt.Errorf("%w: talk target", ErrMissingField)
	}
	content = strings.NewReplacer(`"`, "", "“", "", "”", "", "「", "", "」", "").Replace(content)
	content = strings.TrimSpace(content)
	if content == "" {
		return Action{}, fmt.Errorf("%w: talk content", ErrMissingField)
	}
	return Action{
		Kind: Talk, Actor: actor, Target: targets, Time: time,
		Duration: 1, Status: agent.Acting, Fatigue: 1, Effort: 1,
		Content: content,
	}, nil
}

// NewEat builds a meal of the given food items.
//
// Postcondition: Returns an error wrapping ErrMissingField if food is empty.
func NewEat(actor *agent.Agent, time string, food []string) (Action, error) {
	var items []string
	for _, f := range food {
		if f = strings.TrimSpace(f); f != "" {
			items = append(items, f)
		}
	}
	if len(items) == 0 {
		return Action{}, fmt.Errorf("%w: eat food", ErrMissingField)
	}
	return Action{
		Kind: Eat, Actor: actor, Time: time,
		Duration: EatDuration, Status: agent.Acting, Fatigue: 1, Effort: 1,
		Food: items,
	}, nil
}

// NewSleep builds a sleep of random length in [MinSleep, MaxSleep]. A faint is
// an involuntary sleep forced by exhaustion.
//
// Precondition: src must be non-nil.
func NewSleep(actor *agent.Agent, time string, faint bool, src dice.Source) Action {
	return Action{
		Kind: Sleep, Actor: actor, Time: time,
		Duration: dice.Between(src, MinSleep, MaxSleep), Status: agent.Sleeping, Fatigue: 1, Effort: 1,
		Faint: faint,
	}
}

// NewMove builds a trip to destination lasting duration ticks. place is the
// destination as shown in logs.
//
// Precondition: duration >= 0.
func NewMove(actor *agent.Agent, time string, duration int, destination, place, means string) Action {
	return Action{
		Kind: Move, Actor: actor, Time: time,
		Duration: duration, Status: agent.Moving, Fatigue: 1, Effort: 1,
		Destination: destination, Place: place, Means: strings.TrimSpace(means),
	}
}

// NewOther builds a free-form action from an approved template. Durations
// shorter than one tick are raised to one.
func NewOther(actor *agent.Agent, targets []*agent.Agent, time string, duration int, template string) Action {
	if duration < 1 {
		duration = 1
	}
	return Action{
		Kind: Other, Actor: actor, Target: targets, Time: time,
		Duration: duration, Status: agent.Acting, Fatigue: 1, Effort: 1,
		Template: template,
	}
}
