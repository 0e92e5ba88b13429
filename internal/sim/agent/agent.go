// Package agent holds the simulated inhabitants: their profile, status state
// machine, need counters, history and the decision request sent to the oracle.
package agent

import (
	"fmt"

	"github.com/cory-johannsen/society/internal/sim/clock"
)

var (
	// StarvationThreshold is the hunger at which an agent dies.
	StarvationThreshold = clock.Days(3)
	// ExhaustionThreshold is the sleepiness at which an agent faints.
	ExhaustionThreshold = clock.Days(1)
	// InitialHunger is the hunger every agent starts with.
	InitialHunger = clock.Hours(7)
)

// Profile holds the immutable descriptive fields of an agent.
type Profile struct {
	Name        string `yaml:"name"`
	Job         string `yaml:"job"`
	Character   string `yaml:"character"`
	Initiative  string `yaml:"initiative"`
	Sociability string `yaml:"sociability"`
}

// Agent is one simulated inhabitant.
//
// An Agent is mutated only by the goroutine currently resolving its tick, or
// by the society between phases; it is not safe for concurrent use.
type Agent struct {
	ID string
	Profile

	// Area is the id of the area the agent is in.
	Area string
	// Destination is the pending area id while Moving; empty otherwise.
	Destination string

	Status     Status
	Sleepiness int
	Hunger     int
	// Timer counts the ticks remaining in the current activity.
	Timer int
	// Thinking is the reasoning behind the last classified decision.
	Thinking string

	History *History
}

// New creates an actable agent standing in area.
//
// Precondition: id and area are non-empty; capacity >= 1.
// Postcondition: Hunger is InitialHunger; every other counter is zero.
func New(id string, profile Profile, area string, capacity int) *Agent {
	return &Agent{
		ID:      id,
		Profile: profile,
		Area:    area,
		Status:  Actable,
		Hunger:  InitialHunger,
		History: NewHistory(capacity),
	}
}

// NameWithID renders "Name (id)".
func (a *Agent) NameWithID() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// Info renders the one-line summary used in area listings.
func (a *Agent) Info() string {
	return fmt.Sprintf("[%s] %s: %s", a.Job, a.NameWithID(), a.Status)
}

// Starving reports whether hunger has reached the starvation threshold.
func (a *Agent) Starving() bool { return a.Hunger >= StarvationThreshold }

// Exhausted reports whether sleepiness has reached the exhaustion threshold.
func (a *Agent) Exhausted() bool { return a.Sleepiness >= ExhaustionThreshold }

// Begin starts an activity: the timer is set to duration and both costs are
// charged before the status changes.
//
// Precondition: duration >= 0.
func (a *Agent) Begin(status Status, duration, fatigue, effort int) {
	a.Timer = duration
	a.Sleepiness += fatigue
	a.Hunger += effort
	a.Status = status
}

// Advance performs the bookkeeping of one tick spent busy: both needs grow by
// one and the timer counts down. When the timer runs out a moving agent
// arrives at its destination and the agent becomes actable.
//
// Precondition: a.Status.Busy().
// Postcondition: Returns true iff the activity finished this tick.
func (a *Agent) Advance() bool {
	a.Sleepiness++
	a.Hunger++
	a.Timer--
	if a.Timer > 0 {
		return false
	}
	switch a.Status {
	case Moving:
		if a.Destination != "" {
			a.Area = a.Destination
		}
		a.Destination = ""
	}
	a.Timer = 0
	a.Status = Actable
	return true
}
