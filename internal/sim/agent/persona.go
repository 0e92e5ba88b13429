package agent

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/society/internal/sim/clock"
)

// needScale is the counter value shown as 100/100.
var needScale = clock.Hours(20)

// SleepinessBand describes a sleepiness counter qualitatively.
func SleepinessBand(sleepiness int) string {
	switch {
	case sleepiness < clock.Hours(1):
		return "You just woke up."
	case sleepiness < clock.Hours(10):
		return "You do not feel sleepy."
	case sleepiness < clock.Hours(15):
		return "Fatigue is building up and you are getting sleepy."
	default:
		return "Your body is at its limit. You could fall asleep at any moment."
	}
}

// HungerBand describes a hunger counter qualitatively.
func HungerBand(hunger int) string {
	switch {
	case hunger < clock.Hours(6):
		return "Your last meal still satisfies you."
	case hunger < clock.Days(1):
		return "You are getting hungry."
	case hunger < clock.Days(2):
		return "You have not eaten for a long time. It is starting to affect your actions and health."
	case hunger < clock.Days(2)+clock.Hours(12):
		return "You have eaten nothing for almost two days. Your body is weakening."
	default:
		return "Your body will not move. You know you will soon starve to death."
	}
}

// Persona renders the agent's self-description for the oracle: profile, need
// bands, prior reasoning and the most recent window history lines.
func (a *Agent) Persona(window int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### Profile\nName: %s\nJob: %s\nCharacter: %s\nInitiative: %s\nSociability: %s\n",
		a.NameWithID(), a.Job, a.Character, a.Initiative, a.Sociability)

	fmt.Fprintf(&sb, "\n### Sleepiness: %d/100\n%s\n", 100*a.Sleepiness/needScale, SleepinessBand(a.Sleepiness))
	fmt.Fprintf(&sb, "\n### Hunger: %d/100\n%s\n", 100*a.Hunger/needScale, HungerBand(a.Hunger))

	if a.Thinking != "" {
		fmt.Fprintf(&sb, "\n### Reasoning behind your last action\n%s\n", a.Thinking)
	}

	sb.WriteString("\n### Action log\n")
	recent := a.History.Recent(window)
	if len(recent) == 0 {
		sb.WriteString("No information\n")
	}
	for _, line := range recent {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return sb.String()
}
