package society_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/agent"
	"github.com/cory-johannsen/society/internal/sim/clock"
)

var wellFormed = []string{
	decision(`{"type": "sleep"}`),
	decision(`{"type": "eat", "food": "bread"}`),
	decision(`{"type": "talk", "target": "agent_000", "content": "hi"}`),
	decision(`{"type": "move", "destination": "area_02"}`),
}

var malformed = []string{
	decision(`{"type": "juggle"}`),
	decision(`{"type": "talk", "content": "hi"}`),
	decision(`{"type": "talk", "target": "agent_500", "content": "hi"}`),
	decision(`{"type": "move", "destination": "area_55"}`),
	decision(`{"type": "eat", "food": []}`),
	`{"thinking": "no action"}`,
	"garbage",
}

func TestProperty_OneActionPerLiveAgent(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(rt, "agents")
		pool := append(append([]string(nil), wellFormed...), malformed...)
		answers := make(map[string]string, n)
		for i := 0; i < n; i++ {
			answers[agent.ID(i)] = rapid.SampledFrom(pool).Draw(rt, "decision")
		}

		f := newFixture(rt, n, func(id string) string { return answers[id] })
		for _, a := range f.agents {
			a.Status = agent.Status(rapid.IntRange(0, 4).Draw(rt, "status"))
			if a.Status.Busy() {
				a.Timer = rapid.IntRange(1, 5).Draw(rt, "timer")
			}
			a.Hunger = rapid.IntRange(0, clock.Days(3)+2).Draw(rt, "hunger")
			a.Sleepiness = rapid.IntRange(0, clock.Days(1)+2).Draw(rt, "sleepiness")
		}
		live := f.society.Agents().Live()

		actions := f.step(rt)
		require.Len(rt, actions, len(live))
		for i, act := range actions {
			assert.Same(rt, live[i], act.Actor, "one action per live agent, in registry order")
		}
	})
}

func TestProperty_MalformedDecisionAlwaysWaits(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.SampledFrom(malformed).Draw(rt, "decision")
		f := newFixture(rt, 1, func(string) string { return text })
		actions := f.step(rt)
		require.Len(rt, actions, 1)
		wait := actions[0]
		assert.Equal(rt, action.Wait, wait.Kind)
		assert.Equal(rt, 1, wait.Duration)
		assert.Equal(rt, agent.Actable, wait.Status)
		assert.Empty(rt, wait.Target)
		assert.Equal(rt, agent.Actable, f.agents[0].Status)
		assert.Equal(rt, "area_00", f.agents[0].Area)
		assert.Empty(rt, f.agents[0].Destination)
	})
}
