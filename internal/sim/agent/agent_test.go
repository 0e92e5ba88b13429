package agent_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/society/internal/oracle"
	"github.com/cory-johannsen/society/internal/sim/agent"
	"github.com/cory-johannsen/society/internal/sim/clock"
)

func newAgent() *agent.Agent {
	return agent.New("agent_000", agent.Profile{
		Name:        "Hana",
		Job:         "baker",
		Character:   "cheerful",
		Initiative:  "high",
		Sociability: "average",
	}, "area_00", 16)
}

func TestNew_InitialState(t *testing.T) {
	a := newAgent()
	assert.Equal(t, agent.Actable, a.Status)
	assert.Equal(t, clock.Hours(7), a.Hunger)
	assert.Zero(t, a.Sleepiness)
	assert.Zero(t, a.Timer)
	assert.Equal(t, "Hana (agent_000)", a.NameWithID())
	assert.Equal(t, "[baker] Hana (agent_000): actable", a.Info())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "sleeping", agent.Sleeping.String())
	assert.Equal(t, "dead", agent.Dead.String())
	assert.Equal(t, "unknown", agent.Status(42).String())
	assert.True(t, agent.Moving.Busy())
	assert.False(t, agent.Actable.Busy())
	assert.False(t, agent.Dead.Busy())
}

func TestThresholds(t *testing.T) {
	a := newAgent()
	a.Hunger = clock.Days(3) - 1
	assert.False(t, a.Starving())
	a.Hunger++
	assert.True(t, a.Starving())

	a.Sleepiness = clock.Days(1)
	assert.True(t, a.Exhausted())
}

func TestBegin_ChargesCosts(t *testing.T) {
	a := newAgent()
	a.Begin(agent.Acting, 3, 1, 1)
	assert.Equal(t, agent.Acting, a.Status)
	assert.Equal(t, 3, a.Timer)
	assert.Equal(t, 1, a.Sleepiness)
	assert.Equal(t, clock.Hours(7)+1, a.Hunger)
}

func TestAdvance_MovingRelocatesOnArrival(t *testing.T) {
	a := newAgent()
	a.Destination = "area_02"
	a.Begin(agent.Moving, 2, 1, 1)

	assert.False(t, a.Advance())
	assert.Equal(t, "area_00", a.Area)
	assert.Equal(t, agent.Moving, a.Status)

	assert.True(t, a.Advance())
	assert.Equal(t, "area_02", a.Area)
	assert.Empty(t, a.Destination)
	assert.Equal(t, agent.Actable, a.Status)
	assert.Equal(t, 3, a.Sleepiness)
}

func TestAdvance_SleepingKeepsCounting(t *testing.T) {
	a := newAgent()
	a.Sleepiness = clock.Hours(12)
	a.Begin(agent.Sleeping, 1, 1, 1)
	require.True(t, a.Advance())
	assert.Equal(t, clock.Hours(12)+2, a.Sleepiness, "needs only grow")
	assert.Equal(t, agent.Actable, a.Status)
}

func TestNeedBands(t *testing.T) {
	assert.Contains(t, agent.SleepinessBand(0), "woke up")
	assert.Contains(t, agent.SleepinessBand(clock.Hours(5)), "not feel sleepy")
	assert.Contains(t, agent.SleepinessBand(clock.Hours(12)), "getting sleepy")
	assert.Contains(t, agent.SleepinessBand(clock.Hours(15)), "limit")

	assert.Contains(t, agent.HungerBand(clock.Hours(5)), "satisfies")
	assert.Contains(t, agent.HungerBand(clock.Hours(6)), "getting hungry")
	assert.Contains(t, agent.HungerBand(clock.Days(1)), "long time")
	assert.Contains(t, agent.HungerBand(clock.Days(2)), "weakening")
	assert.Contains(t, agent.HungerBand(clock.Days(2)+clock.Hours(12)), "starve")
}

func TestPersona_IncludesRecentWindow(t *testing.T) {
	a := newAgent()
	assert.Contains(t, a.Persona(2), "No information")

	a.History.Append("first", "second", "third")
	a.Thinking = "bread needs baking"
	p := a.Persona(2)
	assert.NotContains(t, p, "first")
	assert.Contains(t, p, "second\nthird")
	assert.Contains(t, p, "bread needs baking")
	assert.Contains(t, p, "Hunger: 35/100")
}

func TestStringList_Unmarshal(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want agent.StringList
	}{
		{`"agent_001"`, agent.StringList{"agent_001"}},
		{`["agent_001", "agent_002"]`, agent.StringList{"agent_001", "agent_002"}},
		{`""`, nil},
		{`null`, nil},
	} {
		var got agent.StringList
		require.NoError(t, json.Unmarshal([]byte(tc.in), &got), tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
	var bad agent.StringList
	assert.Error(t, json.Unmarshal([]byte(`{"a": 1}`), &bad))
	assert.Equal(t, "a, b", agent.StringList{"a", "b"}.Join())
}

func TestDecide_DecodesDecision(t *testing.T) {
	a := newAgent()
	var seen oracle.Request
	o := oracle.Func(func(_ context.Context, req oracle.Request) (oracle.Response, error) {
		seen = req
		return oracle.NewResponse(req, "```json\n"+`{"thinking": "hungry", "action": {"type": "eat", "food": ["bread", "milk"]}}`+"\n```"), nil
	})

	d, err := a.Decide(context.Background(), o, "WORLD", "AREA", 5)
	require.NoError(t, err)
	assert.Equal(t, "hungry", d.Thinking)
	assert.Equal(t, "eat", d.Action.Type)
	assert.Equal(t, agent.StringList{"bread", "milk"}, d.Action.Food)

	assert.Equal(t, agent.DecisionSchema, seen.Schema)
	require.Len(t, seen.Messages, 1)
	assert.True(t, strings.Contains(seen.Messages[0].Content, "WORLD"))
	assert.True(t, strings.Contains(seen.Messages[0].Content, "AREA"))
	assert.Empty(t, a.Thinking, "Decide must not modify the agent")
}

func TestDecide_UndecodableOutput(t *testing.T) {
	a := newAgent()
	o := oracle.Func(func(_ context.Context, req oracle.Request) (oracle.Response, error) {
		return oracle.NewResponse(req, "I would rather not say."), nil
	})
	_, err := a.Decide(context.Background(), o, "", "", 5)
	assert.ErrorIs(t, err, oracle.ErrDecode)

	o = oracle.Func(func(_ context.Context, req oracle.Request) (oracle.Response, error) {
		return oracle.NewResponse(req, `{"action": {"type": "eat"}}`), nil
	})
	_, err = a.Decide(context.Background(), o, "", "", 5)
	assert.ErrorIs(t, err, oracle.ErrDecode, "thinking is required")
}

func TestDecide_OracleError(t *testing.T) {
	boom := errors.New("overloaded")
	o := oracle.Func(func(context.Context, oracle.Request) (oracle.Response, error) {
		return oracle.Response{}, boom
	})
	_, err := newAgent().Decide(context.Background(), o, "", "", 5)
	assert.ErrorIs(t, err, boom)
}
