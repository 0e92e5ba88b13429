package action_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/society/internal/oracle"
	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/agent"
	"github.com/cory-johannsen/society/internal/sim/clock"
	"github.com/cory-johannsen/society/internal/sim/dice"
)

const now = "Day 1 07:00"

func people() (hana, ken, rio *agent.Agent) {
	mk := func(id, name string) *agent.Agent {
		return agent.New(id, agent.Profile{Name: name, Job: "j"}, "area_00", 8)
	}
	return mk("agent_000", "Hana"), mk("agent_001", "Ken"), mk("agent_002", "Rio")
}

func TestParseKind(t *testing.T) {
	for tag, want := range map[string]action.Kind{
		"talk": action.Talk, "EAT": action.Eat, " sleep ": action.Sleep,
		"move": action.Move, "other": action.Other,
	} {
		got, err := action.ParseKind(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}
	for _, tag := range []string{"", "dance", "wait", "dead"} {
		_, err := action.ParseKind(tag)
		assert.ErrorIs(t, err, action.ErrUnknownKind, tag)
	}
	assert.Equal(t, "move", action.Move.String())
	assert.Equal(t, "unknown", action.Kind(99).String())
}

func TestCostsAndStatuses(t *testing.T) {
	hana, ken, _ := people()

	dead := action.NewDead(hana, now)
	assert.Equal(t, agent.Dead, dead.Status)
	assert.Zero(t, dead.Duration)
	assert.Zero(t, dead.Fatigue)
	assert.Zero(t, dead.Effort)

	wait := action.NewWait(hana, now)
	assert.Equal(t, agent.Actable, wait.Status)
	assert.Equal(t, 1, wait.Duration)
	assert.Equal(t, 1, wait.Fatigue)
	assert.Equal(t, 1, wait.Effort)

	talk, err := action.NewTalk(hana, []*agent.Agent{ken}, now, "hi")
	require.NoError(t, err)
	assert.Equal(t, agent.Acting, talk.Status)
	assert.Equal(t, 1, talk.Duration)

	eat, err := action.NewEat(hana, now, []string{"rice"})
	require.NoError(t, err)
	assert.Equal(t, 3, eat.Duration)
	assert.Equal(t, 1, eat.Effort)

	move := action.NewMove(hana, now, 4, "area_01", "Harbor (area_01)", "")
	assert.Equal(t, agent.Moving, move.Status)
	assert.Equal(t, 4, move.Duration)

	other := action.NewOther(hana, nil, now, 0, "{actor} stretched.")
	assert.Equal(t, 1, other.Duration, "other actions last at least one tick")
	assert.Equal(t, agent.Acting, other.Status)
}

func TestNewOngoing_ReportsCurrentStatus(t *testing.T) {
	hana, _, _ := people()
	hana.Status = agent.Sleeping
	a := action.NewOngoing(hana, now)
	assert.True(t, a.Ongoing)
	assert.Equal(t, action.Wait, a.Kind)
	assert.Equal(t, agent.Sleeping, a.Status)
}

func TestNewTalk_MissingFields(t *testing.T) {
	hana, ken, _ := people()
	_, err := action.NewTalk(hana, nil, now, "hello")
	assert.ErrorIs(t, err, action.ErrMissingField)
	_, err = action.NewTalk(hana, []*agent.Agent{ken}, now, `""`)
	assert.ErrorIs(t, err, action.ErrMissingField)
}

func TestNewTalk_StripsQuotes(t *testing.T) {
	hana, ken, _ := people()
	a, err := action.NewTalk(hana, []*agent.Agent{ken}, now, `"Good morning!"`)
	require.NoError(t, err)
	assert.Equal(t, "Good morning!", a.Content)
}

func TestNewEat_MissingFood(t *testing.T) {
	hana, _, _ := people()
	_, err := action.NewEat(hana, now, nil)
	assert.ErrorIs(t, err, action.ErrMissingField)
	_, err = action.NewEat(hana, now, []string{" "})
	assert.ErrorIs(t, err, action.ErrMissingField)
}

func TestNewSleep_DurationBounds(t *testing.T) {
	hana, _, _ := people()
	lo := action.NewSleep(hana, now, false, &dice.Fixed{Values: []int{0}})
	assert.Equal(t, clock.Hours(5), lo.Duration)
	hi := action.NewSleep(hana, now, true, &dice.Fixed{Values: []int{clock.Hours(3)}})
	assert.Equal(t, clock.Hours(8), hi.Duration)
	assert.True(t, hi.Faint)
}

func TestProperty_SleepWithinBounds(t *testing.T) {
	hana, _, _ := people()
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.IntRange(0, 1000).Draw(rt, "roll")
		a := action.NewSleep(hana, now, false, &dice.Fixed{Values: []int{v}})
		assert.GreaterOrEqual(rt, a.Duration, 30)
		assert.LessOrEqual(rt, a.Duration, 48)
	})
}

func TestLog_ViewerPerspective(t *testing.T) {
	hana, ken, rio := people()
	talk, err := action.NewTalk(hana, []*agent.Agent{ken, rio}, now, "Lunch?")
	require.NoError(t, err)

	assert.Equal(t, "■ Day 1 07:00\nYou spoke to Ken (agent_001), Rio (agent_002).\n\"Lunch?\"", talk.Log(hana))
	assert.Equal(t, "■ Day 1 07:00\nHana (agent_000) spoke to you.\n\"Lunch?\"", talk.Log(ken))
	assert.Equal(t, "■ Day 1 07:00\nHana (agent_000) spoke to you.\n\"Lunch?\"", talk.Log(rio))
	assert.Equal(t, "■ Day 1 07:00\nHana (agent_000) spoke to Ken (agent_001), Rio (agent_002).\n\"Lunch?\"", talk.Log(nil))
}

func TestLog_Kinds(t *testing.T) {
	hana, ken, _ := people()
	eat, _ := action.NewEat(hana, now, []string{"bread", "milk"})
	for _, tc := range []struct {
		a    action.Action
		want string
	}{
		{action.NewDead(hana, now), "You passed away."},
		{action.NewWait(hana, now), "You did nothing."},
		{eat, "You ate bread, milk."},
		{action.NewSleep(hana, now, false, &dice.Fixed{}), "You fell asleep."},
		{action.NewSleep(hana, now, true, &dice.Fixed{}), "You fainted from accumulated fatigue."},
		{action.NewMove(hana, now, 2, "area_01", "Harbor (area_01)", ""), "You moved to Harbor (area_01)."},
		{action.NewMove(hana, now, 2, "area_01", "Harbor (area_01)", "bicycle"), "You moved to Harbor (area_01) by bicycle."},
		{action.NewOther(hana, []*agent.Agent{ken}, now, 3, "{actor} threw a ball at {target}."), "You threw a ball at Ken (agent_001)."},
	} {
		assert.Equal(t, tc.want, tc.a.Sentence(hana))
		assert.True(t, strings.HasPrefix(tc.a.Log(hana), "■ Day 1 07:00\n"))
	}
}

func TestRecipients_DistinctExcludingActor(t *testing.T) {
	hana, ken, rio := people()
	talk, err := action.NewTalk(hana, []*agent.Agent{ken, hana, rio, ken}, now, "hey")
	require.NoError(t, err)
	got := talk.Recipients()
	require.Len(t, got, 2)
	assert.Same(t, ken, got[0])
	assert.Same(t, rio, got[1])
}

func evaluator(text string, err error) oracle.Oracle {
	return oracle.Func(func(_ context.Context, req oracle.Request) (oracle.Response, error) {
		if err != nil {
			return oracle.Response{}, err
		}
		return oracle.NewResponse(req, text), nil
	})
}

func TestEvaluate_Allowed(t *testing.T) {
	hana, _, _ := people()
	o := evaluator(`{"action": "{actor} swept the shop floor.", "actor": "agent_000", "target": null,
		"duration": "PT40M", "allow": true, "thinking": ["ordinary chore"]}`, nil)

	ev, err := action.Evaluate(context.Background(), o, agent.RawAction{Type: "other", Detail: "sweep"}, hana, "Bakery (area_00)")
	require.NoError(t, err)
	assert.Equal(t, "{actor} swept the shop floor.", ev.Action)
	assert.Equal(t, "PT40M", ev.Duration)
}

func TestEvaluate_Failures(t *testing.T) {
	hana, _, _ := people()
	raw := agent.RawAction{Type: "other", Detail: "fly to the moon"}
	for name, o := range map[string]oracle.Oracle{
		"denied":    evaluator(`{"action": "{actor} flew to the moon.", "actor": "a", "duration": "P1D", "allow": false, "thinking": ["impossible"]}`, nil),
		"malformed": evaluator(`not json at all`, nil),
		"schema":    evaluator(`{"action": "x", "allow": "yes"}`, nil),
		"transport": evaluator("", errors.New("timeout")),
	} {
		_, err := action.Evaluate(context.Background(), o, raw, hana, "")
		assert.ErrorIs(t, err, action.ErrValidation, name)
	}
}

func TestEvaluationRequest_CarriesRawAction(t *testing.T) {
	hana, _, _ := people()
	req, err := action.EvaluationRequest(agent.RawAction{Type: "other", Detail: "paint a mural"}, hana, "Square (area_03)")
	require.NoError(t, err)
	assert.Equal(t, action.EvaluationSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, `"detail":"paint a mural"`)
	assert.Contains(t, req.Messages[0].Content, "Square (area_03)")
	assert.Contains(t, req.Messages[0].Content, hana.Info())
}
