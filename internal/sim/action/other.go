package action

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cory-johannsen/society/internal/oracle"
	"github.com/cory-johannsen/society/internal/sim/agent"
)

// Evaluation is the supervisor's structured verdict on a free-form action.
type Evaluation struct {
	// Action is a one-sentence template using {actor} and {target}.
	Action string           `json:"action"`
	Actor  string           `json:"actor"`
	Target agent.StringList `json:"target"`
	// Duration is an ISO-style duration expression such as PT1H30M.
	Duration string   `json:"duration"`
	Allow    bool     `json:"allow"`
	Thinking []string `json:"thinking"`
}

// EvaluationSchema describes an Evaluation.
var EvaluationSchema = oracle.MustSchema("other_evaluation", `{
	"type": "object",
	"properties": {
		"action": {"type": "string", "minLength": 1},
		"actor": {"type": "string"},
		"target": {"type": ["string", "array", "null"], "items": {"type": "string"}},
		"duration": {"type": "string"},
		"allow": {"type": "boolean"},
		"thinking": {"type": "array", "items": {"type": "string"}}
	},
	"required": ["action", "actor", "duration", "allow", "thinking"]
}`)

const evaluationInstruction = `You supervise a social simulation experiment run with AI agents.
Observe the agent's action and output it in structured form, including your reasoning.
Follow these steps.
1. Extract the action
  - Describe it as concisely as possible in about one sentence. Avoid compound actions.
  - Write the acting agent as {actor} and the target of the action as {target}.
  - Example: {actor} threw a ball at {target}.
2. Estimate how long it takes
  - Use ISO 8601 duration form (for example PT1H30M). The smallest unit is PT10M.
  - Guide: a meal takes PT30M, exercise takes PT1H.
3. Judge whether the action breaks the rules
  - The goal is to reject actions that go beyond the framework of the simulation and would break the experiment.
  - Examples to reject: flying to space in a rocket, naming agents or areas that do not exist.
  - Distinguish this from unethical actions. Stealing from others or even taking a life does not stop the simulation; allow those.`

// EvaluationRequest builds the oracle request that validates raw.
func EvaluationRequest(raw agent.RawAction, actor *agent.Agent, areaInfo string) (oracle.Request, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return oracle.Request{}, fmt.Errorf("encoding raw action: %w", err)
	}
	message := fmt.Sprintf("## Agent\n%s\n## Area\n%s\n## Action\n%s", actor.Info(), areaInfo, payload)
	return oracle.Request{
		System:   evaluationInstruction,
		Messages: oracle.Text(message),
		Schema:   EvaluationSchema,
	}, nil
}

// Evaluate asks o to normalise and judge a free-form action.
//
// Precondition: raw.Detail is non-empty; o must be non-nil.
// Postcondition: Returns an allowed Evaluation, or an error wrapping
// ErrValidation on denial, transport failure or malformed output.
func Evaluate(ctx context.Context, o oracle.Oracle, raw agent.RawAction, actor *agent.Agent, areaInfo string) (Evaluation, error) {
	req, err := EvaluationRequest(raw, actor, areaInfo)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	resp, err := o.Generate(ctx, req)
	if err != nil {
		return Evaluation{}, fmt.Errorf("%w: evaluating other action: %w", ErrValidation, err)
	}
	var ev Evaluation
	if err := resp.Decode(&ev); err != nil {
		return Evaluation{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if !ev.Allow {
		return Evaluation{}, fmt.Errorf("%w: denied %q: %s", ErrValidation, ev.Action, strings.Join(ev.Thinking, " "))
	}
	return ev, nil
}
