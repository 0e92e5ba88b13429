package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cory-johannsen/society/internal/oracle"
)

// StringList accepts either a single JSON string or an array of strings.
// An empty string or null yields an empty list.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*l = nil
		} else {
			*l = StringList{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("want a string or an array of strings: %w", err)
	}
	*l = many
	return nil
}

// Join renders the list separated by ", ".
func (l StringList) Join() string {
	return strings.Join(l, ", ")
}

// RawAction is the unvalidated action record authored by the oracle. Which
// fields are required depends on Type.
type RawAction struct {
	Type        string     `json:"type"`
	Target      StringList `json:"target,omitempty"`
	Content     string     `json:"content,omitempty"`
	Food        StringList `json:"food,omitempty"`
	Destination string     `json:"destination,omitempty"`
	Means       string     `json:"means,omitempty"`
	Detail      string     `json:"detail,omitempty"`
}

// Decision is the oracle's answer to a decision request.
type Decision struct {
	Thinking string    `json:"thinking"`
	Action   RawAction `json:"action"`
}

// DecisionSchema describes the decision record. Per-kind requirements are
// checked during classification so that each failure keeps its own kind.
var DecisionSchema = oracle.MustSchema("decision", `{
	"type": "object",
	"properties": {
		"thinking": {"type": "string"},
		"action": {
			"type": "object",
			"properties": {
				"type": {"type": "string"},
				"target": {"type": ["string", "array", "null"], "items": {"type": "string"}},
				"content": {"type": "string"},
				"food": {"type": ["string", "array"], "items": {"type": "string"}},
				"destination": {"type": "string"},
				"means": {"type": ["string", "null"]},
				"detail": {"type": "string"}
			},
			"required": ["type"]
		}
	},
	"required": ["thinking", "action"]
}`)

const decisionInstruction = `You live an ordinary life in a small town.
Weigh all of the information below and organise your thoughts and intentions.
Then declare exactly one next action. There are five kinds of action:
- Talk to other agents ("type": "talk")
  - "target": the id of the agent to talk to (several allowed)
  - "content": what you say
- Eat ("type": "eat")
  - "food": what you eat or drink
- Sleep ("type": "sleep")
  - no arguments
- Move to another area ("type": "move")
  - "destination": the id of the destination area
  - "means": how you travel (optional)
- Anything else ("type": "other")
  - "target": id of the target (optional)
  - "detail": what you do, in as much detail as possible
Answer with {"thinking": (your thoughts and intentions), "action": {"type": (kind), ...}}.`

// DecisionRequest builds the oracle request for the agent's next decision.
func (a *Agent) DecisionRequest(worldInfo, areaInfo string, window int) oracle.Request {
	message := fmt.Sprintf("## World\n%s\n## Surroundings\n%s\n## About you\n%s", worldInfo, areaInfo, a.Persona(window))
	return oracle.Request{
		System:   decisionInstruction,
		Messages: oracle.Text(message),
		Schema:   DecisionSchema,
	}
}

// Decide asks o for the agent's next decision. The agent is not modified.
//
// Precondition: o must be non-nil.
// Postcondition: Returns the decoded Decision, or an error; undecodable output
// wraps oracle.ErrDecode.
func (a *Agent) Decide(ctx context.Context, o oracle.Oracle, worldInfo, areaInfo string, window int) (Decision, error) {
	resp, err := o.Generate(ctx, a.DecisionRequest(worldInfo, areaInfo, window))
	if err != nil {
		return Decision{}, fmt.Errorf("requesting decision for %s: %w", a.ID, err)
	}
	var d Decision
	if err := resp.Decode(&d); err != nil {
		return Decision{}, fmt.Errorf("decoding decision for %s: %w", a.ID, err)
	}
	return d, nil
}
