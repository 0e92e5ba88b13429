package agent

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrUnknownAgent is returned when a query names no registered agent.
var ErrUnknownAgent = errors.New("agent: unknown agent")

var (
	idPattern   = regexp.MustCompile(`agent_\d{3}`)
	canonicalID = regexp.MustCompile(`^agent_\d{3}$`)
)

// ID returns the canonical id of the i-th agent of a table.
func ID(i int) string {
	return fmt.Sprintf("agent_%03d", i)
}

// Registry is the ordered collection of all agents, keyed by id. Agents are
// never removed. Lookups are safe for concurrent use once construction ends.
type Registry struct {
	order []*Agent
	byID  map[string]*Agent
}

// NewRegistry indexes agents in the given order.
//
// Precondition: every agent is non-nil.
// Postcondition: Returns a Registry or an error on a duplicate or malformed id.
func NewRegistry(agents ...*Agent) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Agent, len(agents))}
	for _, a := range agents {
		if !canonicalID.MatchString(a.ID) {
			return nil, fmt.Errorf("agent id %q is not of the form agent_NNN", a.ID)
		}
		if _, dup := r.byID[a.ID]; dup {
			return nil, fmt.Errorf("duplicate agent id %q", a.ID)
		}
		r.byID[a.ID] = a
		r.order = append(r.order, a)
	}
	return r, nil
}

// Len returns the number of agents.
func (r *Registry) Len() int { return len(r.order) }

// Get returns the agent with exactly this id.
func (r *Registry) Get(id string) (*Agent, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// Search resolves the first canonical agent id embedded in query.
func (r *Registry) Search(query string) (*Agent, bool) {
	id := idPattern.FindString(query)
	if id == "" {
		return nil, false
	}
	return r.Get(id)
}

// SearchAll resolves every canonical agent id embedded in query, in order of
// appearance. Duplicates are kept.
//
// Postcondition: Returns at least one agent, or an error wrapping ErrUnknownAgent.
func (r *Registry) SearchAll(query string) ([]*Agent, error) {
	ids := idPattern.FindAllString(query, -1)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no agent id in %q", ErrUnknownAgent, query)
	}
	out := make([]*Agent, 0, len(ids))
	for _, id := range ids {
		a, ok := r.Get(id)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownAgent, id)
		}
		out = append(out, a)
	}
	return out, nil
}

// Resolve resolves each query in order and concatenates the results.
//
// Postcondition: Returns the agents named, or an error wrapping ErrUnknownAgent
// if any query names none or names an unregistered id.
func (r *Registry) Resolve(queries []string) ([]*Agent, error) {
	var out []*Agent
	for _, q := range queries {
		found, err := r.SearchAll(q)
		if err != nil {
			return nil, err
		}
		out = append(out, found...)
	}
	return out, nil
}

// All returns every agent in registration order.
func (r *Registry) All() []*Agent {
	return append([]*Agent(nil), r.order...)
}

// Live returns every agent whose status is not Dead, in registration order.
func (r *Registry) Live() []*Agent {
	var out []*Agent
	for _, a := range r.order {
		if a.Status != Dead {
			out = append(out, a)
		}
	}
	return out
}
