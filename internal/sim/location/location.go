// Package location models the places agents live in: areas, the quantized
// travel-time matrix between them, and per-tick aggregation of occupants,
// events and narrative summaries.
package location

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cory-johannsen/society/internal/sim/action"
	"github.com/cory-johannsen/society/internal/sim/agent"
)

// ErrAreaNotFound is returned when an area id is not part of the location.
var ErrAreaNotFound = errors.New("location: area not found")

var idPattern = regexp.MustCompile(`area_\d{2}`)

// ID returns the canonical id of the i-th area of a table.
func ID(i int) string {
	return fmt.Sprintf("area_%02d", i)
}

// Area is one place. Occupants, Events and Summary are overwritten every tick.
type Area struct {
	ID          string
	Name        string
	Description string

	// Occupants holds the ids of the live agents here, in registry order.
	Occupants []string
	// Events holds this tick's rendered actions of actors here.
	Events []string
	// Summary is the rolling narrative of the area.
	Summary string

	people []string
}

// NameWithID renders "Name (id)".
func (a *Area) NameWithID() string {
	return fmt.Sprintf("%s (%s)", a.Name, a.ID)
}

// Info renders the area for the oracle: description, occupants and summary as
// of the last recount.
func (a *Area) Info() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "### %s\n", a.NameWithID())
	if a.Description != "" {
		sb.WriteString(a.Description)
		sb.WriteString("\n")
	}
	sb.WriteString("■ People here\n")
	if len(a.people) == 0 {
		sb.WriteString("- nobody\n")
	}
	for _, p := range a.people {
		sb.WriteString("- ")
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	if a.Summary != "" {
		sb.WriteString("■ Current situation\n")
		sb.WriteString(a.Summary)
		sb.WriteString("\n")
	}
	return sb.String()
}

// Location owns the areas and the travel-time matrix.
// Location is mutated only between the concurrent phases of a tick.
type Location struct {
	order  []*Area
	byID   map[string]*Area
	index  map[string]int
	travel [][]int
}

// Quantize converts a raw distance to ticks: x is rounded half-up to a
// multiple of ten and divided by ten.
//
// Precondition: x >= 0.
func Quantize(x int) int {
	q := x / 10
	if x%10 >= 5 {
		q++
	}
	return q
}

// New builds a Location from areas in table order and a raw pairwise distance
// matrix, where distances[i][j] is the cost of travelling from area i to area j.
// The matrix need not be symmetric.
//
// Precondition: len(distances) == len(areas) and every row has len(areas) entries.
// Postcondition: Returns a Location or an error on a malformed table.
func New(areas []*Area, distances [][]int) (*Location, error) {
	if len(areas) == 0 {
		return nil, fmt.Errorf("location.New: no areas")
	}
	if len(distances) != len(areas) {
		return nil, fmt.Errorf("location.New: distance matrix has %d rows, want %d", len(distances), len(areas))
	}
	l := &Location{
		byID:   make(map[string]*Area, len(areas)),
		index:  make(map[string]int, len(areas)),
		travel: make([][]int, len(areas)),
	}
	for i, a := range areas {
		if _, dup := l.byID[a.ID]; dup {
			return nil, fmt.Errorf("location.New: duplicate area id %q", a.ID)
		}
		if idPattern.FindString(a.ID) != a.ID {
			return nil, fmt.Errorf("location.New: area id %q is not of the form area_NN", a.ID)
		}
		if len(distances[i]) != len(areas) {
			return nil, fmt.Errorf("location.New: distance row %d has %d entries, want %d", i, len(distances[i]), len(areas))
		}
		l.travel[i] = make([]int, len(areas))
		for j, x := range distances[i] {
			if x < 0 {
				return nil, fmt.Errorf("location.New: negative distance %d from %s", x, a.ID)
			}
			l.travel[i][j] = Quantize(x)
		}
		l.byID[a.ID] = a
		l.index[a.ID] = i
		l.order = append(l.order, a)
	}
	return l, nil
}

// TravelTime returns the ticks needed to go from one area to another.
//
// Postcondition: Returns an error wrapping ErrAreaNotFound if either id is unknown.
func (l *Location) TravelTime(from, to string) (int, error) {
	i, ok := l.index[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrAreaNotFound, from)
	}
	j, ok := l.index[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrAreaNotFound, to)
	}
	return l.travel[i][j], nil
}

// Search resolves the first canonical area id embedded in query.
func (l *Location) Search(query string) (*Area, bool) {
	id := idPattern.FindString(query)
	if id == "" {
		return nil, false
	}
	return l.Get(id)
}

// Get returns the area with exactly this id.
func (l *Location) Get(id string) (*Area, bool) {
	a, ok := l.byID[id]
	return a, ok
}

// Areas returns every area in table order.
func (l *Location) Areas() []*Area {
	return append([]*Area(nil), l.order...)
}

// IDs returns every area id in table order.
func (l *Location) IDs() []string {
	ids := make([]string, len(l.order))
	for i, a := range l.order {
		ids[i] = a.ID
	}
	return ids
}

// View lists the reachable areas, one "Name (id)" per line.
func (l *Location) View() string {
	names := make([]string, len(l.order))
	for i, a := range l.order {
		names[i] = a.NameWithID()
	}
	return strings.Join(names, "\n")
}

// Recount rebuilds every area's occupant list from the live agents. Areas
// without live agents get an empty list.
//
// Postcondition: An agent id appears in exactly one area iff it is not Dead.
func (l *Location) Recount(agents []*agent.Agent) {
	for _, a := range l.order {
		a.Occupants = []string{}
		a.people = nil
	}
	for _, ag := range agents {
		if ag.Status == agent.Dead {
			continue
		}
		area, ok := l.byID[ag.Area]
		if !ok {
			continue
		}
		area.Occupants = append(area.Occupants, ag.ID)
		area.people = append(area.people, ag.Info())
	}
}

// Collect replaces every area's event buffer with the bystander rendering of
// this tick's actions whose actor is in that area. Ongoing actions are skipped.
//
// Postcondition: Every area has a non-nil buffer; nothing carries over.
func (l *Location) Collect(actions []action.Action) {
	for _, a := range l.order {
		a.Events = []string{}
	}
	for _, act := range actions {
		if act.Ongoing {
			continue
		}
		area, ok := l.byID[act.Actor.Area]
		if !ok {
			continue
		}
		area.Events = append(area.Events, act.Log(nil))
	}
}
