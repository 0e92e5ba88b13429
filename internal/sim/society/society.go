// Package society runs the simulation: it owns the clock, the agents and the
// location, and advances them one tick at a time.
package society

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/society/internal/config"
	"github.com/cory-johannsen/society/internal/oracle"
	"github.com/cory-johannsen/society/internal/sim/agent"
	"github.com/cory-johannsen/society/internal/sim/clock"
	"github.com/cory-johannsen/society/internal/sim/dice"
	"github.com/cory-johannsen/society/internal/sim/location"
)

// Society is the aggregate root of one simulation run.
//
// Step must not be called concurrently with itself. Narrative and
// SetNarrative are safe for concurrent use.
type Society struct {
	cfg      config.SimulationConfig
	clock    *clock.Clock
	agents   *agent.Registry
	location *location.Location
	oracle   oracle.Oracle
	dice     dice.Source
	logger   *zap.Logger
	runID    string

	mu        sync.RWMutex
	narrative string
}

// New assembles a Society from already-loaded parts.
//
// Precondition: every argument is non-nil; cfg has passed validation.
// Postcondition: Returns a Society whose areas reflect the initial placement,
// or an error if an agent stands in an unknown area.
func New(
	cfg config.SimulationConfig,
	clk *clock.Clock,
	agents *agent.Registry,
	loc *location.Location,
	o oracle.Oracle,
	src dice.Source,
	logger *zap.Logger,
) (*Society, error) {
	if clk == nil || agents == nil || loc == nil || o == nil || src == nil || logger == nil {
		panic("society.New: all dependencies must be non-nil")
	}
	for _, a := range agents.All() {
		if _, ok := loc.Get(a.Area); !ok {
			return nil, fmt.Errorf("agent %s stands in unknown area %q: %w", a.ID, a.Area, location.ErrAreaNotFound)
		}
	}
	runID := uuid.NewString()
	s := &Society{
		cfg:       cfg,
		clock:     clk,
		agents:    agents,
		location:  loc,
		oracle:    o,
		dice:      src,
		logger:    logger.With(zap.String("run", runID)),
		runID:     runID,
		narrative: cfg.Narrative,
	}
	loc.Recount(agents.All())
	return s, nil
}

// Load reads the agent and area tables named by cfg and assembles a Society
// with every agent placed in a random area.
//
// Precondition: cfg has passed validation; o, src and logger are non-nil.
// Postcondition: Returns a ready Society or a non-nil error.
func Load(cfg config.SimulationConfig, o oracle.Oracle, src dice.Source, logger *zap.Logger) (*Society, error) {
	loc, err := location.LoadFromFile(cfg.AreasFile)
	if err != nil {
		return nil, err
	}
	profiles, err := agent.LoadTableFromFile(cfg.AgentsFile)
	if err != nil {
		return nil, err
	}
	agents, err := agent.Populate(profiles, loc.IDs(), src, cfg.HistoryCapacity)
	if err != nil {
		return nil, err
	}
	clk, err := clock.New(cfg.StartDay, cfg.StartHour, cfg.StartMinute)
	if err != nil {
		return nil, err
	}
	return New(cfg, clk, agents, loc, o, src, logger)
}

// RunID identifies this run in logs.
func (s *Society) RunID() string { return s.runID }

// Clock returns the simulation clock.
func (s *Society) Clock() *clock.Clock { return s.clock }

// Agents returns the agent registry.
func (s *Society) Agents() *agent.Registry { return s.agents }

// Location returns the location.
func (s *Society) Location() *location.Location { return s.location }

// Narrative returns the current global narrative.
func (s *Society) Narrative() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.narrative
}

// SetNarrative replaces the global narrative. A tick already in progress keeps
// the value it started with.
func (s *Society) SetNarrative(narrative string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.narrative = narrative
}

// worldInfo renders the world context shared by every agent in a tick.
func (s *Society) worldInfo(now, narrative string) string {
	if narrative == "" {
		narrative = "Nothing in particular."
	}
	return fmt.Sprintf("■ Current time: %s\n\n■ Reachable areas\n%s\n\n■ News\n%s", now, s.location.View(), narrative)
}
