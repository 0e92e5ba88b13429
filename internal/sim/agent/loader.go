package agent

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/society/internal/sim/dice"
)

// yamlTable is the top-level structure of an agent table file.
type yamlTable struct {
	Agents []Profile `yaml:"agents"`
}

// Validate checks that the profile can be shown to the oracle.
func (p Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("agent profile: name must not be empty")
	}
	if p.Job == "" {
		return fmt.Errorf("agent profile %q: job must not be empty", p.Name)
	}
	return nil
}

// LoadTableFromFile reads an agent table YAML file.
//
// Precondition: path must point to a YAML agent table.
// Postcondition: Returns the validated profiles in table order or a non-nil error.
func LoadTableFromFile(path string) ([]Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading agent table %s: %w", path, err)
	}
	return LoadTableFromBytes(data)
}

// LoadTableFromBytes parses an agent table from YAML bytes.
//
// Postcondition: Returns at least one validated profile, or a non-nil error.
func LoadTableFromBytes(data []byte) ([]Profile, error) {
	var table yamlTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing agent table YAML: %w", err)
	}
	if len(table.Agents) == 0 {
		return nil, fmt.Errorf("agent table has no agents")
	}
	if len(table.Agents) > 1000 {
		return nil, fmt.Errorf("agent table has %d agents, at most 1000 fit the id scheme", len(table.Agents))
	}
	for i, p := range table.Agents {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("agent %d: %w", i, err)
		}
	}
	return table.Agents, nil
}

// Populate creates one agent per profile, assigning ids in table order and a
// uniformly random starting area.
//
// Precondition: areas is non-empty; src is non-nil; capacity >= 1.
// Postcondition: Returns a Registry holding len(profiles) actable agents.
func Populate(profiles []Profile, areas []string, src dice.Source, capacity int) (*Registry, error) {
	if len(areas) == 0 {
		return nil, fmt.Errorf("agent.Populate: no areas to place agents in")
	}
	agents := make([]*Agent, 0, len(profiles))
	for i, p := range profiles {
		agents = append(agents, New(ID(i), p, dice.Choose(src, areas), capacity))
	}
	return NewRegistry(agents...)
}
