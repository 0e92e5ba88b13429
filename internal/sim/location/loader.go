package location

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlTable is the top-level structure of an area table file.
type yamlTable struct {
	Areas     []yamlArea `yaml:"areas"`
	Distances [][]int    `yaml:"distances"`
}

// yamlArea is the YAML representation of an area.
type yamlArea struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// LoadFromFile reads an area table YAML file.
//
// Precondition: path must point to a YAML area table.
// Postcondition: Returns a Location or a non-nil error.
func LoadFromFile(path string) (*Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading area table %s: %w", path, err)
	}
	return LoadFromBytes(data)
}

// LoadFromBytes parses an area table. Ids are assigned in table order.
//
// Postcondition: Returns a Location or a non-nil error.
func LoadFromBytes(data []byte) (*Location, error) {
	var table yamlTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing area table YAML: %w", err)
	}
	if len(table.Areas) > 100 {
		return nil, fmt.Errorf("area table has %d areas, at most 100 fit the id scheme", len(table.Areas))
	}
	areas := make([]*Area, 0, len(table.Areas))
	for i, ya := range table.Areas {
		if ya.Name == "" {
			return nil, fmt.Errorf("area %d: name must not be empty", i)
		}
		areas = append(areas, &Area{
			ID:          ID(i),
			Name:        ya.Name,
			Description: strings.TrimSpace(ya.Description),
			Occupants:   []string{},
			Events:      []string{},
		})
	}
	return New(areas, table.Distances)
}
