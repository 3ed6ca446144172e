package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PoolFile represents the top-level YAML structure of a card-pool file:
//
//	name: demo
//	cards:
//	  - Calibration Unit
//	  - Kickback
type PoolFile struct {
	Name  string   `yaml:"name"`
	Cards []string `yaml:"cards"`
}

// ParsePoolFile parses a YAML pool file and validates every card name against
// the builtin catalog.
func ParsePoolFile(path string) (*PoolFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pf PoolFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse pool YAML: %w", err)
	}
	if len(pf.Cards) == 0 {
		return nil, catalogf("pool file %q lists no cards", path)
	}
	catalog := BuiltinCatalog()
	for _, name := range pf.Cards {
		if _, err := catalog.Lookup(name); err != nil {
			return nil, err
		}
	}
	return &pf, nil
}
