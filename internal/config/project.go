package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Project is a castledb.yaml project file:
//
//	schema: data/game.cdb
//	output: gen/GameData
//	backends: [cpp, asbinding]
//	options:
//	  db: GameDatabase
//	  ns: Game
//	  inherits: RefCounted
type Project struct {
	// Schema is the path of the .cdb file.
	Schema string `yaml:"schema"`
	// Output is the base path generated file names are derived from.
	Output string `yaml:"output,omitempty"`
	// Backends lists the backends to run.
	Backends []string `yaml:"backends,omitempty"`
	// Options is the switch map, see FromSwitches.
	Options map[string]string `yaml:"options,omitempty"`
}

// LoadFile loads and parses a YAML project file from the given path.
func LoadFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Project.
func Parse(data []byte) (*Project, error) {
	var p Project

	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project YAML: %w", err)
	}

	applyDefaults(&p)

	return &p, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(p *Project) {
	if p.Output == "" {
		p.Output = "GameData"
	}

	if p.Options == nil {
		p.Options = map[string]string{}
	}
}

// Marshal serializes a Project to YAML.
func Marshal(p *Project) ([]byte, error) {
	return yaml.Marshal(p)
}
