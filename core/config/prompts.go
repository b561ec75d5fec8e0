package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Prompts holds optional instruction overrides. Empty fields keep the built-in text.
type Prompts struct {
	SystemInstructions string `yaml:"system_instructions"`
	EditorInstructions string `yaml:"editor_instructions"`
}

// LoadPrompts reads prompt overrides from a YAML file. An empty path returns no overrides.
//
//	system_instructions: |
//	  You are a technical writer...
//	editor_instructions: |
//	  You are an experienced technical editor...
func LoadPrompts(path string) (Prompts, error) {
	if path == "" {
		return Prompts{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Prompts{}, fmt.Errorf("reading prompts file: %w", err)
	}

	var p Prompts
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Prompts{}, fmt.Errorf("parsing prompts file %s: %w", path, err)
	}
	return p, nil
}
