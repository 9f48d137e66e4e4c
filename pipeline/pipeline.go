// Package pipeline loads a declarative operation sequence for jsonkit's
// builder from a YAML file, as an alternative to repeating -r/-v/-e/-n
// flags on the command line.
//
// The core engine (transform, flatten, schema) never touches YAML; this
// is the home SPEC_FULL.md found for the teacher's
// github.com/goccy/go-yaml dependency, mirroring the way magicschema's
// annotators read YAML comments to configure schema generation without
// the generator itself depending on YAML.
package pipeline

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"go.jsonkit.dev/jsonkit"
)

// Step is one entry in a pipeline file's steps list. Build applies only
// the first field that is set, in declaration order; any other fields
// set on the same step are ignored, and a step with no field set adds
// no operation. Neither case is reported as an error.
type Step struct {
	RemoveEmptyStrings bool   `yaml:"remove_empty_strings"`
	RemoveNulls        bool   `yaml:"remove_nulls"`
	Flatten            bool   `yaml:"flatten"`
	ReplaceKeys        *Regex `yaml:"replace_keys"`
	ReplaceValues      *Regex `yaml:"replace_values"`
}

// Regex is a pattern/replacement pair for a replace_keys or
// replace_values step.
type Regex struct {
	Pattern     string `yaml:"pattern"`
	Replacement string `yaml:"replacement"`
}

// Config is the top-level shape of a pipeline YAML file.
//
//	pretty: true
//	steps:
//	  - remove_nulls: true
//	  - replace_keys: {pattern: "^old_", replacement: ""}
//	  - flatten: true
type Config struct {
	Pretty bool   `yaml:"pretty"`
	Steps  []Step `yaml:"steps"`
}

// Load reads and parses a pipeline configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline config: %w", err)
	}

	var cfg Config

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse pipeline config: %w", err)
	}

	return &cfg, nil
}

// Build appends cfg's steps to b in order, in the shape jsonkit.Builder's
// fluent API expects.
func Build(b *jsonkit.Builder, cfg *Config) *jsonkit.Builder {
	b = b.PrettyPrint(cfg.Pretty)

	for _, step := range cfg.Steps {
		switch {
		case step.RemoveEmptyStrings:
			b = b.RemoveEmptyStrings()
		case step.RemoveNulls:
			b = b.RemoveNulls()
		case step.Flatten:
			b = b.Flatten()
		case step.ReplaceKeys != nil:
			b = b.ReplaceKeys(step.ReplaceKeys.Pattern, step.ReplaceKeys.Replacement)
		case step.ReplaceValues != nil:
			b = b.ReplaceValues(step.ReplaceValues.Pattern, step.ReplaceValues.Replacement)
		}
	}

	return b
}
