// Package funnel holds the static funnel configuration: the pipeline
// types, their ordered stage lists, and the conversion trigger rules that
// promote a contact from one funnel to another. The catalog is loaded once
// at process start and is read-only for the lifetime of the process.
package funnel

import (
	_ "embed"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultConfig []byte

// Pair is a (pipeline-type, stage) coordinate.
type Pair struct {
	Pipeline string `yaml:"pipeline" json:"pipelineType"`
	Stage    string `yaml:"stage" json:"stage"`
}

// Rule maps one pair to another, representing a one-way funnel promotion.
// Rules are keyed on the proposed pair: writing From to a contact results
// in To being stored instead, regardless of the contact's prior state.
type Rule struct {
	From Pair `yaml:"from" json:"from"`
	To   Pair `yaml:"to" json:"to"`
}

// Pipeline is a named funnel type with its ordered stage list.
type Pipeline struct {
	Type   string   `yaml:"type" json:"type"`
	Stages []string `yaml:"stages" json:"stages"`
}

// Catalog is the immutable funnel configuration.
type Catalog struct {
	Pipelines []Pipeline `yaml:"pipelines" json:"pipelines"`
	Triggers  []Rule     `yaml:"triggers" json:"triggers"`

	stages map[string][]string
	rules  map[Pair]Pair
}

// Default returns the catalog compiled into the binary.
func Default() *Catalog {
	c, err := Parse(defaultConfig)
	if err != nil {
		// The embedded config is validated by tests; a parse failure here
		// is a build defect.
		panic(fmt.Sprintf("embedded funnel config: %v", err))
	}
	return c
}

// Load reads a catalog from the YAML file at path. An empty path returns
// the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read funnel config: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse funnel config: %w", err)
	}

	if len(c.Pipelines) == 0 {
		return nil, fmt.Errorf("funnel config declares no pipelines")
	}

	c.stages = make(map[string][]string, len(c.Pipelines))
	for _, p := range c.Pipelines {
		if p.Type == "" {
			return nil, fmt.Errorf("pipeline with empty type")
		}
		if _, dup := c.stages[p.Type]; dup {
			return nil, fmt.Errorf("duplicate pipeline type %q", p.Type)
		}
		if len(p.Stages) == 0 {
			return nil, fmt.Errorf("pipeline %q declares no stages", p.Type)
		}
		c.stages[p.Type] = p.Stages
	}

	c.rules = make(map[Pair]Pair, len(c.Triggers))
	for _, r := range c.Triggers {
		if !c.ValidStage(r.From.Pipeline, r.From.Stage) {
			return nil, fmt.Errorf("trigger source %s/%s not in catalog", r.From.Pipeline, r.From.Stage)
		}
		if !c.ValidStage(r.To.Pipeline, r.To.Stage) {
			return nil, fmt.Errorf("trigger target %s/%s not in catalog", r.To.Pipeline, r.To.Stage)
		}
		if _, dup := c.rules[r.From]; dup {
			return nil, fmt.Errorf("duplicate trigger for %s/%s", r.From.Pipeline, r.From.Stage)
		}
		c.rules[r.From] = r.To
	}

	return &c, nil
}

// Stages returns the ordered stage list for a pipeline type, or nil when
// the type is unknown.
func (c *Catalog) Stages(pipelineType string) []string {
	return c.stages[pipelineType]
}

// ValidStage reports whether stage belongs to the declared stage list for
// the given pipeline type.
func (c *Catalog) ValidStage(pipelineType, stage string) bool {
	return slices.Contains(c.stages[pipelineType], stage)
}

// Trigger returns the target pair for a proposed pair when a rule matches.
func (c *Catalog) Trigger(pipelineType, stage string) (Pair, bool) {
	to, ok := c.rules[Pair{Pipeline: pipelineType, Stage: stage}]
	return to, ok
}
