// Package runner executes the test suites as child `go test` processes,
// collects their results and hands them to the report writers. Suites are
// described by a YAML plan so CI pipelines can select subsets without
// recompiling the runner.
package runner

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Suite is one entry of the plan: a test package plus how to run it.
type Suite struct {
	Name    string   `yaml:"name"`
	Package string   `yaml:"package"`
	Tags    []string `yaml:"tags,omitempty"`
	Shards  int      `yaml:"shards,omitempty"`
	Timeout string   `yaml:"timeout,omitempty"`
}

// Plan is the full suite plan.
type Plan struct {
	Suites []Suite `yaml:"suites"`
}

// DefaultPlan returns the built-in plan used when no plan file is given.
func DefaultPlan() *Plan {
	return &Plan{
		Suites: []Suite{
			{Name: "ui", Package: "./test/ui", Tags: []string{"ui"}},
			{Name: "api", Package: "./test/api", Tags: []string{"api"}},
		},
	}
}

// LoadPlan reads and validates a plan file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file: %w", err)
	}

	if len(plan.Suites) == 0 {
		return nil, fmt.Errorf("plan file %s defines no suites", path)
	}
	for i, suite := range plan.Suites {
		if suite.Name == "" {
			return nil, fmt.Errorf("suite %d has no name", i)
		}
		if suite.Package == "" {
			return nil, fmt.Errorf("suite %q has no package", suite.Name)
		}
		if suite.Shards < 0 {
			return nil, fmt.Errorf("suite %q has negative shard count", suite.Name)
		}
	}
	return &plan, nil
}

// Filter returns the suites whose tag list contains any of the wanted tags.
// An empty want list keeps every suite.
func (p *Plan) Filter(want []string) []Suite {
	if len(want) == 0 {
		return p.Suites
	}
	var out []Suite
	for _, suite := range p.Suites {
		if hasAnyTag(suite.Tags, want) {
			out = append(out, suite)
		}
	}
	return out
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}
