package meta

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Catalog is the fully validated component catalog for one run.
type Catalog struct {
	Sources    map[string]*Component
	Transforms map[string]*Component
	Sinks      map[string]*Component
	Suites     TestSuites
}

// Components returns all components of a kind, sorted by name.
func (c *Catalog) Components(kind Kind) []*Component {
	var m map[string]*Component
	switch kind {
	case KindSource:
		m = c.Sources
	case KindTransform:
		m = c.Transforms
	case KindSink:
		m = c.Sinks
	}
	out := make([]*Component, 0, len(m))
	for _, comp := range m {
		out = append(out, comp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns the component names of a kind (unsorted).
func (c *Catalog) Names(kind Kind) []string {
	comps := c.Components(kind)
	out := make([]string, len(comps))
	for i, comp := range comps {
		out[i] = comp.Name
	}
	return out
}

// Lookup finds a component by name across all kinds.
func (c *Catalog) Lookup(name string) (*Component, bool) {
	for _, m := range []map[string]*Component{c.Sources, c.Transforms, c.Sinks} {
		if comp, ok := m[name]; ok {
			return comp, true
		}
	}
	return nil, false
}

type rawCatalog struct {
	Sources    map[string]map[string]any `yaml:"sources"`
	Transforms map[string]map[string]any `yaml:"transforms"`
	Sinks      map[string]map[string]any `yaml:"sinks"`
	Tests      struct {
		Correctness []string `yaml:"correctness"`
		Performance []string `yaml:"performance"`
	} `yaml:"tests"`
}

// LoadCatalog reads and validates the component metadata file. Any schema
// violation in any component fails the whole load.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog builds a Catalog from raw YAML metadata.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing metadata: %w", err)
	}

	cat := &Catalog{
		Sources:    map[string]*Component{},
		Transforms: map[string]*Component{},
		Sinks:      map[string]*Component{},
		Suites: TestSuites{
			Correctness: raw.Tests.Correctness,
			Performance: raw.Tests.Performance,
		},
	}

	build := func(kind Kind, in map[string]map[string]any, out map[string]*Component) error {
		for name, body := range in {
			if body == nil {
				body = map[string]any{}
			}
			if _, ok := body["name"]; !ok {
				body["name"] = name
			}
			comp, err := BuildComponent(kind, body, cat.Suites)
			if err != nil {
				return err
			}
			out[comp.Name] = comp
		}
		return nil
	}

	if err := build(KindSource, raw.Sources, cat.Sources); err != nil {
		return nil, err
	}
	if err := build(KindTransform, raw.Transforms, cat.Transforms); err != nil {
		return nil, err
	}
	if err := build(KindSink, raw.Sinks, cat.Sinks); err != nil {
		return nil, err
	}
	return cat, nil
}
