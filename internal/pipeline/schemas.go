package pipeline

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/jsonschema-go/jsonschema"
)

// SchemaSet holds the compiled front-matter schemas, keyed by the name
// documents declare in their $schema field.
type SchemaSet struct {
	resolved map[string]*jsonschema.Resolved
}

// LoadSchemas reads and compiles the configured schema files. An empty map
// yields a set that accepts no declarations, which is fine: documents only
// fail when they declare a schema the set does not know.
func LoadSchemas(files map[string]string) (*SchemaSet, error) {
	set := &SchemaSet{resolved: make(map[string]*jsonschema.Resolved, len(files))}
	for name, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading schema %s: %w", name, err)
		}
		var schema jsonschema.Schema
		if err := json.Unmarshal(data, &schema); err != nil {
			return nil, fmt.Errorf("parsing schema %s: %w", name, err)
		}
		resolved, err := schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolving schema %s: %w", name, err)
		}
		set.resolved[name] = resolved
	}
	return set, nil
}

// Has reports whether a schema with the given name is loaded.
func (s *SchemaSet) Has(name string) bool {
	_, ok := s.resolved[name]
	return ok
}

// Validate checks fields against the named schema. An unknown name is an
// error: a declared schema the run cannot enforce must not pass silently.
func (s *SchemaSet) Validate(name string, fields map[string]any) error {
	resolved, ok := s.resolved[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}
	return resolved.Validate(fields)
}
