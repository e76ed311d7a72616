package meta

import (
	"sort"
	"strings"
)

// Option is a single configuration option of a component. Table-typed
// options carry nested sub-options.
type Option struct {
	Name         string
	Category     string
	Type         string
	Description  string
	Unit         string
	Default      any
	Enum         []string
	Examples     []any
	Nullable     bool
	RelevantWhen map[string]any
	Options      []*Option // sub-options, table type only
}

// Required is derived: an option is required when it has no default and is
// not nullable.
func (o *Option) Required() bool { return o.Default == nil && !o.Nullable }

// scalar option types; a list type is "[T]" for any scalar T.
var scalarTypes = map[string]bool{
	"string": true,
	"int":    true,
	"float":  true,
	"bool":   true,
	"table":  true,
}

func validOptionType(t string) bool {
	if scalarTypes[t] {
		return true
	}
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		inner := t[1 : len(t)-1]
		return scalarTypes[inner] && inner != "table"
	}
	return false
}

// ExampleSource names which field drives example generation for an option.
type ExampleSource int

const (
	ExampleFromNone ExampleSource = iota
	ExampleFromDefault
	ExampleFromEnum
	ExampleFromExamples
)

// ExampleSource returns the single field driving example generation.
// buildOption guarantees at most one is present.
func (o *Option) ExampleSource() ExampleSource {
	switch {
	case len(o.Enum) > 0:
		return ExampleFromEnum
	case len(o.Examples) > 0:
		return ExampleFromExamples
	case o.Default != nil:
		return ExampleFromDefault
	default:
		return ExampleFromNone
	}
}

func buildOption(component, name string, raw map[string]any) (*Option, error) {
	o := &Option{Name: name}

	if v, ok := raw["type"].(string); ok {
		o.Type = v
	}
	if !validOptionType(o.Type) {
		return nil, schemaErrf(component, name, "invalid option type %q", o.Type)
	}

	o.Category, _ = raw["category"].(string)
	o.Unit, _ = raw["unit"].(string)
	o.Default = raw["default"]
	o.Nullable, _ = raw["null"].(bool)

	if v, ok := raw["description"].(string); ok {
		o.Description = v
		if err := checkDescriptionStyle(component, name, v); err != nil {
			return nil, err
		}
	}

	if v, ok := raw["enum"]; ok {
		vals, ok := v.([]any)
		if !ok {
			return nil, schemaErrf(component, name, "enum must be a list")
		}
		for _, e := range vals {
			s, ok := e.(string)
			if !ok {
				return nil, schemaErrf(component, name, "enum values must be strings, got %v", e)
			}
			o.Enum = append(o.Enum, s)
		}
	}

	if v, ok := raw["examples"].([]any); ok {
		o.Examples = v
	}

	if v, ok := raw["relevant_when"]; ok {
		rw, ok := v.(map[string]any)
		if !ok || len(rw) == 0 {
			return nil, schemaErrf(component, name, "relevant_when must be a non-empty field/value map")
		}
		for field, val := range rw {
			switch val.(type) {
			case string, bool, int, float64:
			default:
				return nil, schemaErrf(component, name, "relevant_when value for %q must be a scalar", field)
			}
		}
		o.RelevantWhen = rw
	}

	// Exactly one of default/enum/examples may drive example generation.
	sources := 0
	if o.Default != nil {
		sources++
	}
	if len(o.Enum) > 0 {
		sources++
	}
	if len(o.Examples) > 0 {
		sources++
	}
	if sources > 1 {
		return nil, schemaErrf(component, name, "only one of default, enum or examples may be set")
	}

	// A table option with no declared sub-options is still valid.
	if subs, ok := raw["options"].(map[string]any); ok {
		if o.Type != "table" {
			return nil, schemaErrf(component, name, "sub-options are only allowed on table options")
		}
		for subName, subRaw := range subs {
			sub, ok := subRaw.(map[string]any)
			if !ok {
				return nil, schemaErrf(component, name+"."+subName, "option body must be a map")
			}
			built, err := buildOption(component, subName, sub)
			if err != nil {
				return nil, err
			}
			o.Options = append(o.Options, built)
		}
		sortOptions(o.Options)
	}

	return o, nil
}

// sortOptions orders options for presentation: required and table options
// first, then by category, then by name with "type" and "inputs" forced to
// the front.
func sortOptions(opts []*Option) {
	sort.SliceStable(opts, func(i, j int) bool {
		a, b := opts[i], opts[j]
		if ab, bb := optionBucket(a), optionBucket(b); ab != bb {
			return ab < bb
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if ar, br := nameRank(a.Name), nameRank(b.Name); ar != br {
			return ar < br
		}
		return a.Name < b.Name
	})
}

func optionBucket(o *Option) int {
	if o.Required() || o.Type == "table" {
		return 0
	}
	return 1
}

func nameRank(name string) int {
	switch name {
	case "type":
		return 0
	case "inputs":
		return 1
	default:
		return 2
	}
}

func checkDescriptionStyle(component, field, description string) error {
	if strings.HasSuffix(strings.TrimSpace(description), ".") {
		return schemaErrf(component, field, "description must not end with a period")
	}
	return nil
}
