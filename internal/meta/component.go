package meta

import (
	"fmt"
	"sort"
	"strings"

	"github.com/streamfold/docgen/internal/foundation/normalize"
)

// Resource is an external reference attached to a component (dashboard,
// upstream project, RFC, ...) addressed through a short-link id.
type Resource struct {
	Name      string
	ShortLink string
}

// TestSuites carries the global correctness/performance test-name lists.
// A component participates in a suite when the suite's normalized name
// contains the component's normalized name.
type TestSuites struct {
	Correctness []string
	Performance []string
}

func matchSuites(tests []string, componentName string) []string {
	key := normalize.SuiteKey(componentName)
	var out []string
	for _, t := range tests {
		if strings.Contains(normalize.SuiteKey(t), key) {
			out = append(out, t)
		}
	}
	return out
}

// Component is an immutable description of one source, transform or sink.
type Component struct {
	Name              string
	Kind              Kind
	Beta              bool
	Description       string
	DeliveryGuarantee DeliveryGuarantee
	Options           []*Option
	Sections          []Section
	Resources         []Resource
	Alternatives      []string
}

// ID returns the canonical component id, e.g. "aws_s3_sink".
func (c *Component) ID() string { return c.Name + "_" + string(c.Kind) }

// BuildComponent validates raw nested metadata and constructs a Component,
// deriving the standard sections and synthetic options.
func BuildComponent(kind Kind, raw map[string]any, suites TestSuites) (*Component, error) {
	name, _ := raw["name"].(string)
	if name == "" {
		return nil, schemaErrf("(unnamed)", "name", "component name is required")
	}

	c := &Component{Name: name, Kind: kind}
	c.Beta, _ = raw["beta"].(bool)

	if v, ok := raw["description"].(string); ok {
		if err := checkDescriptionStyle(name, "description", v); err != nil {
			return nil, err
		}
		c.Description = v
	}

	rawGuarantee, _ := raw["delivery_guarantee"].(string)
	guarantee, err := parseDeliveryGuarantee(name, rawGuarantee)
	if err != nil {
		return nil, err
	}
	c.DeliveryGuarantee = guarantee

	if err := buildComponentOptions(c, raw); err != nil {
		return nil, err
	}
	if err := buildComponentSections(c, raw, suites); err != nil {
		return nil, err
	}

	if v, ok := raw["alternatives"].([]any); ok {
		for _, a := range v {
			if s, ok := a.(string); ok {
				c.Alternatives = append(c.Alternatives, s)
			}
		}
	}

	if v, ok := raw["resources"].([]any); ok {
		for _, r := range v {
			m, ok := r.(map[string]any)
			if !ok {
				return nil, schemaErrf(name, "resources", "resource entries must be maps")
			}
			resName, _ := m["name"].(string)
			link, _ := m["short_link"].(string)
			if resName == "" || link == "" {
				return nil, schemaErrf(name, "resources", "resource needs both name and short_link")
			}
			c.Resources = append(c.Resources, Resource{Name: resName, ShortLink: link})
		}
	}

	return c, nil
}

func buildComponentOptions(c *Component, raw map[string]any) error {
	rawOpts, _ := raw["options"].(map[string]any)

	reserved := []string{"type"}
	if c.Kind != KindSource {
		reserved = append(reserved, "inputs")
	}
	for _, r := range reserved {
		if _, clash := rawOpts[r]; clash {
			return schemaErrf(c.Name, r, "option name collides with the implicit %q option", r)
		}
	}

	opts := make([]*Option, 0, len(rawOpts)+2)
	opts = append(opts, &Option{
		Name:        "type",
		Type:        "string",
		Category:    "General",
		Enum:        []string{c.ID()},
		Description: fmt.Sprintf("The component type, must be `%s`", c.ID()),
	})
	if c.Kind != KindSource {
		opts = append(opts, &Option{
			Name:        "inputs",
			Type:        "[string]",
			Category:    "General",
			Examples:    []any{[]any{"my-source-id"}},
			Description: "A list of upstream component ids to accept events from",
		})
	}

	for optName, optRaw := range rawOpts {
		body, ok := optRaw.(map[string]any)
		if !ok {
			return schemaErrf(c.Name, optName, "option body must be a map")
		}
		opt, err := buildOption(c.Name, optName, body)
		if err != nil {
			return err
		}
		opts = append(opts, opt)
	}

	sortOptions(opts)
	c.Options = opts
	return nil
}

func buildComponentSections(c *Component, raw map[string]any, suites TestSuites) error {
	declared := map[string]string{} // title -> body, for merge with derived coverage sections
	var order []string

	if rawSections, ok := raw["sections"].([]any); ok {
		for _, rs := range rawSections {
			m, ok := rs.(map[string]any)
			if !ok {
				return schemaErrf(c.Name, "sections", "section entries must be maps")
			}
			title, _ := m["title"].(string)
			if title == "" {
				return schemaErrf(c.Name, "sections", "section title is required")
			}
			body, _ := m["body"].(string)
			declared[title] = body
			order = append(order, title)
		}
	}

	// Test-coverage sections merge into a declared section of the same
	// title; everything else keeps its declared body untouched.
	coverage := map[string][]string{
		"Correctness": matchSuites(suites.Correctness, c.Name),
		"Performance": matchSuites(suites.Performance, c.Name),
	}

	var sections []Section
	for _, title := range order {
		body := declared[title]
		if tests := coverage[title]; len(tests) > 0 {
			body = appendTestList(body, c, title, tests)
			delete(coverage, title)
		}
		sections = append(sections, newSection(title, body))
	}
	for _, title := range []string{"Correctness", "Performance"} {
		if tests, pending := coverage[title]; pending && len(tests) > 0 {
			sections = append(sections, newSection(title, appendTestList("", c, title, tests)))
		}
	}

	sections = append(sections, newSection("Delivery Guarantee", deliveryGuaranteeBody(c)))
	sections = append(sections, derivedSinkSections(c)...)

	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Title < sections[j].Title })

	var dupes []string
	for i := 1; i < len(sections); i++ {
		if sections[i].Title == sections[i-1].Title {
			dupes = append(dupes, sections[i].Title)
		}
	}
	if len(dupes) > 0 {
		return &DuplicateSectionError{Component: c.Name, Titles: dupes}
	}

	c.Sections = sections
	return nil
}

func appendTestList(body string, c *Component, suite string, tests []string) string {
	var b strings.Builder
	b.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "The `%s` %s participates in the following %s tests:\n\n",
		c.Name, c.Kind, strings.ToLower(suite))
	for _, t := range tests {
		fmt.Fprintf(&b, "* [`%s`][url.%s_test]\n", t, t)
	}
	return b.String()
}

func deliveryGuaranteeBody(c *Component) string {
	return fmt.Sprintf("The `%s` %s has an **%s** delivery guarantee. See [Delivery Guarantees][docs.guarantees] for details.\n",
		c.Name, c.Kind, c.DeliveryGuarantee.Title())
}

// derivedSinkSections synthesizes the standard feature sections for sinks
// from the options they declare. The bodies reference the options in
// backticks so the reference annotator can point readers at them.
func derivedSinkSections(c *Component) []Section {
	if c.Kind != KindSink {
		return nil
	}

	features := []struct {
		title   string
		options []string
	}{
		{"Batching", []string{"batch_size", "batch_timeout"}},
		{"Compression", []string{"compression"}},
		{"Encoding", []string{"encoding"}},
		{"Health Checks", []string{"healthcheck"}},
	}

	byName := map[string]bool{}
	for _, o := range c.Options {
		byName[o.Name] = true
	}

	var out []Section
	for _, f := range features {
		var present []string
		for _, name := range f.options {
			if byName[name] {
				present = append(present, name)
			}
		}
		if len(present) == 0 {
			continue
		}
		var b strings.Builder
		fmt.Fprintf(&b, "%s behavior of the `%s` sink is controlled by the ", f.title, c.Name)
		for i, name := range present {
			if i > 0 {
				b.WriteString(" and ")
			}
			fmt.Fprintf(&b, "`%s`", name)
		}
		if len(present) == 1 {
			b.WriteString(" option.\n")
		} else {
			b.WriteString(" options.\n")
		}
		out = append(out, newSection(f.title, b.String()))
	}
	return out
}
