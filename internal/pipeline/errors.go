package pipeline

import (
	"fmt"
	"strings"
)

// DirectLinkUsedError reports a markdown link carrying a literal target
// instead of a registry reference id.
type DirectLinkUsedError struct {
	File   string
	Link   string
	Target string
}

func (e *DirectLinkUsedError) Error() string {
	return fmt.Sprintf("direct link to %q in %s: route it through the link registry as [%s][<category>.<name>]",
		e.Target, e.File, e.Link)
}

// BrokenLinkError reports a resolved target that does not hold up: a missing
// local file, a missing section anchor, or a dead external URL.
type BrokenLinkError struct {
	File   string
	ID     string
	Target string
	Reason string
}

func (e *BrokenLinkError) Error() string {
	return fmt.Sprintf("broken link %q -> %q in %s: %s", e.ID, e.Target, e.File, e.Reason)
}

// FrontMatterParseError reports front matter that is not valid YAML.
type FrontMatterParseError struct {
	File string
	Err  error
}

func (e *FrontMatterParseError) Error() string {
	return fmt.Sprintf("invalid front matter in %s: %v", e.File, e.Err)
}

func (e *FrontMatterParseError) Unwrap() error { return e.Err }

// SchemaValidationError reports front matter violating its declared schema.
// Messages are capped so one malformed file cannot flood the report; the
// offending front matter is included for diagnosability.
type SchemaValidationError struct {
	File        string
	Schema      string
	Messages    []string
	FrontMatter string
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("front matter of %s violates schema %q:\n  %s\noffending front matter:\n%s",
		e.File, e.Schema, strings.Join(e.Messages, "\n  "), indent(e.FrontMatter))
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	return "  " + strings.Join(lines, "\n  ")
}
