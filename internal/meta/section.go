package meta

import (
	"regexp"
	"strconv"

	"github.com/streamfold/docgen/internal/foundation/normalize"
)

// Section is a named block of prose attached to a component. Sections are
// created during component construction (declared or derived) and never
// mutated afterwards.
type Section struct {
	Title             string
	Slug              string
	Body              string
	ReferencedOptions []string
	IssueRefs         []int
}

var (
	backtickRefRe = regexp.MustCompile("`([A-Za-z_][A-Za-z0-9_.]*)`")
	issueRefRe    = regexp.MustCompile(`\[url\.issue_(\d+)\]`)
)

// newSection builds an immutable Section from a title and body, scanning the
// body for backtick-quoted option identifiers and issue short-links.
func newSection(title, body string) Section {
	s := Section{
		Title: title,
		Slug:  normalize.Slug(title),
		Body:  body,
	}

	seen := map[string]bool{}
	for _, m := range backtickRefRe.FindAllStringSubmatch(body, -1) {
		if name := m[1]; !seen[name] {
			seen[name] = true
			s.ReferencedOptions = append(s.ReferencedOptions, name)
		}
	}

	for _, m := range issueRefRe.FindAllStringSubmatch(body, -1) {
		if n, err := strconv.Atoi(m[1]); err == nil {
			s.IssueRefs = append(s.IssueRefs, n)
		}
	}

	return s
}
