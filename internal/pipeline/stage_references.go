package pipeline

import (
	"regexp"
	"strings"

	"github.com/streamfold/docgen/internal/foundation/normalize"
)

var (
	referencePlaceholderRe = regexp.MustCompile(`\[\[references:([^\]]+)\]\]`)
	howItWorksRe           = regexp.MustCompile(`(?m)^## How It Works[ \t]*$`)
	topLevelHeadingRe      = regexp.MustCompile(`(?m)^## [^#\n]`)
	subsectionTitleRe      = regexp.MustCompile(`(?m)^### (.+)$`)
)

// ReferenceAnnotatorStage expands [[references:TERM]] placeholders into
// "see also" links pointing at the How It Works subsections that mention
// TERM. A placeholder with no referencing subsection resolves to nothing,
// so every placeholder is consumed either way.
func ReferenceAnnotatorStage() Stage {
	return Stage{Name: "references", Fn: annotateReferences}
}

func annotateReferences(ctx *Context, content string) (string, error) {
	if !referencePlaceholderRe.MatchString(content) {
		return content, nil
	}

	region := howItWorksRegion(content)

	out := referencePlaceholderRe.ReplaceAllStringFunc(content, func(m string) string {
		term := referencePlaceholderRe.FindStringSubmatch(m)[1]
		titles := referencingSubsections(region, term)
		if len(titles) == 0 {
			return ""
		}
		parts := make([]string, len(titles))
		for i, t := range titles {
			parts[i] = "[" + t + "](#" + normalize.Slug(t) + ")"
		}
		return " See " + strings.Join(parts, " and ") + " for more info."
	})
	return out, nil
}

// howItWorksRegion isolates the text between the "## How It Works" heading
// and the next top-level heading. Annotation never consults anything
// outside it.
func howItWorksRegion(content string) string {
	loc := howItWorksRe.FindStringIndex(content)
	if loc == nil {
		return ""
	}
	rest := content[loc[1]:]
	if next := topLevelHeadingRe.FindStringIndex(rest); next != nil {
		rest = rest[:next[0]]
	}
	return rest
}

// referencingSubsections finds the ### titles whose text precedes each
// mention of term, options as `term`, sections as bare text. First-seen
// order is preserved, duplicates dropped.
func referencingSubsections(region, term string) []string {
	if region == "" {
		return nil
	}

	parts := strings.Split(region, "`"+term+"`")
	if len(parts) == 1 {
		parts = strings.Split(region, term)
	}
	if len(parts) == 1 {
		return nil
	}

	seen := map[string]bool{}
	var titles []string
	prefix := ""
	for _, part := range parts[:len(parts)-1] {
		prefix += part
		matches := subsectionTitleRe.FindAllStringSubmatch(prefix, -1)
		if len(matches) == 0 {
			continue
		}
		title := strings.TrimSpace(matches[len(matches)-1][1])
		if !seen[title] {
			seen[title] = true
			titles = append(titles, title)
		}
	}
	return titles
}
