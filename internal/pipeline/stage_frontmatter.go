package pipeline

import (
	"strings"

	"github.com/streamfold/docgen/internal/frontmatter"
)

// maxSchemaMessages caps how many violations a single document may report.
const maxSchemaMessages = 50

// FrontMatterValidatorStage parses the document's front matter and, when a
// $schema is declared, validates the fields against it. The stage never
// rewrites content; it runs last so every earlier stage saw the same text it
// validated.
func FrontMatterValidatorStage() Stage {
	return Stage{Name: "frontmatter", Fn: validateFrontMatter}
}

func validateFrontMatter(ctx *Context, content string) (string, error) {
	raw, _, had, err := frontmatter.Split(content)
	if err != nil {
		return "", &FrontMatterParseError{File: ctx.FilePath, Err: err}
	}
	if !had {
		return content, nil
	}

	fields, err := frontmatter.Parse(raw)
	if err != nil {
		return "", &FrontMatterParseError{File: ctx.FilePath, Err: err}
	}

	name, declared := frontmatter.Schema(fields)
	if !declared || ctx.Schemas == nil {
		return content, nil
	}

	if err := ctx.Schemas.Validate(name, fields); err != nil {
		return "", &SchemaValidationError{
			File:        ctx.FilePath,
			Schema:      name,
			Messages:    schemaMessages(err),
			FrontMatter: raw,
		}
	}
	return content, nil
}

// schemaMessages flattens a validation error into per-violation lines,
// capped at maxSchemaMessages.
func schemaMessages(err error) []string {
	var msgs []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		msgs = append(msgs, line)
		if len(msgs) == maxSchemaMessages {
			msgs = append(msgs, "further violations omitted")
			break
		}
	}
	return msgs
}
