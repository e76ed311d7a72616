// Package frontmatter splits, parses and re-serializes the YAML metadata
// block at the top of a document. It is deliberately byte-oriented: the
// pipeline stages that use it must be idempotent, so the exact delimiter and
// newline shape of the input is preserved on the way back out.
package frontmatter

import (
	"errors"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaField is the front-matter key naming the validation schema, when one
// is declared.
const SchemaField = "$schema"

// ErrMissingClosingDelimiter indicates the document started with a front
// matter delimiter but never closed it.
var ErrMissingClosingDelimiter = errors.New("front matter opening delimiter found but closing delimiter is missing")

const delimiter = "---"

// Split separates the leading `---` delimited YAML block from the body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content string) (raw string, body string, had bool, err error) {
	open := delimiter + "\n"
	if !strings.HasPrefix(content, open) {
		return "", content, false, nil
	}

	rest := content[len(open):]
	if strings.HasPrefix(rest, open) {
		// Empty block: "---\n---\n...".
		return "", rest[len(open):], true, nil
	}

	closeSeq := "\n" + delimiter + "\n"
	idx := strings.Index(rest, closeSeq)
	if idx < 0 {
		// A close on the last line without a trailing newline still counts.
		if strings.HasSuffix(rest, "\n"+delimiter) {
			return rest[:len(rest)-len(delimiter)], "", true, nil
		}
		return "", "", false, ErrMissingClosingDelimiter
	}
	return rest[:idx+1], rest[idx+len(closeSeq):], true, nil
}

// Join reassembles a document from raw front matter and body. If had is
// false, Join returns body as-is.
func Join(raw string, body string, had bool) string {
	if !had {
		return body
	}
	var b strings.Builder
	b.Grow(len(delimiter)*2 + len(raw) + len(body) + 2)
	b.WriteString(delimiter)
	b.WriteByte('\n')
	b.WriteString(raw)
	b.WriteString(delimiter)
	b.WriteByte('\n')
	b.WriteString(body)
	return b.String()
}

// Parse decodes raw YAML front matter (without delimiters) into a map.
// Empty input yields an empty, non-nil map.
func Parse(raw string) (map[string]any, error) {
	if strings.TrimSpace(raw) == "" {
		return map[string]any{}, nil
	}
	var fields map[string]any
	if err := yaml.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Schema returns the declared validation schema name, if any.
func Schema(fields map[string]any) (string, bool) {
	v, ok := fields[SchemaField]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
