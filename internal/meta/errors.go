package meta

import (
	"fmt"
	"strings"
)

// SchemaError reports component metadata that violates a schema invariant:
// a bad enum value, a malformed relevant_when clause, a duplicate option
// name, a description ending with a period, and so on.
type SchemaError struct {
	Component string
	Field     string
	Message   string
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema error in %q, field %q: %s", e.Component, e.Field, e.Message)
	}
	return fmt.Sprintf("schema error in %q: %s", e.Component, e.Message)
}

func schemaErrf(component, field, format string, args ...any) *SchemaError {
	return &SchemaError{Component: component, Field: field, Message: fmt.Sprintf(format, args...)}
}

// DuplicateSectionError reports section titles that collide after derived
// sections are appended.
type DuplicateSectionError struct {
	Component string
	Titles    []string
}

func (e *DuplicateSectionError) Error() string {
	return fmt.Sprintf("duplicate section titles in %q: %s", e.Component, strings.Join(e.Titles, ", "))
}
