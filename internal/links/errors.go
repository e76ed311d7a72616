package links

import (
	"fmt"
	"strings"
)

// UndefinedLinkError reports a reference id that no static entry or dynamic
// rule resolves.
type UndefinedLinkError struct {
	ID   string
	File string
}

func (e *UndefinedLinkError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("undefined link %q referenced from %s", e.ID, e.File)
	}
	return fmt.Sprintf("undefined link %q", e.ID)
}

// AmbiguousLinkError reports a fuzzy doc/image match with more than one
// candidate.
type AmbiguousLinkError struct {
	ID         string
	File       string
	Candidates []string
}

func (e *AmbiguousLinkError) Error() string {
	msg := fmt.Sprintf("ambiguous link %q matches %s", e.ID, strings.Join(e.Candidates, ", "))
	if e.File != "" {
		msg += " (referenced from " + e.File + ")"
	}
	return msg
}
