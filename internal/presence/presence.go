// Package presence cross-checks the component catalog against the doc files
// actually present on disk, once per component kind.
package presence

import (
	"fmt"
	"strings"

	"github.com/streamfold/docgen/internal/meta"
	"github.com/streamfold/docgen/internal/util/sets"
)

// ComponentDocMismatchError reports components without a doc file and doc
// files without a component, for one kind.
type ComponentDocMismatchError struct {
	Kind         meta.Kind
	MissingDocs  []string // component names lacking a doc file
	OrphanedDocs []string // doc basenames lacking a component
}

func (e *ComponentDocMismatchError) Error() string {
	var parts []string
	if len(e.MissingDocs) > 0 {
		parts = append(parts, fmt.Sprintf("components missing docs: %s", strings.Join(e.MissingDocs, ", ")))
	}
	if len(e.OrphanedDocs) > 0 {
		parts = append(parts, fmt.Sprintf("docs without components: %s", strings.Join(e.OrphanedDocs, ", ")))
	}
	return fmt.Sprintf("%s docs out of sync with metadata: %s", e.Kind, strings.Join(parts, "; "))
}

// index pages live alongside component docs but have no component.
func isIndexEntry(name string) bool {
	switch strings.ToLower(name) {
	case "index", "readme", "summary":
		return true
	}
	return false
}

// Check compares the doc-file basenames (without extension) of one kind's
// doc directory against the catalog's component names. Either direction of
// drift fails.
func Check(kind meta.Kind, docBasenames sets.Set[string], componentNames sets.Set[string]) error {
	docs := docBasenames.Clone()
	for name := range docs {
		if isIndexEntry(name) {
			docs.Delete(name)
		}
	}

	missing := sets.SortedStrings(componentNames.Difference(docs))
	orphaned := sets.SortedStrings(docs.Difference(componentNames))
	if len(missing) == 0 && len(orphaned) == 0 {
		return nil
	}
	return &ComponentDocMismatchError{Kind: kind, MissingDocs: missing, OrphanedDocs: orphaned}
}
