package links

import (
	"path"
	"sort"
	"strings"

	"github.com/streamfold/docgen/internal/foundation/normalize"
)

// Listing holds the docs-tree file listing and the image asset listing,
// built once per run and read-only afterwards.
type Listing struct {
	docs   []string // paths relative to the docs root
	images []string // paths relative to the assets root

	docsByKey   map[string][]string
	imagesByKey map[string][]string
}

// NewListing indexes doc file paths (relative to the docs root) and image
// asset paths for fuzzy lookup.
func NewListing(docPaths, imagePaths []string) *Listing {
	l := &Listing{
		docs:        append([]string(nil), docPaths...),
		images:      append([]string(nil), imagePaths...),
		docsByKey:   map[string][]string{},
		imagesByKey: map[string][]string{},
	}
	sort.Strings(l.docs)
	sort.Strings(l.images)
	for _, p := range l.docs {
		k := fileKey(p)
		l.docsByKey[k] = append(l.docsByKey[k], p)
	}
	for _, p := range l.images {
		k := fileKey(p)
		l.imagesByKey[k] = append(l.imagesByKey[k], p)
	}
	return l
}

// Docs returns the doc paths, sorted.
func (l *Listing) Docs() []string { return l.docs }

// HasDoc reports whether the exact docs-root-relative path exists.
func (l *Listing) HasDoc(p string) bool {
	i := sort.SearchStrings(l.docs, p)
	return i < len(l.docs) && l.docs[i] == p
}

// Basenames returns the doc basenames without extension, sorted.
func (l *Listing) Basenames() []string {
	out := make([]string, 0, len(l.docs))
	for _, p := range l.docs {
		out = append(out, strings.TrimSuffix(path.Base(p), path.Ext(p)))
	}
	sort.Strings(out)
	return out
}

// MatchDocs fuzzy-matches a link name against doc basenames: case
// insensitive, '-' and '_' interchangeable. An exact key match wins over
// prefix matches; prefix matches ("foo" against "foo_bar") are only
// consulted when no exact match exists.
func (l *Listing) MatchDocs(name string) []string {
	return match(l.docsByKey, name)
}

// MatchImages fuzzy-matches a link name against image asset basenames.
func (l *Listing) MatchImages(name string) []string {
	return match(l.imagesByKey, name)
}

func match(index map[string][]string, name string) []string {
	key := normalize.FuzzyKey(name)
	if exact := index[key]; len(exact) > 0 {
		return exact
	}
	var out []string
	for k, paths := range index {
		if strings.HasPrefix(k, key+"_") {
			out = append(out, paths...)
		}
	}
	sort.Strings(out)
	return out
}

func fileKey(p string) string {
	base := path.Base(p)
	return normalize.FuzzyKey(strings.TrimSuffix(base, path.Ext(base)))
}
