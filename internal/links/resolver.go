package links

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Categories a short-link id may belong to.
const (
	CategoryDocs   = "docs"
	CategoryURL    = "url"
	CategoryImages = "images"
)

// Resolved is the outcome of resolving one short-link id.
type Resolved struct {
	// Target is the footer form: an absolute URL, or a path normalized for
	// the referencing file.
	Target string
	// DocPath is the docs-root-relative path of a local target, empty for
	// external URLs. The link checker verifies it against the listing.
	DocPath string
	// Fragment is the optional section part of the id, without '#'.
	Fragment string
}

// External reports whether the target is an absolute URL.
func (r Resolved) External() bool {
	return strings.HasPrefix(r.Target, "http://") || strings.HasPrefix(r.Target, "https://")
}

// StaticTable is the authoritative, explicitly declared id -> target
// mapping, keyed by category then name. It always takes precedence over
// dynamic rules.
type StaticTable map[string]map[string]string

// LoadStaticTable reads the static link table from a YAML file with
// top-level docs/url/images maps.
func LoadStaticTable(path string) (StaticTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading link table: %w", err)
	}
	var table StaticTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("parsing link table: %w", err)
	}
	if table == nil {
		table = StaticTable{}
	}
	return table, nil
}

// Resolver maps short-link ids to paths and URLs. Static entries win;
// otherwise the dynamic rules are tried in declaration order and the first
// match decides.
type Resolver struct {
	ctx     RunContext
	static  StaticTable
	listing *Listing
	rules   []rule
}

type rule struct {
	pattern *regexp.Regexp
	resolve func(r *Resolver, m []string) (string, error)
}

// NewResolver builds a resolver over a static table and the per-run file
// listings.
func NewResolver(ctx RunContext, static StaticTable, listing *Listing) *Resolver {
	if static == nil {
		static = StaticTable{}
	}
	r := &Resolver{ctx: ctx, static: static, listing: listing}
	r.rules = []rule{
		{
			// docs.<name>_<kind> -> component doc path
			pattern: regexp.MustCompile(`^docs\.([a-z0-9_]+?)_(source|transform|sink)$`),
			resolve: func(r *Resolver, m []string) (string, error) {
				return fmt.Sprintf("/usage/configuration/%ss/%s.md", m[2], m[1]), nil
			},
		},
		{
			// docs.<name> -> fuzzy match against doc basenames
			pattern: regexp.MustCompile(`^docs\.(.+)$`),
			resolve: func(r *Resolver, m []string) (string, error) {
				return r.fuzzy(m[0], m[1], r.listing.MatchDocs)
			},
		},
		{
			// images.<name> -> fuzzy match against image assets
			pattern: regexp.MustCompile(`^images\.(.+)$`),
			resolve: func(r *Resolver, m []string) (string, error) {
				return r.fuzzy(m[0], m[1], r.listing.MatchImages)
			},
		},
		{
			// url.issue_<n> -> repository issue
			pattern: regexp.MustCompile(`^url\.issue_([0-9]+)$`),
			resolve: func(r *Resolver, m []string) (string, error) {
				return r.ctx.RepoURL + "/issues/" + m[1], nil
			},
		},
		{
			// url.<name>_<kind>_source -> component source file
			pattern: regexp.MustCompile(`^url\.([a-z0-9_]+?)_(source|transform|sink)_source$`),
			resolve: func(r *Resolver, m []string) (string, error) {
				return fmt.Sprintf("%s/tree/master/src/%ss/%s", r.ctx.RepoURL, m[2], m[1]), nil
			},
		},
		{
			// url.<name>_test -> test harness case
			pattern: regexp.MustCompile(`^url\.([a-z0-9_]+)_test$`),
			resolve: func(r *Resolver, m []string) (string, error) {
				return r.ctx.TestHarnessURL + "/tree/master/cases/" + m[1], nil
			},
		},
	}
	return r
}

// Resolve maps an id of the form category.name[.section] to a target for
// the given referencing file. currentFile is repo-root relative and may be
// empty, in which case root-relative targets are returned unnormalized.
func (r *Resolver) Resolve(id, currentFile string) (Resolved, error) {
	category, name, section, err := splitID(id)
	if err != nil {
		return Resolved{}, &UndefinedLinkError{ID: id, File: currentFile}
	}

	target, err := r.lookup(id, category, name, currentFile)
	if err != nil {
		return Resolved{}, err
	}

	res := Resolved{Fragment: section}
	if strings.HasPrefix(target, "/") {
		res.DocPath = strings.TrimPrefix(target, "/")
		res.Target = r.normalize(target, currentFile)
	} else {
		res.Target = target
	}
	if section != "" {
		res.Target += "#" + section
	}
	return res, nil
}

func (r *Resolver) lookup(id, category, name, currentFile string) (string, error) {
	if byName, ok := r.static[category]; ok {
		if target, ok := byName[name]; ok {
			return target, nil
		}
	}

	key := category + "." + name
	for _, rl := range r.rules {
		m := rl.pattern.FindStringSubmatch(key)
		if m == nil {
			continue
		}
		target, err := rl.resolve(r, m)
		if err != nil {
			if amb, ok := err.(*AmbiguousLinkError); ok {
				amb.File = currentFile
				return "", amb
			}
			if und, ok := err.(*UndefinedLinkError); ok {
				und.File = currentFile
				return "", und
			}
			return "", err
		}
		return target, nil
	}
	return "", &UndefinedLinkError{ID: id, File: currentFile}
}

func (r *Resolver) fuzzy(id, name string, matchFn func(string) []string) (string, error) {
	matches := matchFn(name)
	switch len(matches) {
	case 0:
		return "", &UndefinedLinkError{ID: id}
	case 1:
		return "/" + matches[0], nil
	default:
		return "", &AmbiguousLinkError{ID: id, Candidates: matches}
	}
}

// normalize rewrites a docs-root-relative target for the referencing file:
// files inside the docs tree get a relative path matching their depth, files
// outside get an absolute website URL.
func (r *Resolver) normalize(target, currentFile string) string {
	if currentFile == "" {
		return target
	}
	docsPrefix := r.ctx.DocsDir + "/"
	if r.ctx.DocsDir == "" || !strings.HasPrefix(currentFile, docsPrefix) {
		return r.ctx.WebsiteHost + strings.TrimSuffix(target, ".md")
	}
	rel := strings.TrimPrefix(currentFile, docsPrefix)
	depth := strings.Count(rel, "/")
	if depth == 0 {
		return strings.TrimPrefix(target, "/")
	}
	return strings.Repeat("../", depth) + strings.TrimPrefix(target, "/")
}

func splitID(id string) (category, name, section string, err error) {
	parts := strings.SplitN(id, ".", 2)
	if len(parts) != 2 || parts[1] == "" {
		return "", "", "", fmt.Errorf("malformed link id %q", id)
	}
	category = parts[0]
	switch category {
	case CategoryDocs, CategoryURL, CategoryImages:
	default:
		return "", "", "", fmt.Errorf("unknown link category %q", category)
	}

	name = parts[1]
	if i := strings.LastIndex(name, "."); i > 0 {
		name, section = name[:i], name[i+1:]
	}
	return category, name, section, nil
}
