package pipeline

import (
	"context"
	"path"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/streamfold/docgen/internal/foundation/normalize"
	"github.com/streamfold/docgen/internal/frontmatter"
	"github.com/streamfold/docgen/internal/links"
	"github.com/streamfold/docgen/internal/markdown"
	"github.com/streamfold/docgen/internal/urlcheck"
)

var (
	// Footer lines are reference definitions for registry ids. Stripping
	// them first keeps the stage idempotent across runs.
	footerLineRe = regexp.MustCompile(`(?m)^\[(?:docs|url|images)\.[^\]]+\]:[ \t].*\n?`)

	// Reference usages: ...][docs.aws_s3_sink] and ![...][images.topology].
	refUsageRe = regexp.MustCompile(`\]\[((?:docs|url|images)\.[^\]]+)\]`)
)

// LinkDefinerStage resolves every registry reference in a document, verifies
// the targets, and appends the sorted reference-definition footer. Direct
// links are rejected so all cross-references flow through the registry.
func LinkDefinerStage() Stage {
	return Stage{Name: "links", Fn: defineLinks}
}

func defineLinks(ctx *Context, content string) (string, error) {
	stripped := footerLineRe.ReplaceAllString(content, "")

	raw, body, had, fmErr := frontmatter.Split(stripped)
	if fmErr != nil {
		// The front-matter validator owns that failure; scan everything here.
		raw, body, had = "", stripped, false
	}

	if !linkExempt(ctx, ctx.FilePath) {
		if direct := markdown.DirectLinks(body); len(direct) > 0 {
			d := direct[0]
			label := d.Text
			if label == "" {
				label = d.Destination
			}
			return "", &DirectLinkUsedError{File: ctx.FilePath, Link: label, Target: d.Destination}
		}
	}

	ids := referenceIDs(stripped)
	if len(ids) == 0 {
		return stripped, nil
	}

	footer := make([]string, 0, len(ids))
	for _, id := range ids {
		res, err := ctx.Resolver.Resolve(id, ctx.FilePath)
		if err != nil {
			return "", err
		}
		if err := verifyTarget(ctx, id, res); err != nil {
			return "", err
		}
		footer = append(footer, "["+id+"]: "+res.Target)
	}

	out := frontmatter.Join(raw, strings.TrimRight(body, "\n")+"\n\n"+strings.Join(footer, "\n")+"\n", had)
	return out, nil
}

func linkExempt(ctx *Context, filePath string) bool {
	base := path.Base(filePath)
	if ctx.Exempt.Has(base) {
		return true
	}
	return ctx.Exempt.Has(strings.TrimSuffix(base, path.Ext(base)))
}

func referenceIDs(content string) []string {
	seen := map[string]bool{}
	var ids []string
	for _, m := range refUsageRe.FindAllStringSubmatch(content, -1) {
		if id := m[1]; !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

func verifyTarget(ctx *Context, id string, res links.Resolved) error {
	if res.External() {
		return verifyExternal(ctx, id, res)
	}
	if res.DocPath == "" || !ctx.CheckLocal {
		return nil
	}

	if !ctx.Listing.HasDoc(res.DocPath) {
		return &BrokenLinkError{File: ctx.FilePath, ID: id, Target: res.Target, Reason: "target file not found under docs root"}
	}

	if res.Fragment == "" {
		return nil
	}
	target, err := ctx.readFile(path.Join(ctx.Run.DocsDir, res.DocPath))
	if err != nil {
		return &BrokenLinkError{File: ctx.FilePath, ID: id, Target: res.Target, Reason: "target file unreadable: " + err.Error()}
	}
	_, targetBody, _, err := frontmatter.Split(target)
	if err != nil {
		targetBody = target
	}
	want := normalize.Anchor(res.Fragment)
	for _, h := range markdown.Headings(targetBody) {
		if normalize.Anchor(h) == want {
			return nil
		}
	}
	return &BrokenLinkError{File: ctx.FilePath, ID: id, Target: res.Target,
		Reason: "no heading matches section " + res.Fragment}
}

func verifyExternal(ctx *Context, id string, res links.Resolved) error {
	if ctx.Checker == nil {
		return nil
	}
	runCtx := ctx.Ctx
	if runCtx == nil {
		runCtx = context.Background()
	}

	url := res.Target
	if res.Fragment != "" {
		url = strings.TrimSuffix(url, "#"+res.Fragment)
	}

	check := ctx.Checker.Check(runCtx, url)
	if !check.Broken() {
		return nil
	}

	reason := "unreachable: " + check.Detail
	if check.Status == urlcheck.StatusNotFound {
		reason = "confirmed HTTP 404"
	}
	if ctx.Publisher != nil {
		ctx.Publisher.PublishBrokenLink(runCtx, &urlcheck.BrokenLinkEvent{
			URL:        url,
			LinkID:     id,
			Status:     check.Code,
			Error:      reason,
			SourcePath: ctx.FilePath,
			RunID:      ctx.Run.RunID,
			Timestamp:  time.Now().UTC(),
		})
	}
	return &BrokenLinkError{File: ctx.FilePath, ID: id, Target: url, Reason: reason}
}
