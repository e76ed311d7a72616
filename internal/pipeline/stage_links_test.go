package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamfold/docgen/internal/links"
	"github.com/streamfold/docgen/internal/urlcheck"
	"github.com/streamfold/docgen/internal/util/sets"
)

func testLinkContext(t *testing.T) *Context {
	t.Helper()

	run := links.RunContext{
		DocsDir:        "docs",
		WebsiteHost:    "https://docs.streamfold.dev",
		RepoURL:        "https://github.com/streamfold/router",
		TestHarnessURL: "https://github.com/streamfold/router-test-harness",
		RunID:          "test-run",
	}
	listing := links.NewListing(
		[]string{
			"usage/configuration/sources/file.md",
			"usage/configuration/sinks/http.md",
			"about/concepts.md",
		},
		[]string{"topology.svg"},
	)
	resolver := links.NewResolver(run, links.StaticTable{
		"url": {"rust": "https://www.rust-lang.org"},
	}, listing)

	files := map[string]string{
		"docs/about/concepts.md": "---\ntitle: Concepts\n---\n## Event Model\n\nbody\n",
	}

	return &Context{
		Ctx:        context.Background(),
		Run:        run,
		Resolver:   resolver,
		Listing:    listing,
		CheckLocal: true,
		Exempt:     sets.New("SUMMARY.md"),
		ReadFile: func(p string) (string, error) {
			return files[p], nil
		},
		FilePath: "docs/usage/configuration/sources/file.md",
	}
}

func TestDefineLinksAppendsSortedFooter(t *testing.T) {
	ctx := testLinkContext(t)

	in := "# File Source\n\nSee [the HTTP sink][docs.http_sink] and [Rust][url.rust].\n"
	out, err := defineLinks(ctx, in)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(out,
		"\n\n[docs.http_sink]: ../../../usage/configuration/sinks/http.md\n[url.rust]: https://www.rust-lang.org\n"))
}

func TestDefineLinksIsIdempotent(t *testing.T) {
	ctx := testLinkContext(t)

	in := "# File Source\n\nSee [the HTTP sink][docs.http_sink].\n"
	once, err := defineLinks(ctx, in)
	require.NoError(t, err)
	twice, err := defineLinks(ctx, once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}

func TestDefineLinksRejectsDirectLinks(t *testing.T) {
	ctx := testLinkContext(t)

	_, err := defineLinks(ctx, "See [here](https://example.com/page).\n")
	var direct *DirectLinkUsedError
	require.ErrorAs(t, err, &direct)
	assert.Equal(t, "https://example.com/page", direct.Target)
}

func TestDefineLinksExemptFileMayUseDirectLinks(t *testing.T) {
	ctx := testLinkContext(t)
	ctx.FilePath = "docs/SUMMARY.md"

	out, err := defineLinks(ctx, "* [Sources](usage/configuration/sources/file.md)\n")
	require.NoError(t, err)
	assert.Contains(t, out, "(usage/configuration/sources/file.md)")
}

func TestDefineLinksUndefinedReference(t *testing.T) {
	ctx := testLinkContext(t)

	_, err := defineLinks(ctx, "See [nothing][docs.nope].\n")
	var undef *links.UndefinedLinkError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "docs.nope", undef.ID)
}

func TestDefineLinksAmbiguousReference(t *testing.T) {
	ctx := testLinkContext(t)
	ctx.Listing = links.NewListing(
		[]string{"guides/foo-bar.md", "guides/foo_bar_extra.md"},
		nil,
	)
	ctx.Resolver = links.NewResolver(ctx.Run, nil, ctx.Listing)

	_, err := defineLinks(ctx, "See [foo][docs.foo].\n")
	var amb *links.AmbiguousLinkError
	require.ErrorAs(t, err, &amb)
	assert.Len(t, amb.Candidates, 2)
}

func TestDefineLinksVerifiesSectionAnchor(t *testing.T) {
	ctx := testLinkContext(t)

	out, err := defineLinks(ctx, "See [concepts][docs.concepts.event-model].\n")
	require.NoError(t, err)
	assert.Contains(t, out, "[docs.concepts.event-model]: ../../../about/concepts.md#event-model")

	_, err = defineLinks(ctx, "See [concepts][docs.concepts.no-such-section].\n")
	var broken *BrokenLinkError
	require.ErrorAs(t, err, &broken)
	assert.Contains(t, broken.Reason, "no heading matches")
}

func TestDefineLinksMissingLocalTarget(t *testing.T) {
	ctx := testLinkContext(t)

	_, err := defineLinks(ctx, "See [it][docs.kafka_sink].\n")
	var broken *BrokenLinkError
	require.ErrorAs(t, err, &broken)
	assert.Contains(t, broken.Reason, "not found")
}

func TestDefineLinksExternalCheck(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx := testLinkContext(t)
	ctx.Resolver = links.NewResolver(ctx.Run, links.StaticTable{
		"url": {"ok": srv.URL + "/fine", "gone": srv.URL + "/gone"},
	}, ctx.Listing)
	ctx.Checker = urlcheck.NewChecker()

	out, err := defineLinks(ctx, "See [ok][url.ok].\n")
	require.NoError(t, err)
	assert.Contains(t, out, "[url.ok]: "+srv.URL+"/fine")

	_, err = defineLinks(ctx, "See [gone][url.gone].\n")
	var broken *BrokenLinkError
	require.ErrorAs(t, err, &broken)
	assert.Equal(t, "confirmed HTTP 404", broken.Reason)
}

func TestDefineLinksPublishesBrokenLinkEvent(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	var events []*urlcheck.BrokenLinkEvent
	ctx := testLinkContext(t)
	ctx.Resolver = links.NewResolver(ctx.Run, links.StaticTable{
		"url": {"gone": srv.URL + "/gone"},
	}, ctx.Listing)
	ctx.Checker = urlcheck.NewChecker()
	ctx.Publisher = publisherFunc(func(e *urlcheck.BrokenLinkEvent) {
		events = append(events, e)
	})

	_, err := defineLinks(ctx, "See [gone][url.gone].\n")
	require.Error(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "url.gone", events[0].LinkID)
	assert.Equal(t, "test-run", events[0].RunID)
}

type publisherFunc func(*urlcheck.BrokenLinkEvent)

func (f publisherFunc) PublishBrokenLink(_ context.Context, e *urlcheck.BrokenLinkEvent) { f(e) }
func (f publisherFunc) Close() error                                                     { return nil }
