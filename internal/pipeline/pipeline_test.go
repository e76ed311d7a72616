package pipeline

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamfold/docgen/internal/links"
	"github.com/streamfold/docgen/internal/metrics"
	"github.com/streamfold/docgen/internal/util/sets"
)

const pipelineDoc = `---
title: File Source
---
# File Source

Reads events from files. See [the HTTP sink][docs.http_sink].

## How It Works

### Startup [[sort]]

An initial scan runs before tailing begins.

### File Rotation

Handled via ` + "`fingerprint_bytes`" + `.

### Auto Discovery

Files are found by glob.

## Options

fingerprint_bytes: identity bytes.[[references:fingerprint_bytes]]
`

func testPipelineContext(files map[string]string) *Context {
	run := links.RunContext{
		DocsDir:     "docs",
		WebsiteHost: "https://docs.streamfold.dev",
		RepoURL:     "https://github.com/streamfold/router",
		RunID:       "test-run",
	}
	listing := links.NewListing([]string{
		"usage/configuration/sources/file.md",
		"usage/configuration/sinks/http.md",
	}, nil)

	return &Context{
		Ctx:             context.Background(),
		Run:             run,
		Resolver:        links.NewResolver(run, nil, listing),
		Listing:         listing,
		CheckLocal:      true,
		Exempt:          sets.New("SUMMARY.md"),
		LastModifiedDir: "docs/usage",
		ReadFile: func(p string) (string, error) {
			content, ok := files[p]
			if !ok {
				return "", fs.ErrNotExist
			}
			return content, nil
		},
		Today: func() time.Time {
			return time.Date(2026, time.August, 29, 0, 0, 0, 0, time.UTC)
		},
	}
}

func TestPipelineProcessRunsAllStages(t *testing.T) {
	file := "docs/usage/configuration/sources/file.md"
	files := map[string]string{}
	p := New(testPipelineContext(files))

	out, err := p.Process(file, pipelineDoc)
	require.NoError(t, err)

	assert.Contains(t, out, `last_modified_on: "2026-08-29"`)
	assert.NotContains(t, out, sortMarker)
	assert.NotContains(t, out, "[[references:")
	assert.Contains(t, out, "See [File Rotation](#file-rotation) for more info.")
	assert.Contains(t, out, "[docs.http_sink]: ../../../usage/configuration/sinks/http.md")

	// Sorted siblings under How It Works.
	assert.Less(t, strings.Index(out, "### Auto Discovery"), strings.Index(out, "### File Rotation"))
}

func TestPipelineProcessIsIdempotent(t *testing.T) {
	file := "docs/usage/configuration/sources/file.md"
	files := map[string]string{}
	p := New(testPipelineContext(files))

	first, err := p.Process(file, pipelineDoc)
	require.NoError(t, err)

	files[file] = first
	second, err := p.Process(file, first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPipelineProcessWrapsStageErrors(t *testing.T) {
	p := New(testPipelineContext(nil))

	_, err := p.Process("docs/usage/x.md", "bad [direct](https://example.com) link\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "links: ")
}

func TestPipelineRecordsMetrics(t *testing.T) {
	rec := &countingRecorder{}
	ctx := testPipelineContext(map[string]string{})
	ctx.Recorder = rec
	p := New(ctx)

	_, err := p.Process("docs/usage/configuration/sources/file.md", pipelineDoc)
	require.NoError(t, err)

	assert.Equal(t, len(Stages()), rec.stages)
	assert.Equal(t, 1, rec.documents)
}

type countingRecorder struct {
	metrics.NoopRecorder
	stages    int
	documents int
}

func (r *countingRecorder) IncStageResult(string, metrics.ResultLabel) { r.stages++ }
func (r *countingRecorder) IncDocumentProcessed()                      { r.documents++ }
