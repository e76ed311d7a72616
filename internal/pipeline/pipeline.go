// Package pipeline runs rendered documentation text through the fixed
// post-processing sequence: link definition/checking, section sorting,
// reference annotation, last-modified stamping and front-matter validation.
//
// Every stage is a pure (context, string) -> (string, error) function; a
// document is owned by exactly one stage at a time and the first error
// aborts the whole run.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/streamfold/docgen/internal/links"
	"github.com/streamfold/docgen/internal/metrics"
	"github.com/streamfold/docgen/internal/urlcheck"
	"github.com/streamfold/docgen/internal/util/sets"
)

// Context carries the per-run collaborators plus the file currently being
// processed. Stages never reach for globals.
type Context struct {
	Ctx context.Context

	Run      links.RunContext
	Resolver *links.Resolver
	Listing  *links.Listing

	// Checker is nil when live URL checking is disabled.
	Checker   *urlcheck.Checker
	Publisher urlcheck.Publisher

	// CheckLocal enables existence/anchor verification of local targets.
	CheckLocal bool

	// Schemas validates declared front-matter schemas.
	Schemas *SchemaSet

	// Exempt lists file basenames allowed to use direct links.
	Exempt sets.Set[string]

	// LastModifiedDir is the repo-relative subtree that gets last-modified
	// stamping; files outside it pass through the stage untouched.
	LastModifiedDir string

	// ReadFile reads a repo-root-relative file. Overridable in tests.
	ReadFile func(relPath string) (string, error)

	// Today supplies the stamping date. Overridable in tests.
	Today func() time.Time

	Recorder metrics.Recorder

	// FilePath is the repo-root-relative path of the document in flight.
	FilePath string
}

// forFile returns a copy of the context bound to one document.
func (c *Context) forFile(path string) *Context {
	out := *c
	out.FilePath = path
	return &out
}

func (c *Context) readFile(relPath string) (string, error) {
	if c.ReadFile != nil {
		return c.ReadFile(relPath)
	}
	data, err := os.ReadFile(filepath.Clean(relPath))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (c *Context) today() time.Time {
	if c.Today != nil {
		return c.Today()
	}
	return time.Now()
}

func (c *Context) recorder() metrics.Recorder {
	if c.Recorder != nil {
		return c.Recorder
	}
	return metrics.NoopRecorder{}
}

// Stage is one step of the pipeline.
type Stage struct {
	Name string
	Fn   func(*Context, string) (string, error)
}

// Stages returns the fixed pipeline. The order is load-bearing: each stage
// assumes the text shape left by its predecessor, so callers must not
// reorder it.
func Stages() []Stage {
	return []Stage{
		LinkDefinerStage(),
		SectionSorterStage(),
		ReferenceAnnotatorStage(),
		LastModifiedStage(),
		FrontMatterValidatorStage(),
	}
}

// Pipeline processes documents one at a time through the stage sequence.
type Pipeline struct {
	ctx    *Context
	stages []Stage
}

// New builds a pipeline over the run context. With no explicit stages the
// standard sequence is used.
func New(ctx *Context, stages ...Stage) *Pipeline {
	if len(stages) == 0 {
		stages = Stages()
	}
	return &Pipeline{ctx: ctx, stages: stages}
}

// Process runs one document through every stage and returns the final text.
func (p *Pipeline) Process(filePath, content string) (string, error) {
	ctx := p.ctx.forFile(filePath)
	rec := ctx.recorder()

	for _, stage := range p.stages {
		start := time.Now()
		next, err := stage.Fn(ctx, content)
		rec.ObserveStageDuration(stage.Name, time.Since(start))
		if err != nil {
			rec.IncStageResult(stage.Name, metrics.ResultFailure)
			return "", fmt.Errorf("%s: %w", stage.Name, err)
		}
		rec.IncStageResult(stage.Name, metrics.ResultSuccess)
		content = next
	}

	rec.IncDocumentProcessed()
	return content, nil
}
