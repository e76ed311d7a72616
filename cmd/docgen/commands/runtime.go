package commands

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/streamfold/docgen/internal/config"
	"github.com/streamfold/docgen/internal/links"
	"github.com/streamfold/docgen/internal/logfields"
	"github.com/streamfold/docgen/internal/meta"
	"github.com/streamfold/docgen/internal/metrics"
	"github.com/streamfold/docgen/internal/pipeline"
	"github.com/streamfold/docgen/internal/presence"
	"github.com/streamfold/docgen/internal/urlcheck"
	"github.com/streamfold/docgen/internal/util/sets"
)

// urlCacheTTL bounds how long a persisted liveness verdict is trusted.
const urlCacheTTL = 24 * time.Hour

var imageExts = sets.New(".svg", ".png", ".jpg", ".jpeg", ".gif")

// runtime is the fully wired run state shared by process and check.
type runtime struct {
	cfg      *config.Config
	root     string
	catalog  *meta.Catalog
	listing  *links.Listing
	pipe     *pipeline.Pipeline
	checker  *urlcheck.Checker
	pub      urlcheck.Publisher
	recorder metrics.Recorder

	// docFiles are repo-root-relative markdown paths under the docs tree.
	docFiles []string
}

func newRuntime(cli *CLI, recorder metrics.Recorder) (*runtime, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, err
	}
	return wireRuntime(cfg, cli.Root, recorder)
}

func wireRuntime(cfg *config.Config, root string, recorder metrics.Recorder) (*runtime, error) {
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}

	catalog, err := meta.LoadCatalog(filepath.Join(root, cfg.Metadata))
	if err != nil {
		return nil, err
	}

	docPaths, err := collectFiles(filepath.Join(root, cfg.DocsDir), func(p string) bool {
		return strings.HasSuffix(p, ".md")
	})
	if err != nil {
		return nil, fmt.Errorf("listing docs tree: %w", err)
	}
	imagePaths, err := collectFiles(filepath.Join(root, cfg.AssetsDir), func(p string) bool {
		return imageExts.Has(path.Ext(p))
	})
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("listing assets tree: %w", err)
	}
	listing := links.NewListing(docPaths, imagePaths)

	static, err := loadStaticTable(filepath.Join(root, cfg.LinkTable))
	if err != nil {
		return nil, err
	}

	run := links.NewRunContext(cfg.DocsDir, cfg.WebsiteHost, cfg.RepoURL, cfg.TestHarnessURL)
	resolver := links.NewResolver(run, static, listing)

	rt := &runtime{
		cfg:      cfg,
		root:     root,
		catalog:  catalog,
		listing:  listing,
		recorder: recorder,
		pub:      urlcheck.NoopPublisher{},
	}
	for _, p := range docPaths {
		rt.docFiles = append(rt.docFiles, path.Join(cfg.DocsDir, p))
	}

	if cfg.CheckURLs {
		opts := []urlcheck.Option{urlcheck.WithRecorder(recorder)}
		if cfg.RequestTimeout != "" {
			timeout, err := time.ParseDuration(cfg.RequestTimeout)
			if err != nil {
				return nil, fmt.Errorf("invalid request_timeout: %w", err)
			}
			opts = append(opts, urlcheck.WithTimeout(timeout))
		}
		if cfg.URLCache != "" {
			cache, err := urlcheck.NewSQLiteCache(cfg.URLCache, urlCacheTTL)
			if err != nil {
				return nil, fmt.Errorf("opening url cache: %w", err)
			}
			opts = append(opts, urlcheck.WithCache(cache))
		}
		rt.checker = urlcheck.NewChecker(opts...)
	}

	if cfg.NATS.URL != "" {
		pub, err := urlcheck.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			slog.Warn("NATS unavailable, broken-link events disabled", "error", err)
		} else {
			rt.pub = pub
		}
	}

	schemaFiles := make(map[string]string, len(cfg.Schemas))
	for name, p := range cfg.Schemas {
		schemaFiles[name] = filepath.Join(root, p)
	}
	schemas, err := pipeline.LoadSchemas(schemaFiles)
	if err != nil {
		return nil, err
	}

	pctx := &pipeline.Context{
		Run:             run,
		Resolver:        resolver,
		Listing:         listing,
		Checker:         rt.checker,
		Publisher:       rt.pub,
		CheckLocal:      true,
		Schemas:         schemas,
		Exempt:          sets.New(cfg.ExemptFiles...),
		LastModifiedDir: cfg.LastModifiedDir,
		ReadFile: func(relPath string) (string, error) {
			data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
			if err != nil {
				return "", err
			}
			return string(data), nil
		},
		Recorder: recorder,
	}
	rt.pipe = pipeline.New(pctx)
	return rt, nil
}

func (rt *runtime) close() {
	if rt.checker != nil {
		if err := rt.checker.Close(); err != nil {
			slog.Warn("Closing url cache failed", "error", err)
		}
	}
	if err := rt.pub.Close(); err != nil {
		slog.Warn("Closing event publisher failed", "error", err)
	}
}

// checkPresence cross-checks the catalog against the component doc files on
// disk, per kind.
func (rt *runtime) checkPresence() error {
	for _, kind := range meta.Kinds {
		prefix := "usage/configuration/" + kind.Plural() + "/"

		docs := sets.New[string]()
		for _, p := range rt.listing.Docs() {
			if strings.HasPrefix(p, prefix) && !strings.Contains(strings.TrimPrefix(p, prefix), "/") {
				docs.Add(strings.TrimSuffix(path.Base(p), ".md"))
			}
		}
		if err := presence.Check(kind, docs, sets.New(rt.catalog.Names(kind)...)); err != nil {
			return err
		}
	}
	return nil
}

// processAll runs every doc through the pipeline. When write is true,
// changed output is written back; the return value counts rewritten files.
func (rt *runtime) processAll(write bool) (int, error) {
	start := time.Now()
	changed := 0

	for _, relPath := range rt.docFiles {
		absPath := filepath.Join(rt.root, filepath.FromSlash(relPath))
		data, err := os.ReadFile(absPath)
		if err != nil {
			return changed, fmt.Errorf("reading %s: %w", relPath, err)
		}

		out, err := rt.pipe.Process(relPath, string(data))
		if err != nil {
			return changed, fmt.Errorf("%s: %w", relPath, err)
		}
		if out == string(data) {
			continue
		}

		changed++
		slog.Debug("Document changed", logfields.File(relPath))
		if write {
			if err := os.WriteFile(absPath, []byte(out), 0o644); err != nil {
				return changed, fmt.Errorf("writing %s: %w", relPath, err)
			}
		}
	}

	rt.recorder.ObserveRunDuration(time.Since(start))
	return changed, nil
}

func collectFiles(dir string, keep func(string) bool) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if keep(rel) {
			out = append(out, rel)
		}
		return nil
	})
	return out, err
}

func loadStaticTable(path string) (links.StaticTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	return links.LoadStaticTable(path)
}
