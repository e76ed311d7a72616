// Package config loads the run configuration consumed by the docgen
// pipeline: tree roots, the metadata and link-table locations, and the
// link-checking switches.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// NATSConfig configures optional broken-link event publishing.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Config is the full run configuration.
type Config struct {
	// DocsDir is the docs tree, relative to the repository root.
	DocsDir string `yaml:"docs_dir"`
	// AssetsDir is the image asset tree, relative to the repository root.
	AssetsDir string `yaml:"assets_dir"`
	// WebsiteHost serves the docs tree, used when rewriting root-relative
	// links for files outside it.
	WebsiteHost string `yaml:"website_host"`
	// RepoURL is the project repository (issue and source links).
	RepoURL string `yaml:"repo_url"`
	// TestHarnessURL is the correctness/performance harness repository.
	TestHarnessURL string `yaml:"test_harness_url"`

	// Metadata is the component metadata file.
	Metadata string `yaml:"metadata"`
	// LinkTable is the static link table file.
	LinkTable string `yaml:"link_table"`
	// Schemas maps front-matter schema names to JSON schema files.
	Schemas map[string]string `yaml:"schemas"`

	// CheckURLs enables live HEAD checks of external links. Off it keeps
	// runs hermetic; resolution and footer generation still happen.
	CheckURLs bool `yaml:"check_urls"`
	// URLCache is an optional sqlite file persisting liveness results
	// across runs. Empty means a per-run in-memory cache.
	URLCache string `yaml:"url_cache"`
	// RequestTimeout bounds each HEAD request, e.g. "10s".
	RequestTimeout string `yaml:"request_timeout"`

	// ExemptFiles may use direct links (index/summary pages).
	ExemptFiles []string `yaml:"exempt_files"`

	// LastModifiedDir is the subtree whose files get a last_modified_on
	// front-matter date stamped on content changes.
	LastModifiedDir string `yaml:"last_modified_dir"`

	NATS NATSConfig `yaml:"nats"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		DocsDir:         "docs",
		AssetsDir:       "assets",
		Metadata:        ".meta.yml",
		LinkTable:       ".links.yml",
		CheckURLs:       true,
		RequestTimeout:  "10s",
		ExemptFiles:     []string{"SUMMARY.md"},
		LastModifiedDir: "docs/usage",
		NATS:            NATSConfig{Subject: "docgen.broken-links"},
	}
}

// Load reads a YAML config file and applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv lets CI flip the network-facing switches without editing the
// checked-in config.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv("DOCGEN_CHECK_URLS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			c.CheckURLs = b
		}
	}
	if v, ok := os.LookupEnv("DOCGEN_URL_CACHE"); ok {
		c.URLCache = v
	}
	if v, ok := os.LookupEnv("DOCGEN_NATS_URL"); ok {
		c.NATS.URL = v
	}
}
