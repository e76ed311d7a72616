package links

import "github.com/google/uuid"

// RunContext carries the immutable roots and identifiers for one run. It is
// threaded explicitly through every stage instead of living in package-level
// globals so stages stay unit-testable with literal fixtures.
type RunContext struct {
	// DocsDir is the path of the docs tree relative to the repository root,
	// e.g. "docs". Root-relative link targets are interpreted against it.
	DocsDir string

	// WebsiteHost is the absolute host serving the docs tree, used when a
	// root-relative target must be rewritten for a file outside the tree.
	WebsiteHost string

	// RepoURL is the project repository, used to construct issue and
	// source-file URLs.
	RepoURL string

	// TestHarnessURL is the repository of the correctness/performance test
	// harness.
	TestHarnessURL string

	// RunID tags log lines and published events from this run.
	RunID string
}

// NewRunContext fills in a fresh run id.
func NewRunContext(docsDir, websiteHost, repoURL, testHarnessURL string) RunContext {
	return RunContext{
		DocsDir:        docsDir,
		WebsiteHost:    websiteHost,
		RepoURL:        repoURL,
		TestHarnessURL: testHarnessURL,
		RunID:          uuid.NewString(),
	}
}
