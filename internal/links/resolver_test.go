package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() RunContext {
	return RunContext{
		DocsDir:        "docs",
		WebsiteHost:    "https://docs.streamfold.com",
		RepoURL:        "https://github.com/streamfold/router",
		TestHarnessURL: "https://github.com/streamfold/router-test-harness",
		RunID:          "test-run",
	}
}

func testResolver(docPaths, imagePaths []string, static StaticTable) *Resolver {
	return NewResolver(testContext(), static, NewListing(docPaths, imagePaths))
}

func TestResolve_ComponentDocRule(t *testing.T) {
	r := testResolver([]string{"usage/configuration/sinks/aws_s3.md"}, nil, nil)

	res, err := r.Resolve("docs.aws_s3_sink", "")
	require.NoError(t, err)
	assert.Equal(t, "/usage/configuration/sinks/aws_s3.md", res.Target)
	assert.Equal(t, "usage/configuration/sinks/aws_s3.md", res.DocPath)
	assert.False(t, res.External())
}

func TestResolve_StaticTableWinsOverRules(t *testing.T) {
	static := StaticTable{
		"docs": {"aws_s3_sink": "/overridden/aws_s3.md"},
	}
	r := testResolver([]string{"usage/configuration/sinks/aws_s3.md"}, nil, static)

	res, err := r.Resolve("docs.aws_s3_sink", "")
	require.NoError(t, err)
	assert.Equal(t, "/overridden/aws_s3.md", res.Target)
}

func TestResolve_FuzzyDocMatch(t *testing.T) {
	r := testResolver([]string{"about/guarantees.md", "setup/getting-started.md"}, nil, nil)

	// '-' and '_' are interchangeable, lookup is case-insensitive.
	res, err := r.Resolve("docs.getting_started", "")
	require.NoError(t, err)
	assert.Equal(t, "/setup/getting-started.md", res.Target)
}

func TestResolve_FuzzyDocUndefined(t *testing.T) {
	r := testResolver([]string{"about/guarantees.md"}, nil, nil)

	_, err := r.Resolve("docs.nonexistent", "")
	var undefined *UndefinedLinkError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "docs.nonexistent", undefined.ID)
}

func TestResolve_FuzzyDocAmbiguous(t *testing.T) {
	r := testResolver([]string{"a/foo-bar.md", "b/foo_bar_extra.md"}, nil, nil)

	_, err := r.Resolve("docs.foo", "")
	var ambiguous *AmbiguousLinkError
	require.ErrorAs(t, err, &ambiguous)
	assert.Len(t, ambiguous.Candidates, 2)
}

func TestResolve_FuzzyExactMatchBeatsPrefixMatches(t *testing.T) {
	r := testResolver([]string{"a/foo.md", "b/foo_bar.md"}, nil, nil)

	res, err := r.Resolve("docs.foo", "")
	require.NoError(t, err)
	assert.Equal(t, "/a/foo.md", res.Target)
}

func TestResolve_ImageRule(t *testing.T) {
	r := testResolver(nil, []string{"assets/topology.svg"}, nil)

	res, err := r.Resolve("images.topology", "")
	require.NoError(t, err)
	assert.Equal(t, "/assets/topology.svg", res.Target)
}

func TestResolve_IssueRule(t *testing.T) {
	r := testResolver(nil, nil, nil)

	res, err := r.Resolve("url.issue_1396", "")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/streamfold/router/issues/1396", res.Target)
	assert.True(t, res.External())
}

func TestResolve_SourceFileRule(t *testing.T) {
	r := testResolver(nil, nil, nil)

	res, err := r.Resolve("url.aws_s3_sink_source", "")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/streamfold/router/tree/master/src/sinks/aws_s3", res.Target)
}

func TestResolve_TestHarnessRule(t *testing.T) {
	r := testResolver(nil, nil, nil)

	res, err := r.Resolve("url.aws_s3_correctness_test", "")
	require.NoError(t, err)
	assert.Equal(t, "https://github.com/streamfold/router-test-harness/tree/master/cases/aws_s3_correctness", res.Target)
}

func TestResolve_SectionFragment(t *testing.T) {
	r := testResolver([]string{"usage/configuration/sinks/aws_s3.md"}, nil, nil)

	res, err := r.Resolve("docs.aws_s3_sink.buffers", "")
	require.NoError(t, err)
	assert.Equal(t, "/usage/configuration/sinks/aws_s3.md#buffers", res.Target)
	assert.Equal(t, "buffers", res.Fragment)
	assert.Equal(t, "usage/configuration/sinks/aws_s3.md", res.DocPath)
}

func TestResolve_RelativeNormalizationInsideDocsTree(t *testing.T) {
	r := testResolver([]string{"usage/configuration/sinks/aws_s3.md"}, nil, nil)

	res, err := r.Resolve("docs.aws_s3_sink", "docs/usage/configuration/sources/stdin.md")
	require.NoError(t, err)
	assert.Equal(t, "../../../usage/configuration/sinks/aws_s3.md", res.Target)
}

func TestResolve_TopLevelDocNeedsNoPrefix(t *testing.T) {
	r := testResolver([]string{"usage/configuration/sinks/aws_s3.md"}, nil, nil)

	res, err := r.Resolve("docs.aws_s3_sink", "docs/SUMMARY.md")
	require.NoError(t, err)
	assert.Equal(t, "usage/configuration/sinks/aws_s3.md", res.Target)
}

func TestResolve_OutsideDocsTreeRewritesToWebsite(t *testing.T) {
	r := testResolver([]string{"usage/configuration/sinks/aws_s3.md"}, nil, nil)

	res, err := r.Resolve("docs.aws_s3_sink", "README.md")
	require.NoError(t, err)
	assert.Equal(t, "https://docs.streamfold.com/usage/configuration/sinks/aws_s3", res.Target)
}

func TestResolve_UnknownCategory(t *testing.T) {
	r := testResolver(nil, nil, nil)

	_, err := r.Resolve("pages.foo", "guide.md")
	var undefined *UndefinedLinkError
	require.ErrorAs(t, err, &undefined)
	assert.Equal(t, "guide.md", undefined.File)
}

func TestSplitID(t *testing.T) {
	tests := []struct {
		id       string
		category string
		name     string
		section  string
		wantErr  bool
	}{
		{"docs.aws_s3_sink", "docs", "aws_s3_sink", "", false},
		{"docs.aws_s3_sink.buffers", "docs", "aws_s3_sink", "buffers", false},
		{"url.issue_42", "url", "issue_42", "", false},
		{"images.topology", "images", "topology", "", false},
		{"docs", "", "", "", true},
		{"bogus.name", "", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			category, name, section, err := splitID(tt.id)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.category, category)
			assert.Equal(t, tt.name, name)
			assert.Equal(t, tt.section, section)
		})
	}
}
