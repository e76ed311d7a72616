package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectLinks_InlineLink(t *testing.T) {
	links := DirectLinks("See [the docs](https://example.com/docs) for details.\n")
	require.Len(t, links, 1)
	assert.Equal(t, LinkKindInline, links[0].Kind)
	assert.Equal(t, "https://example.com/docs", links[0].Destination)
	assert.Equal(t, "the docs", links[0].Text)
}

func TestDirectLinks_Image(t *testing.T) {
	links := DirectLinks("![diagram](assets/flow.svg)\n")
	require.Len(t, links, 1)
	assert.Equal(t, LinkKindImage, links[0].Kind)
	assert.Equal(t, "assets/flow.svg", links[0].Destination)
}

func TestDirectLinks_AutoLink(t *testing.T) {
	links := DirectLinks("Visit <https://example.com> now.\n")
	require.Len(t, links, 1)
	assert.Equal(t, LinkKindAuto, links[0].Kind)
	assert.Equal(t, "https://example.com", links[0].Destination)
}

func TestDirectLinks_UndefinedReferenceIsNotDirect(t *testing.T) {
	// Without a matching definition the reference stays plain text.
	links := DirectLinks("See [the docs][docs.aws_s3_sink] for details.\n")
	assert.Empty(t, links)
}

func TestDirectLinks_IgnoresCodeSpans(t *testing.T) {
	links := DirectLinks("Use `[not](a-link)` inline.\n\n```\n[also not](a-link)\n```\n")
	assert.Empty(t, links)
}

func TestHeadings_DocumentOrder(t *testing.T) {
	body := "# Top\n\ntext\n\n## How It Works\n\n### Batching\n\nmore\n"
	assert.Equal(t, []string{"Top", "How It Works", "Batching"}, Headings(body))
}

func TestHeadings_WithInlineCode(t *testing.T) {
	headings := Headings("## The `type` option\n")
	require.Len(t, headings, 1)
	assert.Equal(t, "The type option", headings[0])
}
