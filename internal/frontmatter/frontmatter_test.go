package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontMatter_ReturnsBodyOnly(t *testing.T) {
	input := "# Title\n\nHello\n"

	raw, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, raw)
	require.Equal(t, input, body)
}

func TestSplit_YAMLBlock_SplitsRawAndBody(t *testing.T) {
	raw, body, had, err := Split("---\ntitle: Foo\n---\n# Title\n")
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "title: Foo\n", raw)
	require.Equal(t, "# Title\n", body)
}

func TestSplit_EmptyBlock_SplitsAsHadWithEmptyRaw(t *testing.T) {
	raw, body, had, err := Split("---\n---\n# Title\n")
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, raw)
	require.Equal(t, "# Title\n", body)
}

func TestSplit_ClosingDelimiterAtEOF_Splits(t *testing.T) {
	raw, body, had, err := Split("---\na: 1\n---")
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, "a: 1\n", raw)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter_ReturnsError(t *testing.T) {
	_, _, had, err := Split("---\ntitle: Foo\n# Title\n")
	require.Error(t, err)
	require.ErrorIs(t, err, ErrMissingClosingDelimiter)
	require.False(t, had)
}

func TestJoin_RoundTrip_ReconstructsOriginal(t *testing.T) {
	cases := []string{
		"# Title\n\nHello\n",
		"---\ntitle: Foo\nweight: 3\n---\n# Title\n",
		"---\n---\nbody\n",
	}
	for _, input := range cases {
		raw, body, had, err := Split(input)
		require.NoError(t, err)
		require.Equal(t, input, Join(raw, body, had))
	}
}

func TestParse_Fields(t *testing.T) {
	fields, err := Parse("title: Foo\nbeta: true\n")
	require.NoError(t, err)
	require.Equal(t, "Foo", fields["title"])
	require.Equal(t, true, fields["beta"])
}

func TestParse_Empty_ReturnsEmptyMap(t *testing.T) {
	fields, err := Parse("")
	require.NoError(t, err)
	require.NotNil(t, fields)
	require.Empty(t, fields)
}

func TestParse_Invalid_ReturnsError(t *testing.T) {
	_, err := Parse("title: [unclosed\n")
	require.Error(t, err)
}

func TestSchema_DeclaredAndAbsent(t *testing.T) {
	name, ok := Schema(map[string]any{"$schema": "component"})
	require.True(t, ok)
	require.Equal(t, "component", name)

	_, ok = Schema(map[string]any{"title": "Foo"})
	require.False(t, ok)
}
