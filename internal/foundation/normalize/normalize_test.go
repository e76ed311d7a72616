package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Delivery Guarantee", "delivery-guarantee"},
		{"  File Rotation  ", "file-rotation"},
		{"Résumé Parsing", "resume-parsing"},
		{"Adaptive Request Concurrency", "adaptive-request-concurrency"},
		{"already-sluggy_name", "already-sluggy_name"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slug(tc.in), "Slug(%q)", tc.in)
	}
}

func TestFuzzyKeyFoldsSeparators(t *testing.T) {
	assert.Equal(t, FuzzyKey("foo-bar"), FuzzyKey("foo_bar"))
	assert.Equal(t, FuzzyKey("AWS-S3"), FuzzyKey("aws_s3"))
	assert.NotEqual(t, FuzzyKey("foo_bar"), FuzzyKey("foo_baz"))
}

func TestSuiteKey(t *testing.T) {
	assert.Equal(t, "file_tcp_performance", SuiteKey("File -> TCP Performance"))
	assert.Equal(t, "aws_s3", SuiteKey("aws_s3"))
	assert.Equal(t, "x", SuiteKey("  x!!"))
}

func TestAnchorFoldsHyphenAndSpace(t *testing.T) {
	assert.Equal(t, Anchor("event-model"), Anchor("Event Model"))
	assert.NotEqual(t, Anchor("event-model"), Anchor("Event Models"))
}
