package presence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamfold/docgen/internal/meta"
	"github.com/streamfold/docgen/internal/util/sets"
)

func TestCheck_InSync(t *testing.T) {
	err := Check(meta.KindSink,
		sets.New("aws_s3", "kafka", "README"),
		sets.New("aws_s3", "kafka"))
	assert.NoError(t, err)
}

func TestCheck_ReportsBothDirections(t *testing.T) {
	err := Check(meta.KindSink,
		sets.New("a", "c"),
		sets.New("a", "b"))

	var mismatch *ComponentDocMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, meta.KindSink, mismatch.Kind)
	assert.Equal(t, []string{"b"}, mismatch.MissingDocs)
	assert.Equal(t, []string{"c"}, mismatch.OrphanedDocs)
	assert.Contains(t, mismatch.Error(), "missing docs: b")
	assert.Contains(t, mismatch.Error(), "without components: c")
}

func TestCheck_IndexEntriesExcluded(t *testing.T) {
	tests := []struct {
		name  string
		entry string
	}{
		{"readme", "README"},
		{"index", "index"},
		{"summary", "SUMMARY"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(meta.KindSource, sets.New("stdin", tt.entry), sets.New("stdin"))
			assert.NoError(t, err)
		})
	}
}
