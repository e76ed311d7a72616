package logfields

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttrKeysAreStable(t *testing.T) {
	assert.Equal(t, KeyFile, File("docs/x.md").Key)
	assert.Equal(t, "docs/x.md", File("docs/x.md").Value.String())
	assert.Equal(t, KeyLinkID, LinkID("docs.foo").Key)
	assert.Equal(t, KeyDocuments, Documents(3).Key)
	assert.Equal(t, int64(3), Documents(3).Value.Int64())
}

func TestErrorAttrHandlesNil(t *testing.T) {
	assert.Equal(t, "", Error(nil).Value.String())
	assert.Equal(t, "boom", Error(errors.New("boom")).Value.String())
}
