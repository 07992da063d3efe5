package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileKeySlugsUnsafeNames(t *testing.T) {
	key := fileKey("projects/p1", "My File (1).PNG")

	assert.True(t, strings.HasPrefix(key, "projects/p1/"), key)
	assert.True(t, strings.HasSuffix(key, "_my-file-1.png"), key)
}

func TestFileKeyStripsDirectories(t *testing.T) {
	key := fileKey("users/u1", "some/dir/avatar.jpg")

	assert.True(t, strings.HasPrefix(key, "users/u1/"), key)
	assert.True(t, strings.HasSuffix(key, "_avatar.jpg"), key)
	assert.NotContains(t, key, "dir")
}

func TestFileKeyNoExtension(t *testing.T) {
	key := fileKey("projects/p1", "README")

	assert.True(t, strings.HasSuffix(key, "_readme"), key)
}
