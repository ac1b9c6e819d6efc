package rendering

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithTransientFile_RemovedAfterSuccess(t *testing.T) {
	var seen string
	err := WithTransientFile("hello", "md", func(path string) error {
		seen = path
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, "hello", string(content))
		assert.True(t, strings.HasSuffix(path, ".md"))
		return nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(seen)
	assert.True(t, os.IsNotExist(statErr), "transient file should be removed")
}

func TestWithTransientFile_RemovedAfterError(t *testing.T) {
	boom := errors.New("boom")
	var seen string

	err := WithTransientFile("hello", "md", func(path string) error {
		seen = path
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, statErr := os.Stat(seen)
	assert.True(t, os.IsNotExist(statErr), "transient file should be removed")
}

func TestWithTransientFile_RemovedAfterPanic(t *testing.T) {
	var seen string

	assert.Panics(t, func() {
		_ = WithTransientFile("hello", "md", func(path string) error {
			seen = path
			panic("renderer exploded")
		})
	})

	require.NotEmpty(t, seen)
	_, statErr := os.Stat(seen)
	assert.True(t, os.IsNotExist(statErr), "transient file should be removed")
}

func TestWithTransientFile_CallbackMayRemoveFile(t *testing.T) {
	err := WithTransientFile("hello", "md", func(path string) error {
		return os.Remove(path)
	})
	assert.NoError(t, err)
}

func TestWithTransientFile_InvalidExtension(t *testing.T) {
	for _, ext := range []string{"", "../md", "a/b", "a\\b"} {
		called := false
		err := WithTransientFile("hello", ext, func(string) error {
			called = true
			return nil
		})

		var renderErr *RenderError
		assert.True(t, errors.As(err, &renderErr), "extension %q", ext)
		assert.False(t, called)
	}
}
