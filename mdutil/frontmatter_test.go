package mdutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSplitFrontMatter tests front matter extraction and decoding
func TestSplitFrontMatter(t *testing.T) {
	t.Run("WithBlock", func(t *testing.T) {
		source := "---\ntitle: Intro\ndraft: true\n---\n# Intro\n"
		meta, body, err := SplitFrontMatter(source)
		require.NoError(t, err)

		assert.Equal(t, map[string]any{"title": "Intro", "draft": true}, meta)
		assert.Equal(t, "# Intro\n", body)
	})

	t.Run("NoBlock", func(t *testing.T) {
		meta, body, err := SplitFrontMatter("# Intro\n")
		require.NoError(t, err)
		assert.Nil(t, meta)
		assert.Equal(t, "# Intro\n", body)
	})

	t.Run("UnterminatedBlock", func(t *testing.T) {
		source := "---\ntitle: Intro\n"
		meta, body, err := SplitFrontMatter(source)
		require.NoError(t, err)
		assert.Nil(t, meta)
		assert.Equal(t, source, body)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		source := "---\n\t: broken\n---\nbody\n"
		_, _, err := SplitFrontMatter(source)
		assert.Error(t, err)
	})
}
