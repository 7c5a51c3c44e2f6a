package content

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkdownToHTML(t *testing.T) {
	t.Parallel()

	out, err := MarkdownToHTML().Transform([]byte("# Dune\n\nA *classic*."))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<h1>Dune</h1>")
	assert.Contains(t, string(out), "<em>classic</em>")
}

func TestSanitizeHTML(t *testing.T) {
	t.Parallel()

	t.Run("keeps text markup", func(t *testing.T) {
		t.Parallel()
		out, err := SanitizeHTML().Transform([]byte("<p>He who controls the <strong>spice</strong></p>"))
		require.NoError(t, err)
		assert.Equal(t, "<p>He who controls the <strong>spice</strong></p>", string(out))
	})

	t.Run("strips scripts and images", func(t *testing.T) {
		t.Parallel()
		out, err := SanitizeHTML().Transform([]byte(
			`<p>hi</p><script>alert(1)</script><img src="http://example.com/x.png">`,
		))
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(out))
	})

	t.Run("strips event handlers", func(t *testing.T) {
		t.Parallel()
		out, err := SanitizeHTML().Transform([]byte(`<p onclick="alert(1)">hi</p>`))
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", string(out))
	})
}

func TestChain(t *testing.T) {
	t.Parallel()

	t.Run("renders and sanitizes", func(t *testing.T) {
		t.Parallel()
		chain := Chain(MarkdownToHTML(), SanitizeHTML())
		out, err := chain.Transform([]byte("**bold** <script>alert(1)</script>"))
		require.NoError(t, err)
		assert.Contains(t, string(out), "<strong>bold</strong>")
		assert.NotContains(t, string(out), "<script>")
	})

	t.Run("fails fast", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		chain := Chain(
			TransformerFunc(func([]byte) ([]byte, error) { return nil, boom }),
			SanitizeHTML(),
		)
		_, err := chain.Transform([]byte("anything"))
		require.ErrorIs(t, err, boom)
	})
}
