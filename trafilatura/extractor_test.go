package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/dockharden"
	"github.com/fwojciec/dockharden/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements dockharden.Extractor at compile time.
var _ dockharden.Extractor = (*trafilatura.Extractor)(nil)

const overviewPage = `<!DOCTYPE html>
<html>
<head>
<title>nginx Overview - Chainguard Images</title>
<meta property="og:title" content="nginx Overview">
</head>
<body>
<nav><a href="/">Home</a><a href="/directory">Directory</a></nav>
<article>
<h1>nginx</h1>
<p>Minimal Wolfi-based nginx HTTP, reverse proxy, mail proxy, and a generic TCP/UDP proxy server.</p>
<p>The image listens on port 8080 by default and runs as a non-root user.</p>
<pre><code>docker run -p 8080:8080 cgr.dev/chainguard/nginx:latest</code></pre>
</article>
<footer>Copyright Chainguard</footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title from meta tags", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(overviewPage, "https://images.chainguard.dev/directory/image/nginx/overview")

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
	})

	t.Run("extracts main content", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(overviewPage, "https://images.chainguard.dev/directory/image/nginx/overview")

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "port 8080")
		assert.Contains(t, result.ContentHTML, "cgr.dev/chainguard/nginx")
	})

	t.Run("removes footer boilerplate", func(t *testing.T) {
		t.Parallel()

		result, err := trafilatura.NewExtractor().Extract(overviewPage, "")

		require.NoError(t, err)
		assert.NotContains(t, result.ContentHTML, "Copyright Chainguard")
	})

	t.Run("returns error for empty HTML", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ", "")

		require.Error(t, err)
		assert.Equal(t, dockharden.EINVALID, dockharden.ErrorCode(err))
	})

	t.Run("returns error for invalid page URL", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract(overviewPage, "://bad")

		require.Error(t, err)
		assert.Equal(t, dockharden.EINVALID, dockharden.ErrorCode(err))
	})
}
