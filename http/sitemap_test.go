package http_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fwojciec/dockharden"
	dhhttp "github.com/fwojciec/dockharden/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSitemapService_DiscoverURLs_URLSet(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/directory/image/nginx/overview</loc></url>
  <url><loc> {{BASE}}/directory/image/python/tags </loc></url>
  <url><loc></loc></url>
  <url></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": sitemapXML,
	})
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/directory/image/nginx/overview",
		srv.URL + "/directory/image/python/tags",
	}, urls)
}

func TestSitemapService_DiscoverURLs_SitemapIndex(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-images.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-blog.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-images.xml</loc></sitemap>
</sitemapindex>`

	sitemapImages := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/directory/image/nginx/overview</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
</urlset>`

	sitemapBlog := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/post</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":        sitemapIndex,
		"/sitemap-images.xml": sitemapImages,
		"/sitemap-blog.xml":   sitemapBlog,
	})
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/directory/image/nginx/overview",
		srv.URL + "/about",
		srv.URL + "/blog/post",
	}, urls)
}

func TestSitemapService_DiscoverURLs_EmptyURLSet(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<?xml version="1.0"?><urlset></urlset>`,
	})
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestSitemapService_DiscoverURLs_NotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

	require.Error(t, err)
	assert.Equal(t, dockharden.ENOTFOUND, dockharden.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_InvalidXML(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<<urlset>>`,
	})
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

	require.Error(t, err)
}

func TestSitemapService_DiscoverURLs_ContextCanceled(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<urlset></urlset>`,
	})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := dhhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(ctx, srv.URL+"/sitemap.xml")

	require.ErrorIs(t, err, context.Canceled)
}

func TestSitemapService_DiscoverURLs_Gzipped(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`<urlset><url><loc>https://images.chainguard.dev/directory/image/go/usage</loc></url></urlset>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write(buf.Bytes())
	}))
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml.gz")

	require.NoError(t, err)
	assert.Equal(t, []string{"https://images.chainguard.dev/directory/image/go/usage"}, urls)
}

func TestSitemapService_DiscoverURLs_RejectsOtherDocuments(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml": `<?xml version="1.0"?><rss><channel></channel></rss>`,
	})
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

	require.Error(t, err)
	assert.Equal(t, dockharden.EINVALID, dockharden.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_StopsAtSitemapLimit(t *testing.T) {
	t.Parallel()

	// Every index points at the next one, forever.
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<sitemapindex><sitemap><loc>%s%s/next</loc></sitemap></sitemapindex>`, srv.URL, r.URL.Path)
	}))
	defer srv.Close()

	svc := dhhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml")

	require.NoError(t, err)
	assert.Empty(t, urls)
}

func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))

	return srv
}
