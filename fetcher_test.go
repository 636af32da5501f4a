package dockharden_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fwojciec/dockharden"
	"github.com/fwojciec/dockharden/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body for 200 response", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*dockharden.FetchResult, error) {
				return &dockharden.FetchResult{URL: url, StatusCode: http.StatusOK, Body: "<html></html>"}, nil
			},
		}

		outcome := dockharden.Fetch(context.Background(), f, "https://example.test/a")

		require.NoError(t, outcome.Err)
		assert.Equal(t, "<html></html>", outcome.Body)
		assert.True(t, outcome.OK())
		assert.False(t, outcome.Empty())
	})

	t.Run("treats non-200 as empty document", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*dockharden.FetchResult, error) {
				return &dockharden.FetchResult{URL: url, StatusCode: http.StatusNotFound, Body: "not found"}, nil
			},
		}

		outcome := dockharden.Fetch(context.Background(), f, "https://example.test/missing")

		require.NoError(t, outcome.Err)
		assert.Empty(t, outcome.Body)
		assert.Equal(t, http.StatusNotFound, outcome.StatusCode)
		assert.False(t, outcome.OK())
		assert.True(t, outcome.Empty())
	})

	t.Run("keeps 200 with empty body distinct from non-200", func(t *testing.T) {
		t.Parallel()

		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*dockharden.FetchResult, error) {
				return &dockharden.FetchResult{URL: url, StatusCode: http.StatusOK}, nil
			},
		}

		outcome := dockharden.Fetch(context.Background(), f, "https://example.test/directory/image/py/overview")

		require.NoError(t, outcome.Err)
		assert.True(t, outcome.OK())
		assert.True(t, outcome.Empty())
	})

	t.Run("carries fetch error cause", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("no such host")
		f := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*dockharden.FetchResult, error) {
				return nil, &dockharden.FetchError{URL: url, Err: cause}
			},
		}

		outcome := dockharden.Fetch(context.Background(), f, "https://bad.test/")

		require.Error(t, outcome.Err)
		assert.ErrorIs(t, outcome.Err, cause)
		var fetchErr *dockharden.FetchError
		require.ErrorAs(t, outcome.Err, &fetchErr)
		assert.Equal(t, "https://bad.test/", fetchErr.URL)
		assert.False(t, outcome.OK())
		assert.False(t, outcome.Empty())
	})
}
