package dockharden

import (
	"context"
	"fmt"
	"net/http"
)

// FetchResult is the raw response for a single page request.
type FetchResult struct {
	URL        string
	StatusCode int
	Body       string
}

// OK reports whether the response carries usable content.
// Any status other than 200 is treated as an empty document.
func (r *FetchResult) OK() bool {
	return r != nil && r.StatusCode == http.StatusOK
}

// FetchError reports a request that produced no response at all:
// network failure, DNS failure, or a malformed URL.
type FetchError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves HTML from URLs.
type Fetcher interface {
	// Fetch issues a single request for the URL with no retry.
	// A non-200 response is not an error; inspect FetchResult.OK.
	// Transport failures are returned as *FetchError.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// PageOutcome is the per-URL result of a best-effort fetch:
// either the response status and content, or the cause of the failure.
type PageOutcome struct {
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Fetch runs a single fetch and folds the response into a PageOutcome.
// A non-200 response becomes an outcome with an empty body and no error.
func Fetch(ctx context.Context, f Fetcher, url string) PageOutcome {
	res, err := f.Fetch(ctx, url)
	if err != nil {
		return PageOutcome{URL: url, Err: err}
	}
	if !res.OK() {
		return PageOutcome{URL: url, StatusCode: res.StatusCode}
	}
	return PageOutcome{URL: url, StatusCode: res.StatusCode, Body: res.Body}
}

// OK reports whether the page answered 200, even with an empty body.
func (o PageOutcome) OK() bool {
	return o.Err == nil && o.StatusCode == http.StatusOK
}

// Empty reports whether the outcome has no content.
func (o PageOutcome) Empty() bool {
	return o.Err == nil && o.Body == ""
}
