package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrFetch marks a transport failure while fetching the recipe page. It is
// distinct from ErrNoRecipeData: the page could not be retrieved at all.
var ErrFetch = errors.New("failed to fetch recipe page")

// Some recipe sites refuse requests without a browser user agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// Fetcher retrieves recipe pages over HTTP.
type Fetcher struct {
	client *resty.Client
}

// NewFetcher creates a Fetcher whose requests are bounded by timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", browserUserAgent).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	return &Fetcher{client: client}
}

// Fetch downloads the page at url and returns its body together with the
// final URL after redirects. Failures wrap ErrFetch.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if resp.IsError() {
		return nil, "", fmt.Errorf("%w: status %d from %s", ErrFetch, resp.StatusCode(), url)
	}

	finalURL := url
	if raw := resp.RawResponse; raw != nil && raw.Request != nil && raw.Request.URL != nil {
		finalURL = raw.Request.URL.String()
	}
	return resp.Body(), finalURL, nil
}
