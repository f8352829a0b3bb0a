// Package appstore fetches App Store reviews from the marketplace data API.
// The pipeline's only obligation is to persist the raw JSON body unmodified;
// any transport or HTTP-status failure is reported and aborts the run, never
// retried.
package appstore

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const reviewsPath = "/v1/app-store-api/reviews"

// ReviewQuery identifies the reviews to fetch.
type ReviewQuery struct {
	AppID   string
	Sort    string // e.g. "mostRecent"
	Page    int
	Country string
	Lang    string
}

// Client fetches review pages.
type Client interface {
	// FetchReviewsRaw returns the raw JSON body for one page of reviews.
	FetchReviewsRaw(ctx context.Context, q ReviewQuery) ([]byte, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithBaseURL overrides the URL derived from the API host. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithRateLimit overrides the paging rate limiter.
func WithRateLimit(l *rate.Limiter) Option {
	return func(c *httpClient) {
		c.limiter = l
	}
}

type httpClient struct {
	key     string
	host    string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a review-fetch client. The key and host are the two
// header credentials the API requires.
func NewClient(key, host string, timeout time.Duration, opts ...Option) Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	c := &httpClient{
		key:     key,
		host:    host,
		baseURL: "https://" + host,
		http:    &http.Client{Timeout: timeout},
		// One request per second is plenty for page-by-page capture.
		limiter: rate.NewLimiter(1, 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) FetchReviewsRaw(ctx context.Context, q ReviewQuery) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "appstore: rate limiter wait")
	}

	params := url.Values{}
	params.Set("id", q.AppID)
	params.Set("sort", q.Sort)
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("country", q.Country)
	params.Set("lang", q.Lang)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+reviewsPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "appstore: create request")
	}
	req.Header.Set("x-rapidapi-key", c.key)
	req.Header.Set("x-rapidapi-host", c.host)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "appstore: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "appstore: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("appstore: unexpected status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
