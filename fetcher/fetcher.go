// Package fetcher performs the two upstream HTTP fetches the pipeline needs:
// a binary GTFS-Realtime feed and a JSON vehicle-monitoring document.
//
// It does not interpret payloads beyond JSON decoding. Every failure is
// returned as a *FetchError.
package fetcher

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// DefaultTimeout bounds every upstream request.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 32 << 20

// Fetcher is an HTTP client for upstream feeds.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent upstream.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// New creates a Fetcher whose requests are bounded by timeout.
// A non-positive timeout selects DefaultTimeout.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "transit-arrivals",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchBinary fetches rawURL and returns the response body.
func (f *Fetcher) FetchBinary(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := f.get(ctx, rawURL, nil, "application/x-protobuf")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newFetchError(rawURL, KindNetwork, 0, errors.Wrap(err, "read body"))
	}
	return body, nil
}

// FetchJSON fetches rawURL with params and decodes the JSON body into v.
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, params url.Values, v any) error {
	resp, err := f.get(ctx, rawURL, params, "application/json")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(v); err != nil {
		if isTimeout(ctx, err) {
			return newFetchError(rawURL, KindTimeout, 0, errors.Wrap(err, "read body"))
		}
		return newFetchError(rawURL, KindPayload, 0, errors.Wrap(err, "decode json body"))
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string, params url.Values, accept string) (*http.Response, error) {
	if rawURL == "" {
		return nil, newFetchError(rawURL, KindNetwork, 0, errors.New("empty url"))
	}

	target := rawURL
	if len(params) > 0 {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, newFetchError(rawURL, KindNetwork, 0, errors.Wrap(err, "parse url"))
		}
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
		target = u.String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, newFetchError(rawURL, KindNetwork, 0, errors.Wrap(err, "build request"))
	}
	req.Header.Set("Accept", accept)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		kind := KindNetwork
		if isTimeout(ctx, err) {
			kind = KindTimeout
		}
		// *url.Error prints the full request URL, query string included.
		var ue *url.Error
		if errors.As(err, &ue) {
			err = ue.Err
		}
		return nil, newFetchError(rawURL, kind, 0, errors.Wrap(err, "request failed"))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
		return nil, newFetchError(rawURL, KindStatus, resp.StatusCode, errors.Errorf("HTTP %d", resp.StatusCode))
	}
	return resp, nil
}
