package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// Kind classifies a fetch failure.
type Kind int

const (
	KindNetwork Kind = iota
	KindTimeout
	KindStatus
	KindPayload
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindPayload:
		return "payload"
	default:
		return "network"
	}
}

// FetchError reports a failed upstream fetch. Neither URL nor Err carries
// the query string, so API keys do not leak into logs.
type FetchError struct {
	URL        string
	Kind       Kind
	StatusCode int
	Err        error
}

func newFetchError(rawURL string, kind Kind, status int, err error) *FetchError {
	return &FetchError{URL: redact(rawURL), Kind: kind, StatusCode: status, Err: err}
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s (%s): %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the fetch exceeded its deadline.
func (e *FetchError) Timeout() bool {
	return e.Kind == KindTimeout
}

// IsPayload reports whether err is a FetchError for a body that could not be
// decoded.
func IsPayload(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe) && fe.Kind == KindPayload
}

func redact(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.RawQuery = ""
	u.User = nil
	return u.String()
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
