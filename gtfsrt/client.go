package gtfsrt

import (
	"context"
)

// BinaryFetcher returns the raw body behind a URL.
type BinaryFetcher interface {
	FetchBinary(ctx context.Context, url string) ([]byte, error)
}

// Client fetches and decodes GTFS-Realtime feeds.
type Client struct {
	fetcher BinaryFetcher
}

// NewClient creates a Client on top of f.
func NewClient(f BinaryFetcher) *Client {
	return &Client{fetcher: f}
}

// Load fetches url and decodes it. Fetch failures are returned as is;
// decode failures as a *DecodeError.
func (c *Client) Load(ctx context.Context, url string) (*Feed, error) {
	raw, err := c.fetcher.FetchBinary(ctx, url)
	if err != nil {
		return nil, err
	}
	return Decode(raw)
}
