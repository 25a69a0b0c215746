package siri

import (
	"context"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/transit-arrivals/route"
)

// DefaultBaseURL is the Bus Time SIRI endpoint root.
const DefaultBaseURL = "https://bustime.mta.info/api/siri"

// DefaultAgencyPrefix is prepended to route tokens in LineRef.
const DefaultAgencyPrefix = "MTA NYCT_"

// ErrMissingAPIKey is returned without any network call when no key is
// configured.
var ErrMissingAPIKey = errors.New("bus time api key not configured")

// JSONFetcher fetches and decodes a JSON document.
type JSONFetcher interface {
	FetchJSON(ctx context.Context, url string, params url.Values, v any) error
}

// Client requests StopMonitoring documents.
type Client struct {
	fetcher      JSONFetcher
	baseURL      string
	apiKey       string
	agencyPrefix string
}

// NewClient creates a Client. Empty baseURL and agencyPrefix select the
// defaults.
func NewClient(f JSONFetcher, baseURL, apiKey, agencyPrefix string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if agencyPrefix == "" {
		agencyPrefix = DefaultAgencyPrefix
	}
	return &Client{
		fetcher:      f,
		baseURL:      strings.TrimRight(baseURL, "/"),
		apiKey:       apiKey,
		agencyPrefix: agencyPrefix,
	}
}

// HasAPIKey reports whether StopMonitoring can be called at all.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// StopMonitoringURL is the endpoint StopMonitoring requests go to.
func (c *Client) StopMonitoringURL() string {
	return c.baseURL + "/stop-monitoring.json"
}

// StopMonitoringParams builds the query for one stop and route.
func (c *Client) StopMonitoringParams(stopID string, id route.Identity) url.Values {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("MonitoringRef", stopID)
	if id.Canonical != "" {
		params.Set("LineRef", id.LineRef(c.agencyPrefix))
	}
	return params
}

// StopMonitoring fetches the visits for stopID on route id.
func (c *Client) StopMonitoring(ctx context.Context, stopID string, id route.Identity) (*Response, error) {
	if !c.HasAPIKey() {
		return nil, ErrMissingAPIKey
	}

	var resp Response
	if err := c.fetcher.FetchJSON(ctx, c.StopMonitoringURL(), c.StopMonitoringParams(stopID, id), &resp); err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, errors.Wrapf(err, "stop monitoring %s", stopID)
	}
	return &resp, nil
}
