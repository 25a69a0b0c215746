package aggregator

import (
	"time"

	"github.com/theoremus-urban-solutions/transit-arrivals/config"
	"github.com/theoremus-urban-solutions/transit-arrivals/fetcher"
	"github.com/theoremus-urban-solutions/transit-arrivals/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-arrivals/siri"
)

// FromConfig wires a Service to live upstreams over one shared HTTP
// fetcher bounded by cfg.Upstream.TimeoutMS.
func FromConfig(cfg *config.AppConfig, opts ...Option) *Service {
	f := fetcher.New(
		time.Duration(cfg.Upstream.TimeoutMS)*time.Millisecond,
		fetcher.WithUserAgent(cfg.Upstream.UserAgent),
	)
	rail := gtfsrt.NewClient(f)
	bus := siri.NewClient(f, cfg.Upstream.BusSIRIURL, cfg.Upstream.BusTimeAPIKey, cfg.Upstream.AgencyPrefix)
	return NewService(cfg, rail, bus, opts...)
}
