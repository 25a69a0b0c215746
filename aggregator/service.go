package aggregator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
	"github.com/theoremus-urban-solutions/transit-arrivals/config"
	"github.com/theoremus-urban-solutions/transit-arrivals/converter"
	"github.com/theoremus-urban-solutions/transit-arrivals/fetcher"
	"github.com/theoremus-urban-solutions/transit-arrivals/gtfsrt"
	"github.com/theoremus-urban-solutions/transit-arrivals/internal"
	"github.com/theoremus-urban-solutions/transit-arrivals/route"
	"github.com/theoremus-urban-solutions/transit-arrivals/rules"
	"github.com/theoremus-urban-solutions/transit-arrivals/siri"
)

// ErrAllTargetsFailed is returned when every attempted fetch failed.
var ErrAllTargetsFailed = errors.New("all upstream targets failed")

// FeedLoader fetches and decodes one GTFS-Realtime feed.
type FeedLoader interface {
	Load(ctx context.Context, url string) (*gtfsrt.Feed, error)
}

// StopMonitor fetches SIRI stop monitoring for one stop and route.
type StopMonitor interface {
	HasAPIKey() bool
	StopMonitoring(ctx context.Context, stopID string, id route.Identity) (*siri.Response, error)
}

// Result is the aggregate of one GetAllArrivals call. Group maps are keyed
// by the configured group key and always hold a non-nil slice per group.
type Result struct {
	Subway      map[string][]arrival.Record `json:"subway"`
	Buses       map[string][]arrival.Record `json:"buses"`
	GeneratedAt time.Time                   `json:"timestamp"`
	Warnings    []string                    `json:"warnings"`
}

type railTarget struct {
	feedURL string
	target  converter.RailTarget
}

type railGroup struct {
	key        string
	maxMinutes int
	targets    []railTarget
}

type busStop struct {
	stopID string
	label  string
	route  route.Identity
	policy rules.VariantPolicy
}

type busGroup struct {
	key        string
	maxMinutes int
	dedupe     bool
	direction  *config.DirectionConfig
	stops      []busStop
}

// Service is the aggregation entry point. It holds no per-request state
// and is safe for concurrent use.
type Service struct {
	rail   FeedLoader
	bus    StopMonitor
	logger *internal.Logger
	now    func() time.Time

	railGroups []railGroup
	feedURLs   []string
	busGroups  []busGroup
	busEnabled bool
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used for warnings and debug output.
func WithLogger(l *internal.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithClock replaces time.Now. Tests use it.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService builds the per-target pipelines from cfg. cfg is read once
// and not retained. A bus client without an API key disables bus fetches;
// that is logged here and never per request.
func NewService(cfg *config.AppConfig, rail FeedLoader, bus StopMonitor, opts ...Option) *Service {
	s := &Service{
		rail:   rail,
		bus:    bus,
		logger: internal.NewLogger(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	seen := map[string]bool{}
	for _, g := range cfg.Rail {
		rg := railGroup{key: g.Key, maxMinutes: g.MaxMinutes}
		for _, t := range g.Targets {
			rg.targets = append(rg.targets, railTarget{
				feedURL: t.FeedURL,
				target:  railTargetFromConfig(g.Station, t),
			})
			if !seen[t.FeedURL] {
				seen[t.FeedURL] = true
				s.feedURLs = append(s.feedURLs, t.FeedURL)
			}
		}
		s.railGroups = append(s.railGroups, rg)
	}

	for _, g := range cfg.Bus {
		bg := busGroup{key: g.Key, maxMinutes: g.MaxMinutes, dedupe: g.Dedupe, direction: g.Direction}
		for _, st := range g.Stops {
			routeID := st.Route
			if routeID == "" {
				routeID = g.Route
			}
			bg.stops = append(bg.stops, busStop{
				stopID: st.StopID,
				label:  st.Label,
				route:  route.Normalize(routeID),
				policy: st.Variant.Policy(),
			})
		}
		s.busGroups = append(s.busGroups, bg)
	}

	s.busEnabled = bus != nil && bus.HasAPIKey()
	if !s.busEnabled && len(s.busGroups) > 0 {
		s.logger.Printf("Bus Time API key not configured. %d bus groups will be returned empty", len(s.busGroups))
	}
	return s
}

func railTargetFromConfig(station string, t config.RailTargetConfig) converter.RailTarget {
	matcher := converter.ExactStop(t.Stop.StopID)
	if len(t.Stop.Pattern) > 0 {
		matcher = converter.PatternStop(t.Stop.Pattern, t.Stop.DirectionMarker, t.Stop.DirectionID)
	}
	target := converter.RailTarget{
		Route:   t.Route,
		Station: station,
		Matcher: matcher,
	}
	if t.Connection != nil {
		target.Connection = &converter.ConnectionStop{StopID: t.Connection.StopID, Label: t.Connection.Label}
	}
	return target
}

type feedResult struct {
	feed *gtfsrt.Feed
	err  error
}

type stopResult struct {
	resp *siri.Response
	err  error
}

// GetAllArrivals fetches every distinct rail feed and every bus stop
// concurrently, then extracts and groups their arrivals. Per-target
// failures become warning tokens. The error is ErrAllTargetsFailed when
// at least one fetch was attempted and none succeeded.
func (s *Service) GetAllArrivals(ctx context.Context) (*Result, error) {
	var (
		wg    sync.WaitGroup
		feeds = make([]feedResult, len(s.feedURLs))
		stops = make([][]stopResult, len(s.busGroups))
	)

	for i, u := range s.feedURLs {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			feed, err := s.rail.Load(ctx, u)
			feeds[i] = feedResult{feed: feed, err: err}
		}(i, u)
	}

	if s.busEnabled {
		for gi, g := range s.busGroups {
			stops[gi] = make([]stopResult, len(g.stops))
			for si, st := range g.stops {
				wg.Add(1)
				go func(gi, si int, st busStop) {
					defer wg.Done()
					resp, err := s.bus.StopMonitoring(ctx, st.stopID, st.route)
					stops[gi][si] = stopResult{resp: resp, err: err}
				}(gi, si, st)
			}
		}
	}

	wg.Wait()

	now := s.now()
	warnings := NewWarningAggregator()
	attempted, failed := 0, 0

	byURL := make(map[string]feedResult, len(feeds))
	for i, u := range s.feedURLs {
		byURL[u] = feeds[i]
		attempted++
		if feeds[i].err != nil {
			failed++
			s.logger.Debugf("rail feed %s: %v", u, feeds[i].err)
		}
	}

	result := &Result{
		Subway:      make(map[string][]arrival.Record, len(s.railGroups)),
		Buses:       make(map[string][]arrival.Record, len(s.busGroups)),
		GeneratedAt: now,
	}

	for _, g := range s.railGroups {
		result.Subway[g.key] = s.railGroupArrivals(g, byURL, warnings, now)
	}

	for gi, g := range s.busGroups {
		if !s.busEnabled {
			result.Buses[g.key] = []arrival.Record{}
			continue
		}
		for _, r := range stops[gi] {
			attempted++
			if r.err != nil {
				failed++
			}
		}
		result.Buses[g.key] = s.busGroupArrivals(g, stops[gi], warnings, now)
	}

	warnings.LogAll(s.logger)
	result.Warnings = warnings.Tokens()

	if attempted > 0 && failed == attempted {
		return result, ErrAllTargetsFailed
	}
	return result, nil
}

func (s *Service) railGroupArrivals(g railGroup, feeds map[string]feedResult, warnings *WarningAggregator, now time.Time) []arrival.Record {
	var records []arrival.Record
	for _, t := range g.targets {
		fr := feeds[t.feedURL]
		if fr.err != nil {
			warnings.Add(railWarning(fr.err), g.key, t.target.Route)
			continue
		}
		records = append(records, converter.ExtractRail(fr.feed, t.target, now)...)
	}
	return rules.SortAndCap(records, g.maxMinutes)
}

func (s *Service) busGroupArrivals(g busGroup, results []stopResult, warnings *WarningAggregator, now time.Time) []arrival.Record {
	lists := make([][]arrival.Record, 0, len(g.stops))
	vehicleByTrip := map[string]*arrival.Occupancy{}

	for i, st := range g.stops {
		r := results[i]
		if r.err != nil {
			warnings.Add(busWarning(r.err), g.key, st.stopID)
			s.logger.Debugf("bus stop %s: %v", st.stopID, r.err)
			continue
		}
		extracted := converter.ExtractBus(r.resp, st.route.Canonical, converter.BusWindow, now)
		for trip, occ := range extracted.VehicleByTrip {
			if _, ok := vehicleByTrip[trip]; !ok {
				vehicleByTrip[trip] = occ
			}
		}
		records := rules.LabelStation(extracted.Arrivals, st.label)
		lists = append(lists, rules.ApplyVariantPolicy(records, st.policy))
	}

	for i := range lists {
		lists[i] = rules.Hydrate(lists[i], vehicleByTrip)
	}

	var records []arrival.Record
	if g.dedupe {
		records = rules.DedupeByTrip(lists...)
	} else {
		for _, l := range lists {
			records = append(records, l...)
		}
	}
	if g.direction != nil {
		records = rules.FilterByHeadsignDirection(records, g.direction.Token, g.direction.Aliases...)
	}
	return rules.SortAndCap(records, g.maxMinutes)
}

func railWarning(err error) string {
	var de *gtfsrt.DecodeError
	if errors.As(err, &de) {
		return WarningRailDecodeFailed
	}
	return WarningRailFetchFailed
}

func busWarning(err error) string {
	var ec *siri.ErrorCondition
	switch {
	case errors.As(err, &ec):
		return WarningBusUpstreamError
	case fetcher.IsPayload(err):
		return WarningBusDecodeFailed
	default:
		return WarningBusFetchFailed
	}
}
