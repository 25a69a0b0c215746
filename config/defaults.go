package config

// Upstream feeds of the built-in network.
const (
	FeedBDFM     = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-bdfm"
	FeedNQRW     = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs-nqrw"
	FeedIRT      = "https://api-endpoint.mta.info/Dataservice/mtagtfsfeeds/nyct%2Fgtfs"
	BusSIRIURL   = "https://bustime.mta.info/api/siri"
	AgencyPrefix = "MTA NYCT_"
)

const (
	DefaultPort           = 3001
	DefaultTimeoutMS      = 10000
	DefaultHorizonMinutes = 30
	DefaultRailMaxMinutes = 60
	DefaultUserAgent      = "transit-arrivals"
)

// connectionStops maps rail routes to the downstream stop riders care about.
var connectionStops = map[string]ConnectionConfig{
	"B": {StopID: "D15N", Label: "Rockefeller Ctr"},
	"Q": {StopID: "R16N", Label: "Times Sq"},
	"N": {StopID: "R16N", Label: "Times Sq"},
	"2": {StopID: "127N", Label: "Times Sq"},
	"3": {StopID: "127N", Label: "Times Sq"},
	"5": {StopID: "127N", Label: "Times Sq"},
}

func railTarget(routeID, feedURL, stopID string, pattern ...string) RailTargetConfig {
	t := RailTargetConfig{
		Route:   routeID,
		FeedURL: feedURL,
		Stop: StopMatchConfig{
			StopID:          stopID,
			Pattern:         pattern,
			DirectionMarker: "N",
		},
	}
	if c, ok := connectionStops[routeID]; ok {
		t.Connection = &c
	}
	return t
}

// Default returns the built-in network table with defaults applied.
func Default() *AppConfig {
	cfg := &AppConfig{
		Upstream: UpstreamConfig{
			BusSIRIURL:   BusSIRIURL,
			AgencyPrefix: AgencyPrefix,
		},
		Rail: []RailGroupConfig{
			{
				Key:     "churchAve",
				Station: "Church Ave",
				Targets: []RailTargetConfig{
					railTarget("B", FeedBDFM, "D28N", "D28", "N"),
					railTarget("Q", FeedNQRW, "D28N", "D28", "N"),
				},
			},
			{
				Key:     "winthrop",
				Station: "Winthrop St",
				Targets: []RailTargetConfig{
					railTarget("2", FeedIRT, "241N", "241", "N"),
					railTarget("5", FeedIRT, "241N", "241", "N"),
				},
			},
		},
		Bus: []BusGroupConfig{
			{
				Key:    "b41",
				Route:  "B41",
				Dedupe: true,
				Stops: []BusStopConfig{
					{StopID: "MTA_303241", Label: "Caton Ave", Variant: VariantPolicyConfig{Mode: "relabel", Variant: "local"}},
					{StopID: "MTA_303242", Label: "Clarkson Ave", Variant: VariantPolicyConfig{Mode: "filter", Variant: "limited"}},
				},
			},
			{
				Key:   "b44",
				Route: "B44-SBS",
				Stops: []BusStopConfig{
					{StopID: "MTA_303945", Label: "Rogers Av/Clarkson Av"},
				},
			},
			{
				Key:   "b49",
				Route: "B49",
				Direction: &DirectionConfig{
					Token:   "Fulton",
					Aliases: []string{"bed stuy", "bed-stuy", "bedford-stuyvesant"},
				},
				Stops: []BusStopConfig{
					{StopID: "MTA_303944", Label: "Rogers Av/Lenox Rd"},
				},
			},
		},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Upstream.TimeoutMS == 0 {
		cfg.Upstream.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.Upstream.BusSIRIURL == "" {
		cfg.Upstream.BusSIRIURL = BusSIRIURL
	}
	if cfg.Upstream.AgencyPrefix == "" {
		cfg.Upstream.AgencyPrefix = AgencyPrefix
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = DefaultUserAgent
	}
	if cfg.Display.HorizonMinutes == 0 {
		cfg.Display.HorizonMinutes = DefaultHorizonMinutes
	}
	for i := range cfg.Rail {
		if cfg.Rail[i].MaxMinutes == 0 {
			cfg.Rail[i].MaxMinutes = DefaultRailMaxMinutes
		}
	}
	for i := range cfg.Bus {
		g := &cfg.Bus[i]
		if g.MaxMinutes == 0 {
			g.MaxMinutes = cfg.Display.HorizonMinutes
		}
		for j := range g.Stops {
			if g.Stops[j].Route == "" {
				g.Stops[j].Route = g.Route
			}
		}
	}
}
