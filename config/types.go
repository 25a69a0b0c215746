package config

import (
	"github.com/theoremus-urban-solutions/transit-arrivals/arrival"
	"github.com/theoremus-urban-solutions/transit-arrivals/rules"
)

// ServerConfig contains HTTP boundary configuration
type ServerConfig struct {
	Port            int    `yaml:"port" toml:"port" validate:"gte=0,lte=65535"`
	StaticDir       string `yaml:"staticDir" toml:"staticDir"`
	CacheTTLSeconds int    `yaml:"cacheTTLSeconds" toml:"cacheTTLSeconds" validate:"gte=0"`
	Debug           bool   `yaml:"debug" toml:"debug"`
}

// UpstreamConfig contains settings shared by all upstream fetches
type UpstreamConfig struct {
	TimeoutMS     int    `yaml:"timeoutMS" toml:"timeoutMS" validate:"gte=0"`
	BusTimeAPIKey string `yaml:"busTimeAPIKey" toml:"busTimeAPIKey"`
	BusSIRIURL    string `yaml:"busSiriURL" toml:"busSiriURL" validate:"omitempty,url"`
	AgencyPrefix  string `yaml:"agencyPrefix" toml:"agencyPrefix"`
	UserAgent     string `yaml:"userAgent" toml:"userAgent"`
}

// DisplayConfig contains the display horizon applied to bus groups
type DisplayConfig struct {
	HorizonMinutes int `yaml:"horizonMinutes" toml:"horizonMinutes" validate:"gte=0"`
}

// StopMatchConfig selects the monitored stop in a rail feed. Pattern, when
// set, switches matching from StopID equality to token containment plus
// a direction check.
type StopMatchConfig struct {
	StopID          string   `yaml:"stopId" toml:"stopId"`
	Pattern         []string `yaml:"pattern" toml:"pattern"`
	DirectionMarker string   `yaml:"directionMarker" toml:"directionMarker"`
	DirectionID     *uint32  `yaml:"directionId" toml:"directionId" validate:"omitempty,lte=1"`
}

// ConnectionConfig names a downstream stop reported as a connection ETA
type ConnectionConfig struct {
	StopID string `yaml:"stopId" toml:"stopId" validate:"required"`
	Label  string `yaml:"label" toml:"label" validate:"required"`
}

// RailTargetConfig binds a route to a feed and a stop
type RailTargetConfig struct {
	Route      string            `yaml:"route" toml:"route" validate:"required"`
	FeedURL    string            `yaml:"feedURL" toml:"feedURL" validate:"required,url"`
	Stop       StopMatchConfig   `yaml:"stop" toml:"stop"`
	Connection *ConnectionConfig `yaml:"connection" toml:"connection"`
}

// RailGroupConfig is one station shown on the dashboard
type RailGroupConfig struct {
	Key        string             `yaml:"key" toml:"key" validate:"required"`
	Station    string             `yaml:"station" toml:"station" validate:"required"`
	MaxMinutes int                `yaml:"maxMinutes" toml:"maxMinutes" validate:"gte=0"`
	Targets    []RailTargetConfig `yaml:"targets" toml:"targets" validate:"required,min=1,dive"`
}

// VariantPolicyConfig overrides the service variant of a stop's records
type VariantPolicyConfig struct {
	Mode    string `yaml:"mode" toml:"mode" validate:"omitempty,oneof=filter relabel"`
	Variant string `yaml:"variant" toml:"variant" validate:"omitempty,oneof=local limited"`
}

// Policy converts the configured override to a rules.VariantPolicy.
func (c VariantPolicyConfig) Policy() rules.VariantPolicy {
	return rules.VariantPolicy{
		Mode:    rules.PolicyMode(c.Mode),
		Variant: arrival.ServiceVariant(c.Variant),
	}
}

// BusStopConfig is one monitored bus stop
type BusStopConfig struct {
	StopID  string              `yaml:"stopId" toml:"stopId" validate:"required"`
	Label   string              `yaml:"label" toml:"label" validate:"required"`
	Route   string              `yaml:"route" toml:"route"` // defaults to the group route
	Variant VariantPolicyConfig `yaml:"variant" toml:"variant"`
}

// DirectionConfig filters records by headsign text
type DirectionConfig struct {
	Token   string   `yaml:"token" toml:"token" validate:"required"`
	Aliases []string `yaml:"aliases" toml:"aliases"`
}

// BusGroupConfig is one bus line shown on the dashboard
type BusGroupConfig struct {
	Key        string           `yaml:"key" toml:"key" validate:"required"`
	Route      string           `yaml:"route" toml:"route" validate:"required"`
	MaxMinutes int              `yaml:"maxMinutes" toml:"maxMinutes" validate:"gte=0"`
	Dedupe     bool             `yaml:"dedupe" toml:"dedupe"`
	Direction  *DirectionConfig `yaml:"direction" toml:"direction"`
	Stops      []BusStopConfig  `yaml:"stops" toml:"stops" validate:"required,min=1,dive"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig      `yaml:"server" toml:"server"`
	Upstream UpstreamConfig    `yaml:"upstream" toml:"upstream"`
	Display  DisplayConfig     `yaml:"display" toml:"display"`
	Rail     []RailGroupConfig `yaml:"rail" toml:"rail" validate:"dive"`
	Bus      []BusGroupConfig  `yaml:"bus" toml:"bus" validate:"dive"`
}

// HasBusAPIKey reports whether bus groups can be fetched at all
func (c *AppConfig) HasBusAPIKey() bool {
	return c.Upstream.BusTimeAPIKey != ""
}
