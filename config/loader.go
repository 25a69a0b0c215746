package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultPaths are tried in order by Locate.
var DefaultPaths = []string{"config.yml", "config.yaml", "config.toml"}

// Environment variables that override file values.
const (
	EnvPort          = "PORT"
	EnvBusTimeAPIKey = "BUS_TIME_API_KEY"
)

// ValidationError reports a configuration that failed validation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Locate returns the first existing file among DefaultPaths, or "".
func Locate() string {
	for _, p := range DefaultPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Load reads, defaults, overrides from the environment and validates the
// configuration at path.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return finish(&cfg)
}

// LoadOrDefault loads path, or the first of DefaultPaths when path is
// empty. With no file at all it falls back to Default. The returned string
// names the source used.
func LoadOrDefault(path string) (*AppConfig, string, error) {
	if path == "" {
		path = Locate()
	}
	if path == "" {
		cfg, err := finish(Default())
		return cfg, "built-in defaults", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func finish(cfg *AppConfig) (*AppConfig, error) {
	applyDefaults(cfg)
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvPort, v, err)
		}
		cfg.Server.Port = port
	}
	if v, ok := lookup(EnvBusTimeAPIKey); ok && v != "" {
		cfg.Upstream.BusTimeAPIKey = v
	}
	return nil
}

// Validate checks struct tags and the rules tags cannot express.
func Validate(cfg *AppConfig) error {
	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return &ValidationError{Err: err}
	}

	keys := map[string]struct{}{}
	for _, g := range cfg.Rail {
		if _, dup := keys["rail:"+g.Key]; dup {
			return &ValidationError{Err: fmt.Errorf("duplicate rail group key %q", g.Key)}
		}
		keys["rail:"+g.Key] = struct{}{}
		for _, t := range g.Targets {
			if t.Stop.StopID == "" && len(t.Stop.Pattern) == 0 {
				return &ValidationError{Err: fmt.Errorf("rail group %q route %q: stop needs stopId or pattern", g.Key, t.Route)}
			}
		}
	}
	for _, g := range cfg.Bus {
		if _, dup := keys["bus:"+g.Key]; dup {
			return &ValidationError{Err: fmt.Errorf("duplicate bus group key %q", g.Key)}
		}
		keys["bus:"+g.Key] = struct{}{}
		for _, s := range g.Stops {
			if err := s.Variant.Policy().Validate(); err != nil {
				return &ValidationError{Err: fmt.Errorf("bus group %q stop %q: %w", g.Key, s.StopID, err)}
			}
		}
	}
	return nil
}
