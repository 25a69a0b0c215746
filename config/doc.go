// Package config handles application configuration loading and validation.
//
// Configuration is loaded from a YAML file (or TOML, chosen by the .toml
// extension) and validated using struct tags. Default returns the built-in
// network table so the service also runs without a file. The loaded
// AppConfig is treated as immutable and passed to constructors by pointer.
package config
