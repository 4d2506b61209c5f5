// Package config resolves the API server settings.
//
// Sources, lowest to highest precedence: built-in defaults, an optional YAML
// file, the process environment, then command line flags (applied by main).
//
// Example file:
//
//	port: 3000
//	host: 0.0.0.0
//	environment: staging
//	heartbeat_schedule: "@every 5m"
package config

import (
	"net"
	"os"
	"strconv"

	"github.com/rohanthewiz/serr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort = 3000
	DefaultHost = "0.0.0.0" // all interfaces
)

// Environment variable names
const (
	EnvPort              = "PORT"
	EnvHost              = "HOST"
	EnvEnvironment       = "ENV"
	EnvNodeEnvironment   = "NODE_ENV"
	EnvHeartbeatSchedule = "HEARTBEAT_SCHEDULE"
)

// Config is the immutable settings snapshot handed to the server at startup.
type Config struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// Environment is surfaced verbatim by /test. Nil means unset.
	Environment *string `yaml:"environment"`

	// HeartbeatSchedule is a cron expression (seconds field allowed) or
	// descriptor like "@every 1m". Empty disables the heartbeat.
	HeartbeatSchedule string `yaml:"heartbeat_schedule"`

	// Verbose turns on rweb's own request info output
	Verbose bool `yaml:"verbose"`
}

// LookupFunc has the signature of os.LookupEnv
type LookupFunc func(key string) (string, bool)

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		Port: DefaultPort,
		Host: DefaultHost,
	}
}

// Load builds the configuration from defaults, the optional file at path,
// and the process environment.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, serr.Wrap(err, "failed to read config file")
		}
		cfg, err = Parse(data)
		if err != nil {
			return cfg, err
		}
	}

	return ApplyEnv(cfg, os.LookupEnv), nil
}

// Parse reads YAML config data on top of the defaults.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, serr.Wrap(err, "failed to parse YAML config")
	}

	if !ValidPort(cfg.Port) {
		return cfg, serr.New("port must be between 0 and 65535")
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	return cfg, nil
}

// ApplyEnv overlays environment values read through lookup onto cfg.
// A PORT that is not an integer in 0..65535 is ignored.
func ApplyEnv(cfg Config, lookup LookupFunc) Config {
	if val, ok := lookup(EnvPort); ok {
		if port, ok := ParsePort(val); ok {
			cfg.Port = port
		}
	}

	if val, ok := lookup(EnvHost); ok && val != "" {
		cfg.Host = val
	}

	if val, ok := lookup(EnvNodeEnvironment); ok {
		cfg.Environment = &val
	} else if val, ok := lookup(EnvEnvironment); ok {
		cfg.Environment = &val
	}

	if val, ok := lookup(EnvHeartbeatSchedule); ok {
		cfg.HeartbeatSchedule = val
	}

	return cfg
}

// ParsePort parses a decimal port number, reporting false when s is not one.
func ParsePort(s string) (int, bool) {
	port, err := strconv.Atoi(s)
	if err != nil || !ValidPort(port) {
		return 0, false
	}
	return port, true
}

// ValidPort accepts 0, which asks the OS for an ephemeral port
func ValidPort(port int) bool {
	return port >= 0 && port <= 65535
}

// Address is the host:port the server listens on
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
