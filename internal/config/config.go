package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultCommandSocket is where the command-execution channel listens when
// the config file does not say otherwise.
const DefaultCommandSocket = "/var/run/command-api.sock"

// OptionNames is the ordered set of recognized option keys. It drives status
// export and option-change detection; unknown keys in the config file are
// ignored.
var OptionNames = []string{
	"IPv4",
	"PROTOCOL",
	"TCPPORT",
	"USERNAME",
	"PASSWORD",
	"CONF_FAIL",
	"CONF_RECOVER",
	"REGEX",
	"URLPATH",
	"VRF",
	"CHECKINTERVAL",
	"FAILCOUNT",
	"HTTPTIMEOUT",
}

// Config is the top-level agent configuration. Fields map 1:1 to config.yaml.
type Config struct {
	// Enabled administratively enables the prober. A disabled agent keeps
	// running and serving status, but never ticks.
	Enabled bool `yaml:"enabled"`

	// Listen is the address of the status/metrics HTTP listener.
	// Empty disables the listener.
	Listen string `yaml:"listen"`

	// CommandSocket is the unix socket path of the command-execution channel.
	CommandSocket string `yaml:"command_socket"`

	// Options is the raw option-store mapping (name → string value). Values
	// are kept as strings; typing, defaults, and validation happen in
	// BuildSnapshot once per tick.
	Options map[string]string `yaml:"options"`
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with defaults. A load error here means
// the file itself is unreadable or malformed; option-level validity is a
// separate, recoverable concern (see BuildSnapshot).
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}
	if cfg.Options == nil {
		cfg.Options = make(map[string]string)
	}
	return cfg, nil
}

// defaults returns a Config pre-populated with default values; yaml unmarshal
// overrides only the fields present in the file.
func defaults() *Config {
	return &Config{
		Enabled:       true,
		CommandSocket: DefaultCommandSocket,
	}
}
