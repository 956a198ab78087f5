package config

import (
	"fmt"
	"net"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/failoverd/failoverd/internal/probe"
)

// Defaults substituted when the corresponding option is unset.
const (
	DefaultInterval      = 5 * time.Second
	DefaultFailThreshold = 2
	DefaultProbeTimeout  = 20 * time.Second
)

// lookupInterface resolves a VRF device name. Swappable so tests do not
// depend on the host's interface table.
var lookupInterface = func(name string) error {
	_, err := net.InterfaceByName(name)
	return err
}

// Snapshot is the typed configuration for one tick. It is built fresh from
// the raw option mapping on every tick, so live option changes take effect on
// the next cycle without a restart.
type Snapshot struct {
	Target        probe.Target
	Pattern       *regexp.Regexp
	Interval      time.Duration
	FailThreshold int
	ConfFail      string
	ConfRecover   string
}

// BuildSnapshot validates opts and produces the typed snapshot. All mandatory
// checks, type conversions, and default substitution live here — an error
// means the configuration is invalid and ticking must stay suspended until an
// option change makes it valid again.
func BuildSnapshot(opts map[string]string) (*Snapshot, error) {
	addr := opts["IPv4"]
	if addr == "" {
		return nil, fmt.Errorf("IPv4 is not set; this is a mandatory option")
	}

	proto := opts["PROTOCOL"]
	switch proto {
	case "http", "https":
	case "":
		return nil, fmt.Errorf("PROTOCOL is not set; this is a mandatory option")
	default:
		return nil, fmt.Errorf("PROTOCOL %q is not valid; must be http or https", proto)
	}

	portStr := opts["TCPPORT"]
	if portStr == "" {
		return nil, fmt.Errorf("TCPPORT is not set; this is a mandatory option")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("TCPPORT %q is not a valid port", portStr)
	}

	patternStr := opts["REGEX"]
	if patternStr == "" {
		return nil, fmt.Errorf("REGEX is not set; this is a mandatory option")
	}
	pattern, err := regexp.Compile(patternStr)
	if err != nil {
		return nil, fmt.Errorf("REGEX %q does not compile: %w", patternStr, err)
	}

	confFail := opts["CONF_FAIL"]
	if confFail == "" {
		return nil, fmt.Errorf("CONF_FAIL is not set; this is a mandatory option")
	}
	if err := readable(confFail); err != nil {
		return nil, fmt.Errorf("CONF_FAIL file: %w", err)
	}

	confRecover := opts["CONF_RECOVER"]
	if confRecover == "" {
		return nil, fmt.Errorf("CONF_RECOVER is not set; this is a mandatory option")
	}
	if err := readable(confRecover); err != nil {
		return nil, fmt.Errorf("CONF_RECOVER file: %w", err)
	}

	if vrf := opts["VRF"]; vrf != "" {
		if err := lookupInterface(vrf); err != nil {
			return nil, fmt.Errorf("VRF %q does not exist: %w", vrf, err)
		}
	}

	interval, err := secondsOption(opts, "CHECKINTERVAL", DefaultInterval)
	if err != nil {
		return nil, err
	}
	timeout, err := secondsOption(opts, "HTTPTIMEOUT", DefaultProbeTimeout)
	if err != nil {
		return nil, err
	}

	threshold := DefaultFailThreshold
	if v := opts["FAILCOUNT"]; v != "" {
		threshold, err = strconv.Atoi(v)
		if err != nil || threshold < 1 {
			return nil, fmt.Errorf("FAILCOUNT %q is not a positive integer", v)
		}
	}

	path := opts["URLPATH"]
	if path == "" {
		path = "/"
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	return &Snapshot{
		Target: probe.Target{
			Address:  addr,
			Port:     port,
			Protocol: proto,
			Path:     path,
			Username: opts["USERNAME"],
			Password: opts["PASSWORD"],
			Device:   opts["VRF"],
			Timeout:  timeout,
		},
		Pattern:       pattern,
		Interval:      interval,
		FailThreshold: threshold,
		ConfFail:      confFail,
		ConfRecover:   confRecover,
	}, nil
}

// secondsOption parses an option holding a whole number of seconds.
func secondsOption(opts map[string]string, name string, def time.Duration) (time.Duration, error) {
	v := opts[name]
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s %q is not a positive number of seconds", name, v)
	}
	return time.Duration(n) * time.Second, nil
}

// readable verifies the command file exists and can be opened.
func readable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
