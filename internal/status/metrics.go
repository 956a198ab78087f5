package status

import (
	"sort"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"google.golang.org/protobuf/proto"
)

// healthStates is the label set exported one-hot on the health_state gauge.
var healthStates = []string{"unknown", "up", "fail"}

// Collector accumulates probe and remediation counters for the /metrics
// exposition. All methods are safe for concurrent use.
type Collector struct {
	mu           sync.Mutex
	healthState  string
	failures     int
	configValid  bool
	probes       map[string]uint64 // by outcome: matched | miss | error
	remediations map[string]uint64 // by action: fail | recover
}

func NewCollector() *Collector {
	return &Collector{
		healthState:  "unknown",
		probes:       make(map[string]uint64),
		remediations: make(map[string]uint64),
	}
}

// SetHealth records the current health state and consecutive-failure count.
func (c *Collector) SetHealth(state string, failures int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.healthState = state
	c.failures = failures
}

// SetConfigValid records whether the current option set passes validation.
func (c *Collector) SetConfigValid(valid bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.configValid = valid
}

// ObserveProbe counts one probe by outcome label.
func (c *Collector) ObserveProbe(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.probes[outcome]++
}

// ObserveRemediation counts one remediation submission by action label.
func (c *Collector) ObserveRemediation(action string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.remediations[action]++
}

// Families renders the current counters as Prometheus metric families in a
// stable order.
func (c *Collector) Families() []*dto.MetricFamily {
	c.mu.Lock()
	defer c.mu.Unlock()

	health := &dto.MetricFamily{
		Name: proto.String("failoverd_health_state"),
		Help: proto.String("Current health state, one-hot by state label."),
		Type: dto.MetricType_GAUGE.Enum(),
	}
	for _, s := range healthStates {
		var v float64
		if s == c.healthState {
			v = 1
		}
		health.Metric = append(health.Metric, &dto.Metric{
			Label: []*dto.LabelPair{{Name: proto.String("state"), Value: proto.String(s)}},
			Gauge: &dto.Gauge{Value: proto.Float64(v)},
		})
	}

	var valid float64
	if c.configValid {
		valid = 1
	}

	fams := []*dto.MetricFamily{
		health,
		gauge("failoverd_consecutive_failures",
			"Consecutive probe misses since the last successful match.",
			float64(c.failures)),
		gauge("failoverd_config_valid",
			"Whether the current option set passes validation (1 = valid).",
			valid),
		counterVec("failoverd_probes_total",
			"Probes executed, by outcome.", "outcome", c.probes),
		counterVec("failoverd_remediations_total",
			"Remediation batches submitted, by action.", "action", c.remediations),
	}

	// The text encoder rejects families without metrics; drop counters that
	// have not observed anything yet.
	out := fams[:0]
	for _, mf := range fams {
		if len(mf.Metric) > 0 {
			out = append(out, mf)
		}
	}
	return out
}

func gauge(name, help string, value float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   proto.String(name),
		Help:   proto.String(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: proto.Float64(value)}}},
	}
}

func counterVec(name, help, label string, values map[string]uint64) *dto.MetricFamily {
	mf := &dto.MetricFamily{
		Name: proto.String(name),
		Help: proto.String(help),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		mf.Metric = append(mf.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: proto.String(label), Value: proto.String(k)}},
			Counter: &dto.Counter{Value: proto.Float64(float64(values[k]))},
		})
	}
	return mf
}
