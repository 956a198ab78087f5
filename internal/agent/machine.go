package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/failoverd/failoverd/internal/config"
	"github.com/failoverd/failoverd/internal/probe"
	"github.com/failoverd/failoverd/internal/remedy"
	"github.com/failoverd/failoverd/internal/status"
)

// Health is the tri-state register driven by probe outcomes.
type Health int

const (
	Unknown Health = iota
	Up
	Down
)

// String returns the exported HealthStatus value.
func (h Health) String() string {
	switch h {
	case Up:
		return "UP"
	case Down:
		return "FAIL"
	default:
		return "Unknown"
	}
}

// metricState returns the lowercase label used on the health_state gauge.
func (h Health) metricState() string {
	switch h {
	case Up:
		return "up"
	case Down:
		return "fail"
	default:
		return "unknown"
	}
}

// applier is the remediation boundary the machine drives.
type applier interface {
	Apply(ctx context.Context, action remedy.Action, path string) error
}

// Machine is the health state machine. It owns every piece of mutable health
// state — status, failure counter, current options — and must only be driven
// from the single scheduler goroutine (see Run); no locking guards the state.
type Machine struct {
	checker probe.Checker
	applier applier
	reg     *status.Registry
	col     *status.Collector

	opts     map[string]string
	enabled  bool
	health   Health
	failures int
	updates  chan *config.Config
}

// New builds a Machine, seeds the status registry from the initial options,
// and computes initial validity. The machine starts in Unknown health.
func New(cfg *config.Config, checker probe.Checker, ap applier, reg *status.Registry, col *status.Collector) *Machine {
	m := &Machine{
		checker: checker,
		applier: ap,
		reg:     reg,
		col:     col,
		opts:    make(map[string]string),
		enabled: true,
		health:  Unknown,
		updates: make(chan *config.Config, 1),
	}

	m.reg.Set("Status", "Administratively Up")
	m.reg.Set("HealthStatus", Unknown.String())
	m.col.SetHealth(Unknown.metricState(), 0)

	// Route every recognized option through the change handler so the status
	// page shows the full option set from the start.
	for _, name := range config.OptionNames {
		m.OnOptionChanged(name, cfg.Options[name])
	}
	if !cfg.Enabled {
		m.OnEnabledChanged(false, "disabled in configuration")
	}
	return m
}

// OnTick runs one health-check cycle and returns the delay before the next.
// The typed snapshot is rebuilt from the current options every tick, so live
// changes to any option — interval and threshold included — take effect on
// the next cycle.
func (m *Machine) OnTick(ctx context.Context) time.Duration {
	snap, err := config.BuildSnapshot(m.opts)
	if err != nil {
		// Invalid configuration suspends probing; an option change that
		// restores validity re-enables it with no restart.
		return config.DefaultInterval
	}

	out := m.checker.Check(ctx, snap.Target, snap.Pattern)
	m.col.ObserveProbe(out.Kind.String())

	if out.Kind == probe.Matched {
		m.onMatch(ctx, snap)
	} else {
		m.onMiss(ctx, snap, out)
	}

	m.reg.Set("HealthStatus", m.health.String())
	m.col.SetHealth(m.health.metricState(), m.failures)
	return snap.Interval
}

// onMatch handles a successful probe: recover remediation fires only on a
// Down→Up transition, and the failure counter always resets.
func (m *Machine) onMatch(ctx context.Context, snap *config.Snapshot) {
	prev := m.health
	m.health = Up

	switch {
	case prev == Down:
		slog.Info("agent: endpoint back up, applying recover configuration")
		m.col.ObserveRemediation(remedy.Recover.String())
		if err := m.applier.Apply(ctx, remedy.Recover, snap.ConfRecover); err != nil {
			slog.Error("agent: recover remediation failed", "err", err)
		}
	case prev == Up && m.failures > 0:
		slog.Info("agent: endpoint back up, clearing failure counter", "failures", m.failures)
	}
	m.failures = 0
}

// onMiss handles a failed probe. Misses while already Down are absorbed —
// remediation has run and must not run again until recovery.
func (m *Machine) onMiss(ctx context.Context, snap *config.Snapshot, out probe.Outcome) {
	m.failures++
	if m.health == Down {
		slog.Debug("agent: endpoint still down", "detail", out.Detail)
		return
	}

	slog.Warn("agent: probe miss",
		"detail", out.Detail, "failures", m.failures, "threshold", snap.FailThreshold)
	if m.failures < snap.FailThreshold {
		return // soft miss, stay up until the threshold is reached
	}

	slog.Warn("agent: endpoint is down, applying fail configuration")
	m.col.ObserveRemediation(remedy.Fail.String())
	if err := m.applier.Apply(ctx, remedy.Fail, snap.ConfFail); err != nil {
		// The state still transitions: the endpoint is down whether or not
		// the command channel accepted the batch.
		slog.Error("agent: fail remediation failed", "err", err)
	}
	m.health = Down
}

// OnOptionChanged records a single option change, refreshes the status page,
// and recomputes configuration validity.
func (m *Machine) OnOptionChanged(name, value string) {
	if value == "" {
		delete(m.opts, name)
		display := "None"
		if name == "URLPATH" {
			display = "/"
		}
		m.reg.Set(name, display)
	} else {
		m.opts[name] = value
		m.reg.Set(name, value)
	}
	if name == "PASSWORD" {
		slog.Info("agent: option changed", "option", name)
	} else {
		slog.Info("agent: option changed", "option", name, "value", value)
	}
	m.refreshValidity()
}

// OnEnabledChanged flips the administrative state. A disabled machine keeps
// serving status but OnTick is no longer invoked by the scheduler.
func (m *Machine) OnEnabledChanged(enabled bool, reason string) {
	m.enabled = enabled
	if enabled {
		slog.Info("agent: enabled")
		m.refreshValidity()
		return
	}
	v := "Administratively Down"
	if reason != "" {
		v += " - " + reason
	}
	m.reg.Set("Status", v)
	slog.Info("agent: disabled", "reason", reason)
}

// refreshValidity re-derives ConfigValidity from the current options and
// reflects it on the status page and metrics.
func (m *Machine) refreshValidity() {
	_, err := config.BuildSnapshot(m.opts)
	m.col.SetConfigValid(err == nil)
	if !m.enabled {
		return
	}
	if err != nil {
		m.reg.Set("Status", "Administratively Down - invalid configuration")
		slog.Warn("agent: configuration invalid, health checks suspended", "err", err)
		return
	}
	m.reg.Set("Status", "Administratively Up")
}

// Health returns the current health register. Test and display use only.
func (m *Machine) Health() Health { return m.health }

// Failures returns the consecutive-failure counter. Test and display use only.
func (m *Machine) Failures() int { return m.failures }
