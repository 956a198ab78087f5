package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/failoverd/failoverd/internal/config"
)

// Handler is the capability set a scheduled agent exposes to its host: the
// periodic tick, option-change events, and administrative enable/disable.
type Handler interface {
	OnTick(ctx context.Context) time.Duration
	OnOptionChanged(name, value string)
	OnEnabledChanged(enabled bool, reason string)
}

var _ Handler = (*Machine)(nil)

// Update queues a reloaded configuration for the scheduler goroutine. Safe to
// call from the config watcher; a pending update that was never consumed is
// replaced by the newer one.
func (m *Machine) Update(cfg *config.Config) {
	select {
	case <-m.updates:
	default:
	}
	m.updates <- cfg
}

// Run is the scheduler: an immediate first tick, then a timer re-armed with
// whatever interval the tick returns. Configuration updates are applied
// between ticks on this same goroutine, which is what lets the machine hold
// its state without locks. A tick always completes before the next one is
// armed, so the machine never races itself.
func (m *Machine) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			m.OnEnabledChanged(false, "shutdown")
			return

		case cfg := <-m.updates:
			m.applyConfig(cfg)

		case <-timer.C:
			next := config.DefaultInterval
			if m.enabled {
				next = m.OnTick(ctx)
			}
			timer.Reset(next)
		}
	}
}

// applyConfig diffs a reloaded configuration against the current option set
// and routes every difference through the change handlers.
func (m *Machine) applyConfig(cfg *config.Config) {
	if cfg.Enabled != m.enabled {
		reason := ""
		if !cfg.Enabled {
			reason = "disabled in configuration"
		}
		m.OnEnabledChanged(cfg.Enabled, reason)
	}
	for _, name := range config.OptionNames {
		if m.opts[name] != cfg.Options[name] {
			m.OnOptionChanged(name, cfg.Options[name])
		}
	}
	slog.Info("agent: configuration applied", "enabled", cfg.Enabled)
}
