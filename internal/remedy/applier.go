package remedy

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Action selects which operator-supplied command batch to apply.
type Action int

const (
	Fail Action = iota
	Recover
)

func (a Action) String() string {
	if a == Fail {
		return "fail"
	}
	return "recover"
}

// enableToken is the privilege-escalation command stripped from the head of a
// batch: the command channel already runs in a privileged context and rejects
// a mode-entry command.
const enableToken = "enable"

// Runner submits one ordered command batch. It is the sole side-effecting
// boundary for remediation.
type Runner interface {
	Run(ctx context.Context, cmds []string) error
}

// Applier loads action-bound command files and submits them through a Runner.
type Applier struct {
	runner Runner
}

func NewApplier(r Runner) *Applier {
	return &Applier{runner: r}
}

// Apply reads the command file at path and submits its contents as one batch.
// A submission failure is logged and returned; it is never retried here and
// never escalated — the next state transition attempts again.
func (a *Applier) Apply(ctx context.Context, action Action, path string) error {
	cmds, err := LoadCommands(path)
	if err != nil {
		return fmt.Errorf("remedy: load %s commands: %w", action, err)
	}
	if err := a.runner.Run(ctx, cmds); err != nil {
		slog.Error("remedy: command batch rejected",
			"action", action.String(), "file", path, "err", err)
		return fmt.Errorf("remedy: apply %s: %w", action, err)
	}
	slog.Info("remedy: configuration applied",
		"action", action.String(), "file", path, "commands", len(cmds))
	return nil
}

// LoadCommands reads a newline-separated command file: every line is trimmed,
// blank lines are dropped, and a leading literal "enable" is removed.
func LoadCommands(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cmds []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmds = append(cmds, line)
	}
	if len(cmds) > 0 && cmds[0] == enableToken {
		cmds = cmds[1:]
	}
	return cmds, nil
}
