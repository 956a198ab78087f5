package remedy

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// fakeRunner records every submitted batch and returns err.
type fakeRunner struct {
	batches [][]string
	err     error
}

func (f *fakeRunner) Run(_ context.Context, cmds []string) error {
	f.batches = append(f.batches, cmds)
	return f.err
}

func writeCommands(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "commands.conf")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write commands: %v", err)
	}
	return path
}

func TestLoadCommands_DropsLeadingEnable(t *testing.T) {
	path := writeCommands(t, "enable\nrouter bgp 1\nneighbor x shutdown\n")
	cmds, err := LoadCommands(path)
	if err != nil {
		t.Fatalf("LoadCommands: %v", err)
	}
	want := []string{"router bgp 1", "neighbor x shutdown"}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("cmds = %v, want %v", cmds, want)
	}
}

func TestLoadCommands_NoEnableLine(t *testing.T) {
	path := writeCommands(t, "configure\nrouter bgp 1\n")
	cmds, err := LoadCommands(path)
	if err != nil {
		t.Fatalf("LoadCommands: %v", err)
	}
	want := []string{"configure", "router bgp 1"}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("cmds = %v, want %v", cmds, want)
	}
}

func TestLoadCommands_EnableNotFirst(t *testing.T) {
	// "enable" anywhere but the head is an ordinary command.
	path := writeCommands(t, "configure\nenable\n")
	cmds, err := LoadCommands(path)
	if err != nil {
		t.Fatalf("LoadCommands: %v", err)
	}
	want := []string{"configure", "enable"}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("cmds = %v, want %v", cmds, want)
	}
}

func TestLoadCommands_TrimsAndSkipsBlanks(t *testing.T) {
	path := writeCommands(t, "  enable  \n\n   router bgp 1\t\n   \nneighbor x shutdown\n")
	cmds, err := LoadCommands(path)
	if err != nil {
		t.Fatalf("LoadCommands: %v", err)
	}
	want := []string{"router bgp 1", "neighbor x shutdown"}
	if !reflect.DeepEqual(cmds, want) {
		t.Errorf("cmds = %v, want %v", cmds, want)
	}
}

func TestApply_SubmitsOneBatch(t *testing.T) {
	runner := &fakeRunner{}
	path := writeCommands(t, "enable\nrouter bgp 1\n")

	if err := NewApplier(runner).Apply(context.Background(), Fail, path); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(runner.batches) != 1 {
		t.Fatalf("batches = %d, want 1", len(runner.batches))
	}
	if want := []string{"router bgp 1"}; !reflect.DeepEqual(runner.batches[0], want) {
		t.Errorf("batch = %v, want %v", runner.batches[0], want)
	}
}

func TestApply_RunnerFailure(t *testing.T) {
	runner := &fakeRunner{err: errors.New("socket unavailable")}
	path := writeCommands(t, "router bgp 1\n")

	if err := NewApplier(runner).Apply(context.Background(), Recover, path); err == nil {
		t.Fatal("Apply should report runner failure")
	}
}

func TestApply_MissingFile(t *testing.T) {
	runner := &fakeRunner{}
	err := NewApplier(runner).Apply(context.Background(), Fail, filepath.Join(t.TempDir(), "gone.conf"))
	if err == nil {
		t.Fatal("Apply should fail on a missing file")
	}
	if len(runner.batches) != 0 {
		t.Errorf("no batch should be submitted, got %d", len(runner.batches))
	}
}
