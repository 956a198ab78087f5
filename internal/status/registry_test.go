package status

import (
	"reflect"
	"testing"
)

func TestRegistry_SetPreservesInsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Set("Status", "Administratively Up")
	r.Set("IPv4", "10.1.1.1")
	r.Set("HealthStatus", "Unknown")
	r.Set("IPv4", "10.1.1.2") // overwrite must not reorder

	want := []KV{
		{"Status", "Administratively Up"},
		{"IPv4", "10.1.1.2"},
		{"HealthStatus", "Unknown"},
	}
	if got := r.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot = %v, want %v", got, want)
	}
}

func TestRegistry_Del(t *testing.T) {
	r := NewRegistry()
	r.Set("a", "1")
	r.Set("b", "2")
	r.Del("a")
	r.Del("missing") // no-op

	if got := r.Get("a"); got != "" {
		t.Errorf("Get(a) = %q after Del", got)
	}
	want := []KV{{"b", "2"}}
	if got := r.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot = %v, want %v", got, want)
	}
}
