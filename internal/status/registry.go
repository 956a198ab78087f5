package status

import "sync"

// KV is one exported status pair.
type KV struct {
	Key   string
	Value string
}

// Registry is an insertion-ordered status key/value store. The tick goroutine
// writes; HTTP handlers read concurrently.
type Registry struct {
	mu    sync.RWMutex
	order []string
	vals  map[string]string
}

func NewRegistry() *Registry {
	return &Registry{vals: make(map[string]string)}
}

// Set stores value under key. First-set order is preserved so the status
// page reads the way the options were registered.
func (r *Registry) Set(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vals[key]; !ok {
		r.order = append(r.order, key)
	}
	r.vals[key] = value
}

// Del removes key, if present.
func (r *Registry) Del(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.vals[key]; !ok {
		return
	}
	delete(r.vals, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Get returns the value for key, or "" when unset.
func (r *Registry) Get(key string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.vals[key]
}

// Snapshot returns all pairs in insertion order.
func (r *Registry) Snapshot() []KV {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]KV, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, KV{Key: k, Value: r.vals[k]})
	}
	return out
}
