// Package status exports the agent's observable state: an insertion-ordered
// key/value registry (one key per recognized option plus HealthStatus and
// Status) served as a plaintext page, and probe/remediation counters rendered
// as Prometheus metric families on /metrics.
package status
