// Package agent holds the health state machine and the scheduler that drives
// it.
//
// Machine runs one cycle per tick: rebuild the typed option snapshot (an
// invalid configuration skips the tick entirely), probe the endpoint, and
// fold the outcome into the Unknown → {Up, Down}, Up ↔ Down state machine.
// A miss increments the consecutive-failure counter; reaching FAILCOUNT
// applies the fail batch exactly once and transitions Down. Further misses
// while Down are absorbed. The first match while Down applies the recover
// batch exactly once, transitions Up, and resets the counter — the threshold
// debounces flapping, the Down-absorb rule prevents repeated remediation.
//
// Everything runs on the one goroutine inside Run; option updates from the
// config watcher are handed over through a channel and applied between ticks.
package agent
