// failoverd probes one HTTP/HTTPS endpoint on a fixed interval and applies an
// operator-supplied configuration batch when the endpoint goes down, and
// another when it recovers. Wiring lives here; the behavior lives in
// internal/agent, internal/probe, and internal/remedy.
package main
