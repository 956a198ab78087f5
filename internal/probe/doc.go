// Package probe tests reachability of one HTTP/HTTPS endpoint with a
// hand-built request over a raw TCP connection.
//
// HTTPChecker.Check dials the target (optionally binding the socket to a VRF
// device), wraps the connection in an unverified TLS handshake for https
// targets, writes a minimal HTTP/1.1 GET with optional Basic-Auth, and reads
// the response exactly once into a fixed 8 KiB buffer. The outcome is
// tri-state: Matched, NotMatched, or TransportError. A connect timeout is
// reported as NotMatched — it is a down-signal, not a distinct error class.
//
// Match applies the configured pattern as an unanchored search over the raw
// response bytes; empty content never matches.
package probe
