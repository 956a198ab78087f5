package probe

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"regexp"
	"strconv"
	"time"
)

// readBufferSize bounds the single response read. The prober never loops to
// EOF: whatever arrives in one read is what the matcher sees.
const readBufferSize = 8 * 1024

// Target describes the endpoint under test. A Target is built fresh from the
// current option values before every probe and never mutated afterwards.
type Target struct {
	Address  string
	Port     int
	Protocol string // "http" | "https"
	Path     string // request path, normalized to a leading "/"
	Username string // Basic-Auth user; empty means no Authorization header
	Password string
	Device   string // optional VRF device the probe socket is bound to
	Timeout  time.Duration
}

// Kind classifies a probe outcome.
type Kind int

const (
	// Matched means the response body contained the configured pattern.
	Matched Kind = iota
	// NotMatched covers a response without the pattern, an empty body,
	// and a connect timeout (a plain down-signal).
	NotMatched
	// TransportError covers socket, TLS, and read faults. The state machine
	// counts it exactly like NotMatched; the split exists for logs and metrics.
	TransportError
)

func (k Kind) String() string {
	switch k {
	case Matched:
		return "matched"
	case NotMatched:
		return "miss"
	default:
		return "error"
	}
}

// Outcome is the result of one probe. Detail distinguishes the miss variants
// ("empty body", "pattern not found", transport fault text) for logging only.
type Outcome struct {
	Kind   Kind
	Detail string
}

// Checker runs a single probe against a target.
type Checker interface {
	Check(ctx context.Context, tgt Target, re *regexp.Regexp) Outcome
}

// HTTPChecker probes with a hand-built HTTP/1.1 GET over a raw TCP connection,
// optionally TLS-wrapped. It never validates certificates and never follows
// redirects; the response is taken from one bounded read.
type HTTPChecker struct{}

// Check opens the connection, writes the request, reads once, and matches.
// Every exit path closes the transport; no descriptor survives the call.
func (HTTPChecker) Check(ctx context.Context, tgt Target, re *regexp.Regexp) Outcome {
	addr := net.JoinHostPort(tgt.Address, strconv.Itoa(tgt.Port))

	dialer := &net.Dialer{Timeout: tgt.Timeout}
	if tgt.Device != "" {
		dialer.Control = bindToDevice(tgt.Device)
	}

	raw, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		if isTimeout(err) {
			slog.Warn("probe: connect timed out", "addr", addr, "timeout", tgt.Timeout)
			return Outcome{Kind: NotMatched, Detail: "connect timeout"}
		}
		slog.Warn("probe: connect failed", "addr", addr, "err", err)
		return Outcome{Kind: TransportError, Detail: fmt.Sprintf("connect: %v", err)}
	}
	defer raw.Close()

	conn := raw
	if tgt.Protocol == "https" {
		tconn := tls.Client(raw, &tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // reachability probe, not a trust decision
			ServerName:         tgt.Address,
		})
		hsCtx, cancel := context.WithTimeout(ctx, tgt.Timeout)
		err := tconn.HandshakeContext(hsCtx)
		cancel()
		if err != nil {
			slog.Warn("probe: tls handshake failed", "addr", addr, "err", err)
			return Outcome{Kind: TransportError, Detail: fmt.Sprintf("tls handshake: %v", err)}
		}
		defer tconn.Close()
		conn = tconn
	}

	_ = conn.SetDeadline(time.Now().Add(tgt.Timeout))

	if _, err := conn.Write(buildRequest(tgt, addr)); err != nil {
		slog.Warn("probe: write failed", "addr", addr, "err", err)
		return Outcome{Kind: TransportError, Detail: fmt.Sprintf("write request: %v", err)}
	}

	buf := make([]byte, readBufferSize)
	n, err := conn.Read(buf)
	if n == 0 {
		if err == nil || errors.Is(err, io.EOF) {
			slog.Warn("probe: empty body", "addr", addr)
			return Outcome{Kind: NotMatched, Detail: "empty body"}
		}
		slog.Warn("probe: read failed", "addr", addr, "err", err)
		return Outcome{Kind: TransportError, Detail: fmt.Sprintf("read response: %v", err)}
	}

	// A partial read is authoritative: the pattern either made it into this
	// buffer or the probe is a miss.
	if Match(re, buf[:n]) {
		return Outcome{Kind: Matched}
	}
	slog.Warn("probe: pattern not found", "addr", addr, "pattern", re.String())
	return Outcome{Kind: NotMatched, Detail: "pattern not found"}
}

// buildRequest assembles the raw HTTP/1.1 request. The Authorization header
// is included only when a username is configured.
func buildRequest(tgt Target, hostport string) []byte {
	path := tgt.Path
	if path == "" {
		path = "/"
	}

	var b bytes.Buffer
	fmt.Fprintf(&b, "GET %s HTTP/1.1\r\n", path)
	fmt.Fprintf(&b, "Host: %s\r\n", hostport)
	if tgt.Username != "" {
		cred := base64.StdEncoding.EncodeToString([]byte(tgt.Username + ":" + tgt.Password))
		fmt.Fprintf(&b, "Authorization: Basic %s\r\n", cred)
	}
	b.WriteString("Connection: close\r\n\r\n")
	return b.Bytes()
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
