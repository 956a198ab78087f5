package remedy

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

const defaultSubmitTimeout = 10 * time.Second

// EAPIClient submits command batches as JSON-RPC 2.0 runCmds calls over the
// switch's unix-domain command socket. Each batch uses one short-lived
// connection; the whole exchange is bounded by Timeout.
type EAPIClient struct {
	SocketPath string
	Timeout    time.Duration // zero means defaultSubmitTimeout

	nextID atomic.Uint64
}

type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
	ID      uint64    `json:"id"`
}

type rpcParams struct {
	Version int      `json:"version"`
	Cmds    []string `json:"cmds"`
	Format  string   `json:"format"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Run dials the command socket, submits the batch, and decodes one response.
// The connection is closed on every path.
func (c *EAPIClient) Run(ctx context.Context, cmds []string) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultSubmitTimeout
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "unix", c.SocketPath)
	if err != nil {
		return fmt.Errorf("dial command socket %s: %w", c.SocketPath, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(timeout))

	req := rpcRequest{
		JSONRPC: "2.0",
		Method:  "runCmds",
		Params:  rpcParams{Version: 1, Cmds: cmds, Format: "json"},
		ID:      c.nextID.Add(1),
	}
	if err := json.NewEncoder(conn).Encode(req); err != nil {
		return fmt.Errorf("send command batch: %w", err)
	}

	var resp rpcResponse
	if err := json.NewDecoder(conn).Decode(&resp); err != nil {
		return fmt.Errorf("read command response: %w", err)
	}
	if resp.Error != nil {
		return fmt.Errorf("command batch rejected: %s (code %d)", resp.Error.Message, resp.Error.Code)
	}
	return nil
}
