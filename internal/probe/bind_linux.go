//go:build linux

package probe

import (
	"fmt"
	"syscall"

	"golang.org/x/sys/unix"
)

// bindToDevice returns a dialer Control hook that binds the probe socket to
// the named VRF device before connect. A missing device surfaces as a dial
// error, which the caller reports as a transport-level outcome.
func bindToDevice(device string) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		var sockErr error
		if err := c.Control(func(fd uintptr) {
			sockErr = unix.SetsockoptString(int(fd), unix.SOL_SOCKET, unix.SO_BINDTODEVICE, device)
		}); err != nil {
			return err
		}
		if sockErr != nil {
			return fmt.Errorf("bind to device %q: %w", device, sockErr)
		}
		return nil
	}
}
