//go:build !linux

package probe

import (
	"fmt"
	"syscall"
)

// bindToDevice requires SO_BINDTODEVICE, which only linux provides. On other
// platforms a VRF-scoped probe fails at dial time with a transport error.
func bindToDevice(device string) func(network, address string, c syscall.RawConn) error {
	return func(network, address string, c syscall.RawConn) error {
		return fmt.Errorf("vrf %q: device-bound sockets are not supported on this platform", device)
	}
}
