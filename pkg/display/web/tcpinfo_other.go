//go:build !linux

package web

import "net"

// roundTrip is only supported on linux, where TCP_INFO exposes
// the kernel's round trip estimate.
func roundTrip(net.Conn) (uint32, error) {
	return 0, errNotTCP
}
