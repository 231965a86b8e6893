//go:build !linux

package web

import (
	"net"
	"time"
)

func rtt(net.Conn) (time.Duration, error) {
	return 0, errNoRTT
}
