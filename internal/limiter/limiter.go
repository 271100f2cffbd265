// Package limiter caps concurrent connections per client IP.
package limiter

import (
	"net"
	"sync"
)

type IPLimiter struct {
	max       int
	ipMutex   sync.Mutex
	ipCounter map[string]int
}

func NewIPLimiter(maxPerIP int) *IPLimiter {
	return &IPLimiter{max: maxPerIP, ipCounter: make(map[string]int)}
}

// Acquire reserves a slot for ip and reports the count including this
// connection. It fails without reserving when the ip is at its limit.
func (l *IPLimiter) Acquire(ip string) (int, bool) {
	l.ipMutex.Lock()
	defer l.ipMutex.Unlock()
	if l.ipCounter[ip] >= l.max {
		return l.ipCounter[ip] + 1, false
	}
	l.ipCounter[ip]++
	return l.ipCounter[ip], true
}

func (l *IPLimiter) Release(ip string) {
	l.ipMutex.Lock()
	defer l.ipMutex.Unlock()
	l.ipCounter[ip]--
	if l.ipCounter[ip] <= 0 {
		delete(l.ipCounter, ip)
	}
}

func (l *IPLimiter) Count(ip string) int {
	l.ipMutex.Lock()
	defer l.ipMutex.Unlock()
	return l.ipCounter[ip]
}

func (l *IPLimiter) Max() int {
	return l.max
}

// HostIP strips the port from a remote address.
func HostIP(addr net.Addr) string {
	if tcp, ok := addr.(*net.TCPAddr); ok {
		return tcp.IP.String()
	}
	return HostFromString(addr.String())
}

func HostFromString(remote string) string {
	host, _, err := net.SplitHostPort(remote)
	if err != nil {
		return remote
	}
	return host
}
