package limiter

import (
	"net"
	"testing"
)

func TestIPLimiter(t *testing.T) {
	l := NewIPLimiter(2)

	if n, ok := l.Acquire("10.0.0.1"); !ok || n != 1 {
		t.Fatalf("first Acquire = %d, %v", n, ok)
	}
	if n, ok := l.Acquire("10.0.0.1"); !ok || n != 2 {
		t.Fatalf("second Acquire = %d, %v", n, ok)
	}
	if n, ok := l.Acquire("10.0.0.1"); ok || n != 3 {
		t.Fatalf("third Acquire = %d, %v; want rejection", n, ok)
	}
	if _, ok := l.Acquire("10.0.0.2"); !ok {
		t.Fatal("another ip was rejected")
	}

	l.Release("10.0.0.1")
	if got := l.Count("10.0.0.1"); got != 1 {
		t.Errorf("Count after release = %d, want 1", got)
	}
	l.Release("10.0.0.1")
	if _, present := l.ipCounter["10.0.0.1"]; present {
		t.Error("released ip still tracked")
	}
}

func TestHostIP(t *testing.T) {
	tcp := &net.TCPAddr{IP: net.ParseIP("192.168.1.4"), Port: 2222}
	if got := HostIP(tcp); got != "192.168.1.4" {
		t.Errorf("HostIP = %s", got)
	}
	if got := HostFromString("[::1]:8080"); got != "::1" {
		t.Errorf("HostFromString = %s", got)
	}
	if got := HostFromString("no-port"); got != "no-port" {
		t.Errorf("HostFromString = %s", got)
	}
}
