// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"net"
	"net/http/httptest"
	"testing"
)

func TestIsPrivateIP(t *testing.T) {
	tests := []struct {
		name    string
		ip      string
		private bool
	}{
		{"rfc1918 10.x", "10.0.0.1", true},
		{"rfc1918 172.16.x", "172.16.5.5", true},
		{"rfc1918 192.168.x", "192.168.1.1", true},
		{"loopback", "127.0.0.1", true},
		{"link-local", "169.254.1.1", true},
		{"ipv6 loopback", "::1", true},
		{"ipv6 unique local", "fd12::1", true},
		{"public v4", "93.184.216.34", false},
		{"public v6", "2606:4700::1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPrivateIP(net.ParseIP(tt.ip)); got != tt.private {
				t.Errorf("IsPrivateIP(%s) = %v, want %v", tt.ip, got, tt.private)
			}
		})
	}

	if !IsPrivateIP(nil) {
		t.Error("nil IP must be treated as private")
	}
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "203.0.113.9:54321"
	if got := RealIP(r); got != "203.0.113.9" {
		t.Errorf("RemoteAddr fallback = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 10.0.0.1")
	if got := RealIP(r); got != "198.51.100.7" {
		t.Errorf("X-Forwarded-For = %q", got)
	}

	r.Header.Set("X-Real-IP", "192.0.2.44")
	if got := RealIP(r); got != "192.0.2.44" {
		t.Errorf("X-Real-IP precedence = %q", got)
	}

	r6 := httptest.NewRequest("GET", "/", nil)
	r6.RemoteAddr = "[2001:db8::1]:443"
	if got := RealIP(r6); got != "2001:db8::1" {
		t.Errorf("IPv6 RemoteAddr = %q", got)
	}
}
