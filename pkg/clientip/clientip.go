package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client IP for an audit trail entry.
// Proxy headers are consulted before the socket address:
//  1. X-Forwarded-For (first valid entry)
//  2. X-Real-IP
//  3. RemoteAddr
//
// Returns an empty string when no valid address is found; audit entries
// record the source IP as unknown in that case.
func FromRequest(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		for _, ip := range strings.Split(forwarded, ",") {
			if parsed := normalize(ip); parsed != "" {
				return parsed
			}
		}
	}

	if ip := normalize(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return normalize(r.RemoteAddr)
	}
	return normalize(host)
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
