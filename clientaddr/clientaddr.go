// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package clientaddr resolves the address of an HTTP client that may be
// behind one or more proxies.
package clientaddr

import (
	"net"
	"net/http"
	"strings"
)

// Headers are the forwarding headers consulted by Resolve, in order.
var Headers = []string{
	"X-Forwarded-For",
	"Proxy-Client-IP",
	"WL-Proxy-Client-IP",
	"HTTP_CLIENT_IP",
	"HTTP_X_FORWARDED_FOR",
}

const unknown = "unknown"

// HeaderLookup returns the value of the named header, or the empty string.
type HeaderLookup func(name string) string

// Resolve returns the client address. It takes the first of Headers with a
// usable value, falling back to remote, the address of the peer. Empty
// values and "unknown" (in any case) are not usable. As proxies append to
// the list, the first entry of a comma-separated value that is not
// "unknown" is returned. If there is none, Resolve returns "".
func Resolve(lookup HeaderLookup, remote string) string {
	v := ""
	for _, h := range Headers {
		if v = lookup(h); usable(v) {
			break
		}
	}
	if !usable(v) {
		v = remote
	}
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); usable(s) {
			return s
		}
	}
	return ""
}

// FromRequest resolves the client address of r. The port of r.RemoteAddr
// is dropped.
func FromRequest(r *http.Request) string {
	remote := r.RemoteAddr
	if host, _, err := net.SplitHostPort(remote); err == nil {
		remote = host
	}
	return Resolve(r.Header.Get, remote)
}

func usable(v string) bool {
	v = strings.TrimSpace(v)
	return v != "" && !strings.EqualFold(v, unknown)
}
