// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package clientaddr

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func lookup(h map[string]string) HeaderLookup {
	return func(name string) string { return h[name] }
}

func TestResolve(t *testing.T) {
	tcs := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote only", nil, "10.0.0.1", "10.0.0.1"},
		{"forwarded", map[string]string{"X-Forwarded-For": "1.2.3.4"}, "10.0.0.1", "1.2.3.4"},
		{"forwarded chain", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "10.0.0.1", "1.2.3.4"},
		{"unknown first entry", map[string]string{"X-Forwarded-For": "unknown, 5.6.7.8"}, "10.0.0.1", "5.6.7.8"},
		{"unknown header falls through", map[string]string{"X-Forwarded-For": "UNKNOWN", "Proxy-Client-IP": "2.2.2.2"}, "10.0.0.1", "2.2.2.2"},
		{"empty header falls through", map[string]string{"X-Forwarded-For": "", "WL-Proxy-Client-IP": "3.3.3.3"}, "10.0.0.1", "3.3.3.3"},
		{"order", map[string]string{"HTTP_X_FORWARDED_FOR": "5.5.5.5", "HTTP_CLIENT_IP": "4.4.4.4"}, "10.0.0.1", "4.4.4.4"},
		{"last header", map[string]string{"HTTP_X_FORWARDED_FOR": "5.5.5.5"}, "10.0.0.1", "5.5.5.5"},
		{"all unknown", map[string]string{"X-Forwarded-For": "Unknown"}, "unknown", ""},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(lookup(tc.headers), tc.remote))
		})
	}
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", FromRequest(r))

	r.Header.Set("X-Forwarded-For", "198.51.100.7, 192.0.2.1")
	assert.Equal(t, "198.51.100.7", FromRequest(r))
}
