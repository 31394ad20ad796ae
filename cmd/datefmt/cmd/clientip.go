// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/spf13/cobra"

	"gonih.org/datefmt/clientaddr"
	"gonih.org/datefmt/internal/exitcode"
)

type clientIPResult struct {
	Address string `json:"address" yaml:"address"`
}

func newClientIPCmd(o *rootOptions) *cobra.Command {
	var (
		headers []string
		remote  string
	)
	c := &cobra.Command{
		Use:   "client-ip",
		Short: "Resolve the client address of a proxied request",
		Long: `Resolve the client address of an HTTP request from its forwarding headers,
falling back to the address of the peer. The headers are consulted in this
order: ` + strings.Join(clientaddr.Headers, ", ") + `.`,
		Example: `  datefmt client-ip -H "X-Forwarded-For: unknown, 198.51.100.7" --remote 10.0.0.1`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h := make(http.Header)
			for _, kv := range headers {
				name, value, ok := strings.Cut(kv, ":")
				if !ok || strings.TrimSpace(name) == "" {
					return exitcode.Usagef("invalid header %q: want \"Name: value\"", kv)
				}
				h.Add(strings.TrimSpace(name), strings.TrimSpace(value))
			}
			addr := clientaddr.Resolve(h.Get, remote)
			o.log.Debug("resolved client address",
				slog.Int("headers", len(h)),
				slog.String("address", addr))
			if addr == "" {
				return exitcode.General("no usable client address", nil)
			}
			return o.render(cmd.OutOrStdout(), clientIPResult{Address: addr}, lines(addr))
		},
	}
	f := c.Flags()
	f.StringArrayVarP(&headers, "header", "H", nil, `Request header as "Name: value", may be repeated`)
	f.StringVar(&remote, "remote", "", "Address of the peer")
	return c
}
