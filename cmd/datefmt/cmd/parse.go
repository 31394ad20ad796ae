// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gonih.org/datefmt"
	"gonih.org/datefmt/internal/exitcode"
)

type parseResult struct {
	Text        string `json:"text" yaml:"text"`
	Pattern     string `json:"pattern" yaml:"pattern"`
	Time        string `json:"time" yaml:"time"`
	EpochMillis int64  `json:"epochMillis" yaml:"epochMillis"`
}

func newParseCmd(o *rootOptions) *cobra.Command {
	var pattern string
	c := &cobra.Command{
		Use:   "parse TEXT",
		Short: "Parse a time",
		Long: `Parse TEXT according to a pattern and print the time in RFC 3339 and in
milliseconds since the Unix epoch. Fields missing from the pattern are
zero, and the configured location is used unless the pattern has a zone
offset.`,
		Example: `  datefmt parse --pattern yyyy-MM-dd 2024-02-29`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := o.svc.ParseDate(args[0], pattern)
			if err != nil {
				if errors.Is(err, datefmt.ErrParse) {
					return exitcode.General("parsing "+strconv.Quote(args[0]), err)
				}
				return patternError(err)
			}
			res := parseResult{
				Text:        args[0],
				Pattern:     pattern,
				Time:        t.Format(time.RFC3339Nano),
				EpochMillis: t.UnixMilli(),
			}
			return o.render(cmd.OutOrStdout(), res, lines(res.Time, strconv.FormatInt(res.EpochMillis, 10)))
		},
	}
	c.Flags().StringVarP(&pattern, "pattern", "p", datefmt.PatternFull, "Pattern TEXT is formatted with")
	return c
}
