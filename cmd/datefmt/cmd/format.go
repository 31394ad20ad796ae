// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"

	"gonih.org/datefmt"
)

type formatResult struct {
	Pattern string `json:"pattern" yaml:"pattern"`
	Value   string `json:"value" yaml:"value"`
}

func newFormatCmd(o *rootOptions) *cobra.Command {
	var (
		pattern     string
		at          string
		date, short bool
	)
	c := &cobra.Command{
		Use:   "format",
		Short: "Format a time",
		Long: `Format a time according to a pattern. Without any pattern flag the time
is formatted as yyyy-MM-dd HH:mm:ss.`,
		Example: `  datefmt format --pattern "EEEE, d MMMM yyyy"
  datefmt format --date --at 2024-02-29T12:00:00Z`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := o.parseTime("at", at)
			if err != nil {
				return err
			}
			var res formatResult
			switch {
			case pattern != "":
				res.Pattern = pattern
				res.Value, err = o.svc.Format(t, pattern)
				if err != nil {
					return patternError(err)
				}
			case date:
				res.Pattern, res.Value = datefmt.PatternDateOnly, o.svc.FormatDateOnly(t)
			case short:
				res.Pattern, res.Value = datefmt.PatternMonthDayHourMinute, o.svc.FormatMonthDayHourMinute(t)
			default: // --full
				res.Pattern, res.Value = datefmt.PatternFull, o.svc.FormatFull(t)
			}
			return o.render(cmd.OutOrStdout(), res, lines(res.Value))
		},
	}
	f := c.Flags()
	f.StringVarP(&pattern, "pattern", "p", "", "Pattern to format with")
	f.Bool("full", false, "Format as yyyy-MM-dd HH:mm:ss (the default)")
	f.BoolVar(&date, "date", false, "Format as yyyy-MM-dd")
	f.BoolVar(&short, "short", false, "Format as MM-dd HH:mm")
	f.StringVar(&at, "at", "now", "Time to format")
	c.MarkFlagsMutuallyExclusive("pattern", "full", "date", "short")
	return c
}
