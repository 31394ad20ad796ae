// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var boundaryKinds = []string{"day", "day-end", "week", "month", "year"}

type boundaryResult struct {
	Boundary    string `json:"boundary" yaml:"boundary"`
	Time        string `json:"time" yaml:"time"`
	Formatted   string `json:"formatted" yaml:"formatted"`
	EpochMillis int64  `json:"epochMillis" yaml:"epochMillis"`
}

func newBoundaryCmd(o *rootOptions) *cobra.Command {
	var at string
	c := &cobra.Command{
		Use:   "boundary {day|day-end|week|month|year}",
		Short: "Print the start or end of a calendar period",
		Long: `Print the start of the day, week (starting on Monday), month or year of a
time, or the last millisecond of its day.`,
		Example: `  datefmt boundary week
  datefmt boundary day-end --at 2024-02-29`,
		ValidArgs: boundaryKinds,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := o.parseTime("at", at)
			if err != nil {
				return err
			}
			now := at == "" || at == "now"
			res := boundaryResult{Boundary: args[0]}
			var b time.Time
			switch args[0] {
			case "day":
				b = o.svc.StartOfDay(t)
				res.Formatted, res.EpochMillis = o.svc.ZeroPointString(t), o.svc.ZeroPointEpochMillis(t)
			case "day-end":
				b = o.svc.EndOfDay(t)
				res.Formatted, res.EpochMillis = o.svc.LastPointString(t), o.svc.LastPointEpochMillis(t)
			case "week":
				if now {
					b = o.svc.StartOfWeek()
				} else {
					b = o.svc.WeekStartOf(t)
				}
			case "month":
				if now {
					b = o.svc.StartOfMonth()
				} else {
					b = o.svc.MonthStartOf(t)
				}
			case "year":
				if now {
					b = o.svc.StartOfYear()
				} else {
					b = o.svc.YearStartOf(t)
				}
			}
			res.Time = b.Format(time.RFC3339Nano)
			if res.Formatted == "" {
				res.Formatted, res.EpochMillis = o.svc.FormatFull(b), b.UnixMilli()
			}
			return o.render(cmd.OutOrStdout(), res, lines(res.Formatted))
		},
	}
	c.Flags().StringVar(&at, "at", "now", "Time whose period is used")
	return c
}
