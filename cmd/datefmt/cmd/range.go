// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"github.com/spf13/cobra"

	"gonih.org/datefmt"
	"gonih.org/datefmt/internal/exitcode"
)

// defaultRangePatterns are the patterns used for each step when --pattern
// is not given.
var defaultRangePatterns = map[datefmt.Step]string{
	datefmt.Day:   datefmt.PatternDateOnly,
	datefmt.Hour:  "yyyy-MM-dd HH:00",
	datefmt.Week:  "YYYY-'W'ww",
	datefmt.Month: datefmt.PatternYearMonth,
}

type rangeResult struct {
	Step    string   `json:"step" yaml:"step"`
	Pattern string   `json:"pattern" yaml:"pattern"`
	Labels  []string `json:"labels" yaml:"labels"`
}

func newRangeCmd(o *rootOptions) *cobra.Command {
	var (
		from, to, pattern string
		offset            int
	)
	c := &cobra.Command{
		Use:   "range {day|hour|week|month}",
		Short: "List the labels of a range of days, hours, weeks or months",
		Long: `List one label per step from --from up to --to.

For days, hours and weeks, --to itself is excluded unless --offset is 1;
the offset moves the end of the range by that many steps. For months,
every month touched by the range is listed and --offset is ignored.`,
		Example: `  datefmt range day --from 2024-01-01 --to 2024-01-03 --offset 1
  datefmt range month --from 2024-01-15 --to 2024-03-10 --pattern MMM`,
		ValidArgs: []string{"day", "hour", "week", "month"},
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			step, err := datefmt.ParseStep(args[0])
			if err != nil {
				return exitcode.Usage(err.Error())
			}
			begin, err := o.parseTime("from", from)
			if err != nil {
				return err
			}
			end, err := o.parseTime("to", to)
			if err != nil {
				return err
			}
			if pattern == "" {
				pattern = defaultRangePatterns[step]
			}

			var labels []string
			switch step {
			case datefmt.Hour:
				labels, err = o.svc.EnumerateHours(begin, end, offset, pattern)
			case datefmt.Week:
				labels, err = o.svc.EnumerateWeeks(begin, end, offset, pattern)
			case datefmt.Month:
				labels, err = o.svc.EnumerateMonths(begin, end, pattern)
			default:
				labels, err = o.svc.EnumerateDays(begin, end, offset, pattern)
			}
			if err != nil {
				return patternError(err)
			}
			res := rangeResult{Step: step.String(), Pattern: pattern, Labels: labels}
			return o.render(cmd.OutOrStdout(), res, lines(labels...))
		},
	}
	f := c.Flags()
	f.StringVar(&from, "from", "", "Start of the range")
	f.StringVar(&to, "to", "", "End of the range")
	f.IntVar(&offset, "offset", 0, "Steps to move the end of the range by")
	f.StringVarP(&pattern, "pattern", "p", "", "Pattern of the labels (default depends on the step)")
	_ = c.MarkFlagRequired("from")
	_ = c.MarkFlagRequired("to")
	return c
}
