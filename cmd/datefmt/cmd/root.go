// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cmd implements the commands of datefmt.
package cmd

import (
	"log/slog"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"gonih.org/datefmt"
	"gonih.org/datefmt/internal/config"
	"gonih.org/datefmt/internal/exitcode"
	"gonih.org/datefmt/internal/logging"
)

// newClock returns the clock of the service. Tests replace it.
var newClock = clockwork.NewRealClock

// rootOptions holds the global flags and the state derived from them. It is
// shared by all subcommands of one invocation.
type rootOptions struct {
	configFile string
	verbose    bool
	output     string

	svc *datefmt.Service
	log *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:   "datefmt",
		Short: "Format, parse and enumerate dates",
		Long: `datefmt formats and parses dates with patterns like yyyy-MM-dd HH:mm:ss,
computes the boundaries of days, weeks, months and years, and lists the
labels of ranges of days, hours, weeks and months.

Times given to --at, --from and --to are RFC 3339, yyyy-MM-dd,
yyyy-MM-dd HH:mm:ss or "now".`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: o.setup,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&o.configFile, "config", "", "Config file (default: $"+config.EnvVar+")")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "Log debug messages to stderr")
	pf.StringVarP(&o.output, "output", "o", outputPlain, "Output format: plain, json or yaml")

	root.AddCommand(
		newFormatCmd(o),
		newParseCmd(o),
		newBoundaryCmd(o),
		newRangeCmd(o),
		newClientIPCmd(o),
		newVersionCmd(),
	)
	return root
}

// Execute runs the datefmt command with the arguments of the process.
func Execute() error {
	return classify(newRootCmd().Execute())
}

// classify turns the plain errors returned by cobra for bad arguments and
// flags into usage errors, so they exit with code 2.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var e *exitcode.Error
	if errors.As(err, &e) {
		return err
	}
	if isCobraUsageError(err) {
		return exitcode.Usage(err.Error())
	}
	return err
}

func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "arg(s)") ||
		strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "invalid argument") ||
		strings.HasPrefix(msg, "required flag(s)") ||
		strings.Contains(msg, "flags in the group")
}

// setup loads the configuration and builds the logger and the service.
func (o *rootOptions) setup(cmd *cobra.Command, args []string) error {
	switch o.output {
	case outputPlain, outputJSON, outputYAML:
	default:
		return exitcode.Usagef("invalid output format %q: want plain, json or yaml", o.output)
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return exitcode.General("loading configuration", err)
	}
	level := cfg.Level()
	if o.verbose {
		level = slog.LevelDebug
	}
	o.log, err = logging.New(cmd.ErrOrStderr(), cfg.Log.Format, level)
	if err != nil {
		return exitcode.General("configuring logging", err)
	}
	loc, err := cfg.LoadLocation()
	if err != nil {
		return exitcode.General("loading configuration", err)
	}
	o.svc = datefmt.NewService(
		datefmt.WithLocation(loc),
		datefmt.WithCapacity(cfg.Cache.Capacity),
		datefmt.WithClock(newClock()),
		datefmt.WithLogger(o.log),
	)
	o.log.Debug("configured",
		slog.String("location", loc.String()),
		logging.Int("cache_capacity", cfg.Cache.Capacity))
	return nil
}

// parseTime parses a time given on the command line.
func (o *rootOptions) parseTime(flag, s string) (time.Time, error) {
	switch strings.TrimSpace(s) {
	case "", "now":
		return o.svc.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, p := range []string{datefmt.PatternFull, datefmt.PatternDateOnly} {
		if t, err := o.svc.ParseDate(s, p); err == nil {
			return t, nil
		}
	}
	return time.Time{}, exitcode.Usagef("invalid time %q for --%s: want RFC 3339, yyyy-MM-dd, yyyy-MM-dd HH:mm:ss or now", s, flag)
}

// patternError makes invalid patterns usage errors.
func patternError(err error) error {
	if errors.Is(err, datefmt.ErrInvalidPattern) {
		return exitcode.Usage(err.Error())
	}
	return err
}
