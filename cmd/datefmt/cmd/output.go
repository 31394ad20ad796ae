// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	outputPlain = "plain"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

// render writes v to w in the selected output format. The plain format is
// written by plain.
func (o *rootOptions) render(w io.Writer, v any, plain func(io.Writer) error) error {
	switch o.output {
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return errors.Wrap(err, "formatting JSON output")
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "formatting YAML output")
		}
		return enc.Close()
	}
	return plain(w)
}

// lines returns a plain renderer printing each of ls on its own line.
func lines(ls ...string) func(io.Writer) error {
	return func(w io.Writer) error {
		for _, l := range ls {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
		return nil
	}
}
