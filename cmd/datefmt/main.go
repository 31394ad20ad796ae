// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command datefmt formats, parses and enumerates dates from the command line.
package main

import (
	"fmt"
	"os"

	"gonih.org/datefmt/cmd/datefmt/cmd"
	"gonih.org/datefmt/internal/exitcode"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(exitcode.ExitCode(err))
	}
}
