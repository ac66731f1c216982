// SPDX-License-Identifier: MIT

// Command lvlgrid loads a network case, applies a flag plan and reports the
// resulting variable layout.
//
//	lvlgrid counts  --case case.yaml --plan acopf.yaml
//	lvlgrid json    --case case.yaml --plan acopf.yaml --component bus --index 3
//	lvlgrid vars    --case case.yaml --plan acopf.yaml --limits upper
//	lvlgrid metrics --case case.yaml --plan acopf.yaml
//	lvlgrid generate --grid 5x5 --slack 1 --reg-gens 5 --loads 12 --seed 7
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "lvlgrid:", err)
		os.Exit(1)
	}
}
