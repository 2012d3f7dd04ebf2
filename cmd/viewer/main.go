// Package main Benchmark Viewer
// @title Benchmark Viewer API
// @version 1.0
// @description Browse reinforcement-learning benchmark runs, their scores and learning curves
// @license.name Apache 2.0
// @license.url https://opensource.org/licenses/Apache-2.0
// @BasePath /
package main

import (
	"log/slog"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error("Viewer failed", "error", err)
		os.Exit(1)
	}
}
