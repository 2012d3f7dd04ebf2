package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/DjordjeVuckovic/bench-viewer/internal/benchmark"
	"github.com/DjordjeVuckovic/bench-viewer/internal/dashboard"
	"github.com/DjordjeVuckovic/bench-viewer/pkg/config/env"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "VIEWER"
	defaultEnvPath = ".env"

	keyDebug      = "debug"
	keyBenchmarks = "benchmarks"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "viewer",
		Short:         "Browse reinforcement-learning benchmark runs and their learning curves",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := env.LoadDotEnv(defaultEnvPath); err != nil {
				return fmt.Errorf("load .env: %w", err)
			}
			setupLogging(v.GetBool(keyDebug))
			return nil
		},
	}

	cmd.PersistentFlags().Bool(keyDebug, false, "enable debug logging")
	cmd.PersistentFlags().String(keyBenchmarks, "", "YAML file with extra benchmark specs")
	_ = v.BindPFlag(keyDebug, cmd.PersistentFlags().Lookup(keyDebug))
	_ = v.BindPFlag(keyBenchmarks, cmd.PersistentFlags().Lookup(keyBenchmarks))

	cmd.AddCommand(newServeCmd(v), newScoresCmd(v))

	return cmd
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadDashboard resolves the benchmark of dataPath and builds the run index.
func loadDashboard(v *viper.Viper, dataPath string) (*dashboard.Dashboard, error) {
	registry, err := benchmark.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("load builtin benchmarks: %w", err)
	}
	if path := v.GetString(keyBenchmarks); path != "" {
		if err := registry.RegisterFile(path); err != nil {
			return nil, fmt.Errorf("load benchmarks from %s: %w", path, err)
		}
	}

	d, err := dashboard.New(dashboard.Config{DataPath: dataPath}, registry)
	if err != nil {
		return nil, err
	}
	if err := d.Refresh(); err != nil {
		return nil, fmt.Errorf("index benchmark runs: %w", err)
	}
	return d, nil
}
