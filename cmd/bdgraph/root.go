// Package main is the bdgraph CLI driver: a thin cobra command tree over
// the bdgraph library, grounded on hyper-light-sylk/cmd's cobra layout and
// the teacher's cmd/*/main.go "library package + driver binary" split.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/azybler/bdgraph/internal/config"
)

var (
	cfgPath  string
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "bdgraph",
	Short: "Build, inspect, and mutate succinct bidirected DNA sequence graphs",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		var level slog.Level
		if err := level.UnmarshalText([]byte(logLevel)); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a bdgraph.yaml config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
