package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	bdgraph "github.com/azybler/bdgraph"
)

var buildGFAPath string
var buildSnapshotPath string

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Parse a GFA v1 file and write it out as a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := buildSnapshotPath
		if snapshot == "" {
			snapshot = cfg.SnapshotPath
		}

		release, err := acquireSnapshotLock(snapshot)
		if err != nil {
			return err
		}
		defer release()

		in, err := os.Open(buildGFAPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", buildGFAPath, err)
		}
		defer in.Close()

		slog.Info("parsing GFA", "path", buildGFAPath)
		g := bdgraph.New()
		g.SetAlphabetStrict(cfg.AlphabetStrict)
		if err := bdgraph.ParseGFAInto(in, g); err != nil {
			return fmt.Errorf("parse GFA: %w", err)
		}
		slog.Info("parsed graph", "nodes", g.NodeSize(), "paths", g.GetPathCount())

		out, err := os.Create(snapshot)
		if err != nil {
			return fmt.Errorf("create %s: %w", snapshot, err)
		}
		defer out.Close()

		n, err := g.Serialize(out)
		if err != nil {
			return fmt.Errorf("serialize to %s: %w", snapshot, err)
		}
		slog.Info("wrote snapshot", "path", snapshot, "bytes", n)
		return nil
	},
}

func init() {
	buildCmd.Flags().StringVar(&buildGFAPath, "gfa", "", "input GFA v1 file (required)")
	buildCmd.Flags().StringVar(&buildSnapshotPath, "snapshot", "", "output snapshot path (default: config snapshot_path)")
	buildCmd.MarkFlagRequired("gfa")
	rootCmd.AddCommand(buildCmd)
}
