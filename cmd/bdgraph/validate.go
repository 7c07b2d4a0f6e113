package main

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	bdgraph "github.com/azybler/bdgraph"
)

var validateSnapshotPath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a snapshot, round-trip it through serialize/load, and check invariants",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := validateSnapshotPath
		if snapshot == "" {
			snapshot = cfg.SnapshotPath
		}

		release, err := acquireSnapshotLock(snapshot)
		if err != nil {
			return err
		}
		defer release()

		f, err := os.Open(snapshot)
		if err != nil {
			return fmt.Errorf("open %s: %w", snapshot, err)
		}
		g, err := bdgraph.Load(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load %s: %w", snapshot, err)
		}

		if err := g.CheckInvariants(); err != nil {
			return fmt.Errorf("invariant check failed: %w", err)
		}

		var buf bytes.Buffer
		if _, err := g.Serialize(&buf); err != nil {
			return fmt.Errorf("round-trip serialize: %w", err)
		}
		g2, err := bdgraph.Load(&buf)
		if err != nil {
			return fmt.Errorf("round-trip load: %w", err)
		}
		if g2.NodeSize() != g.NodeSize() || g2.GetPathCount() != g.GetPathCount() {
			return fmt.Errorf("round trip mismatch: nodes %d vs %d, paths %d vs %d",
				g.NodeSize(), g2.NodeSize(), g.GetPathCount(), g2.GetPathCount())
		}
		if err := g2.CheckInvariants(); err != nil {
			return fmt.Errorf("round-tripped graph failed invariant check: %w", err)
		}

		slog.Info("snapshot valid", "path", snapshot, "nodes", g.NodeSize(), "paths", g.GetPathCount())
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateSnapshotPath, "snapshot", "", "snapshot path (default: config snapshot_path)")
	rootCmd.AddCommand(validateCmd)
}
