package main

import (
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	bdgraph "github.com/azybler/bdgraph"
)

var statsSnapshotPath string
var statsPathGlob string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Report node/edge counts and per-path coverage for a snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := statsSnapshotPath
		if snapshot == "" {
			snapshot = cfg.SnapshotPath
		}

		f, err := os.Open(snapshot)
		if err != nil {
			return fmt.Errorf("open %s: %w", snapshot, err)
		}
		defer f.Close()

		g, err := bdgraph.Load(f)
		if err != nil {
			return fmt.Errorf("load %s: %w", snapshot, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "nodes\t%d\n", g.NodeSize())
		fmt.Fprintf(cmd.OutOrStdout(), "paths\t%d\n", g.GetPathCount())

		var match glob.Glob
		if statsPathGlob != "" {
			match, err = glob.Compile(statsPathGlob)
			if err != nil {
				return fmt.Errorf("--paths glob %q: %w", statsPathGlob, err)
			}
		}

		g.ForEachPathHandle(func(p bdgraph.PathHandle) bool {
			name := g.GetPathName(p)
			if match != nil && !match.Match(name) {
				return true
			}
			length := 0
			occCount := 0
			g.ForEachOccurrenceInPath(p, func(occ bdgraph.Occurrence) bool {
				occCount++
				length += g.GetLength(g.GetOccurrenceHandle(occ))
				return true
			})
			fmt.Fprintf(cmd.OutOrStdout(), "path\t%s\t%d occurrences\t%d bases\n", name, occCount, length)
			return true
		})
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSnapshotPath, "snapshot", "", "snapshot path (default: config snapshot_path)")
	statsCmd.Flags().StringVar(&statsPathGlob, "paths", "", "only report paths whose name matches this glob")
	rootCmd.AddCommand(statsCmd)
}
