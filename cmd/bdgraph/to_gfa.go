package main

import (
	"fmt"
	"os"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	bdgraph "github.com/azybler/bdgraph"
)

var toGFASnapshotPath string
var toGFAOutPath string
var toGFAIncludeHidden bool
var toGFAPathGlob string

var toGFACmd = &cobra.Command{
	Use:   "to-gfa",
	Short: "Emit a snapshot as GFA v1 text",
	RunE: func(cmd *cobra.Command, args []string) error {
		snapshot := toGFASnapshotPath
		if snapshot == "" {
			snapshot = cfg.SnapshotPath
		}

		in, err := os.Open(snapshot)
		if err != nil {
			return fmt.Errorf("open %s: %w", snapshot, err)
		}
		defer in.Close()

		g, err := bdgraph.Load(in)
		if err != nil {
			return fmt.Errorf("load %s: %w", snapshot, err)
		}

		out := cmd.OutOrStdout()
		if toGFAOutPath != "" {
			f, err := os.Create(toGFAOutPath)
			if err != nil {
				return fmt.Errorf("create %s: %w", toGFAOutPath, err)
			}
			defer f.Close()
			out = f
		}

		var match glob.Glob
		if toGFAPathGlob != "" {
			match, err = glob.Compile(toGFAPathGlob)
			if err != nil {
				return fmt.Errorf("--paths glob %q: %w", toGFAPathGlob, err)
			}
		}
		var pathFilter func(string) bool
		if match != nil {
			pathFilter = match.Match
		}

		includeHidden := toGFAIncludeHidden || cfg.IncludeHiddenByDefault
		return g.ToGFAFiltered(out, includeHidden, pathFilter)
	},
}

func init() {
	toGFACmd.Flags().StringVar(&toGFASnapshotPath, "snapshot", "", "snapshot path (default: config snapshot_path)")
	toGFACmd.Flags().StringVar(&toGFAOutPath, "out", "", "output GFA file path (default: stdout)")
	toGFACmd.Flags().BoolVar(&toGFAIncludeHidden, "include-hidden", false, "include hidden nodes in the emitted GFA")
	toGFACmd.Flags().StringVar(&toGFAPathGlob, "paths", "", "only emit P lines for paths whose name matches this glob")
	rootCmd.AddCommand(toGFACmd)
}
