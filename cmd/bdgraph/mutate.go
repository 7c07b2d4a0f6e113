package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/gobwas/glob"
	"github.com/spf13/cobra"

	bdgraph "github.com/azybler/bdgraph"
)

var mutateSnapshotPath string
var mutateScriptPath string
var mutateOutPath string
var mutatePathGlob string

var mutateCmd = &cobra.Command{
	Use:   "mutate",
	Short: "Apply a script of edit operations to a snapshot",
	Long: `Applies one operation per line from --script to the graph loaded from
--snapshot (or a fresh empty graph if --snapshot is omitted), then writes
the result to --out (default: overwrite --snapshot).

Recognized operations, one handle written as <id> or <id>- for reverse:
  create_handle <seq> [id]
  create_edge <handle> <handle>
  destroy_handle <handle>
  destroy_edge <handle> <handle>
  set_sequence <id> <seq>
  create_path <name>
  append_occurrence <name> <handle>
  destroy_path <name>

With --paths set, create_path/append_occurrence/destroy_path operations
whose path name doesn't match the glob are skipped rather than applied.`,
	RunE: runMutate,
}

func init() {
	mutateCmd.Flags().StringVar(&mutateSnapshotPath, "snapshot", "", "input snapshot path (omit to start from an empty graph)")
	mutateCmd.Flags().StringVar(&mutateScriptPath, "script", "", "script file of edit operations (required)")
	mutateCmd.Flags().StringVar(&mutateOutPath, "out", "", "output snapshot path (default: overwrite --snapshot)")
	mutateCmd.Flags().StringVar(&mutatePathGlob, "paths", "", "only apply path operations (create_path/append_occurrence/destroy_path) whose path name matches this glob")
	mutateCmd.MarkFlagRequired("script")
	rootCmd.AddCommand(mutateCmd)
}

func runMutate(cmd *cobra.Command, args []string) error {
	snapshot := mutateSnapshotPath
	if snapshot == "" {
		snapshot = cfg.SnapshotPath
	}

	var g *bdgraph.Graph
	if mutateSnapshotPath != "" {
		f, err := os.Open(mutateSnapshotPath)
		if err != nil {
			return fmt.Errorf("open %s: %w", mutateSnapshotPath, err)
		}
		g, err = bdgraph.Load(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("load %s: %w", mutateSnapshotPath, err)
		}
	} else {
		g = bdgraph.New()
	}
	g.SetAlphabetStrict(cfg.AlphabetStrict)

	var pathMatch glob.Glob
	if mutatePathGlob != "" {
		m, err := glob.Compile(mutatePathGlob)
		if err != nil {
			return fmt.Errorf("--paths glob %q: %w", mutatePathGlob, err)
		}
		pathMatch = m
	}

	script, err := os.Open(mutateScriptPath)
	if err != nil {
		return fmt.Errorf("open script %s: %w", mutateScriptPath, err)
	}
	defer script.Close()

	sc := bufio.NewScanner(script)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := applyMutation(g, line, pathMatch); err != nil {
			return fmt.Errorf("script line %d %q: %w", lineNo, line, err)
		}
		maybeAutoCompact(g)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	out := mutateOutPath
	if out == "" {
		out = snapshot
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	defer f.Close()

	n, err := g.Serialize(f)
	if err != nil {
		return fmt.Errorf("serialize to %s: %w", out, err)
	}
	slog.Info("wrote snapshot", "path", out, "bytes", n)
	return nil
}

// maybeAutoCompact rebuilds the id-to-rank mapping as soon as the
// tombstone ratio crosses config's auto_compact_ratio, rather than waiting
// for the rebuild Serialize always performs right before writing —
// bounding tombstone overhead across a long-running script instead of
// only at its very end.
func maybeAutoCompact(g *bdgraph.Graph) {
	nodeCount := g.NodeSize()
	if nodeCount == 0 {
		return
	}
	if float64(g.DeletedNodeCount())/float64(nodeCount) > cfg.AutoCompactRatio {
		slog.Info("auto-compacting id table", "deleted", g.DeletedNodeCount(), "live", nodeCount)
		g.Compact()
	}
}

func applyMutation(g *bdgraph.Graph, line string, pathMatch glob.Glob) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	op, rest := fields[0], fields[1:]

	switch op {
	case "create_handle":
		if len(rest) < 1 {
			return fmt.Errorf("create_handle requires <seq> [id]")
		}
		var id uint64
		if len(rest) >= 2 {
			v, err := strconv.ParseUint(rest[1], 10, 64)
			if err != nil {
				return fmt.Errorf("id %q: %w", rest[1], err)
			}
			id = v
		}
		g.CreateHandle(rest[0], id)
		return nil

	case "create_edge":
		if len(rest) != 2 {
			return fmt.Errorf("create_edge requires <handle> <handle>")
		}
		l, err := parseHandle(g, rest[0])
		if err != nil {
			return err
		}
		r, err := parseHandle(g, rest[1])
		if err != nil {
			return err
		}
		g.CreateEdge(l, r)
		return nil

	case "destroy_handle":
		if len(rest) != 1 {
			return fmt.Errorf("destroy_handle requires <handle>")
		}
		h, err := parseHandle(g, rest[0])
		if err != nil {
			return err
		}
		g.DestroyHandle(h)
		return nil

	case "destroy_edge":
		if len(rest) != 2 {
			return fmt.Errorf("destroy_edge requires <handle> <handle>")
		}
		l, err := parseHandle(g, rest[0])
		if err != nil {
			return err
		}
		r, err := parseHandle(g, rest[1])
		if err != nil {
			return err
		}
		g.DestroyEdge(l, r)
		return nil

	case "set_sequence":
		if len(rest) != 2 {
			return fmt.Errorf("set_sequence requires <id> <seq>")
		}
		h, err := parseHandle(g, rest[0])
		if err != nil {
			return err
		}
		g.SetHandleSequence(h, rest[1])
		return nil

	case "create_path":
		if len(rest) != 1 {
			return fmt.Errorf("create_path requires <name>")
		}
		if pathMatch != nil && !pathMatch.Match(rest[0]) {
			return nil
		}
		g.CreatePathHandle(rest[0])
		return nil

	case "destroy_path":
		if len(rest) != 1 {
			return fmt.Errorf("destroy_path requires <name>")
		}
		if pathMatch != nil && !pathMatch.Match(rest[0]) {
			return nil
		}
		g.DestroyPath(g.GetPathHandle(rest[0]))
		return nil

	case "append_occurrence":
		if len(rest) != 2 {
			return fmt.Errorf("append_occurrence requires <path> <handle>")
		}
		if pathMatch != nil && !pathMatch.Match(rest[0]) {
			return nil
		}
		h, err := parseHandle(g, rest[1])
		if err != nil {
			return err
		}
		g.AppendOccurrence(g.GetPathHandle(rest[0]), h)
		return nil

	default:
		return fmt.Errorf("unknown operation %q", op)
	}
}

// parseHandle accepts "<id>" (forward) or "<id>-" (reverse).
func parseHandle(g *bdgraph.Graph, tok string) (bdgraph.Handle, error) {
	rev := strings.HasSuffix(tok, "-")
	idStr := strings.TrimSuffix(strings.TrimSuffix(tok, "+"), "-")
	id, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("handle %q: %w", tok, err)
	}
	return g.GetHandle(id, rev), nil
}
