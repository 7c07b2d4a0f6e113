package bdgraph

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// orientationSymbol renders a handle's orientation bit as GFA's "+"/"-".
func orientationSymbol(rev bool) byte {
	if rev {
		return '-'
	}
	return '+'
}

// ToGFA writes g as GFA v1 text: one header line, one S line per node, one
// L line per canonical edge, one P line per path (spec §6, GFA text
// emitter). includeHidden controls whether hidden nodes created by
// destroy_handle's orphaned-sequence mechanism are emitted.
func (g *Graph) ToGFA(w io.Writer, includeHidden bool) error {
	return g.ToGFAFiltered(w, includeHidden, nil)
}

// ToGFAFiltered is ToGFA with an additional pathFilter: when non-nil, only
// paths whose name satisfies pathFilter get a P line (the CLI's --paths
// glob restricts to-gfa output this way). Node (S) and edge (L) lines are
// never filtered, since nodes are shared across paths.
func (g *Graph) ToGFAFiltered(w io.Writer, includeHidden bool, pathFilter func(name string) bool) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprint(bw, "H\tVN:Z:1.0\n"); err != nil {
		return fmt.Errorf("write header line: %w", err)
	}

	var writeErr error
	g.ForEachHandle(includeHidden, func(h Handle) bool {
		id := g.GetID(h)
		seq := g.GetSequence(h)
		if _, err := fmt.Fprintf(bw, "S\t%d\t%s\n", id, seq); err != nil {
			writeErr = fmt.Errorf("write S line for node %d: %w", id, err)
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}

	g.ForEachEdge(func(left, right Handle) bool {
		leftID, rightID := g.GetID(left), g.GetID(right)
		if _, err := fmt.Fprintf(bw, "L\t%d\t%c\t%d\t%c\t0M\n",
			leftID, orientationSymbol(g.GetIsReverse(left)),
			rightID, orientationSymbol(g.GetIsReverse(right))); err != nil {
			writeErr = fmt.Errorf("write L line for edge (%d,%d): %w", leftID, rightID, err)
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}

	g.ForEachPathHandle(func(p PathHandle) bool {
		name := g.GetPathName(p)
		if pathFilter != nil && !pathFilter(name) {
			return true
		}
		var steps, overlaps []byte
		first := true
		g.ForEachOccurrenceInPath(p, func(occ Occurrence) bool {
			h := g.GetOccurrenceHandle(occ)
			if !first {
				steps = append(steps, ',')
				overlaps = append(overlaps, ',')
			}
			first = false
			steps = fmt.Appendf(steps, "%d%c", g.GetID(h), orientationSymbol(g.GetIsReverse(h)))
			overlaps = fmt.Appendf(overlaps, "%dM", g.GetLength(h))
			return true
		})
		if _, err := fmt.Fprintf(bw, "P\t%s\t%s\t%s\n", name, steps, overlaps); err != nil {
			writeErr = fmt.Errorf("write P line for path %q: %w", name, err)
			return false
		}
		return true
	})
	if writeErr != nil {
		return writeErr
	}

	return bw.Flush()
}

// ParseGFA builds a fresh graph from GFA v1 text: S lines become nodes
// (keyed by their GFA id, parsed as the node's external id), L lines become
// edges, P lines become paths with one occurrence per step. This is the
// "build" driver's GFA-to-snapshot ingestion path; it is not part of the
// library's required operation surface, only a collaborator built the way
// the contract in spec §1 allows.
func ParseGFA(r io.Reader) (*Graph, error) {
	g := New()
	if err := ParseGFAInto(r, g); err != nil {
		return nil, err
	}
	return g, nil
}

// ParseGFAInto parses GFA v1 text the same way ParseGFA does, but into an
// already-constructed graph rather than a fresh one — so a caller can set
// g's alphabet strictness (or any other pre-parse option) before any S/L/P
// line is applied.
func ParseGFAInto(r io.Reader, g *Graph) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	// Paths are deferred until every S/L line is consumed so a path's
	// steps can reference nodes regardless of line order.
	var pendingPathNames []string
	var pendingPathSteps []string

	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		switch fields[0] {
		case "H":
			// version line, nothing to do
		case "S":
			if len(fields) < 3 {
				return fmt.Errorf("malformed S line: %q", line)
			}
			id, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return fmt.Errorf("S line id %q: %w", fields[1], err)
			}
			g.CreateHandle(fields[2], id)
		case "L":
			if len(fields) < 6 {
				return fmt.Errorf("malformed L line: %q", line)
			}
			id1, err := strconv.ParseUint(fields[1], 10, 64)
			if err != nil {
				return fmt.Errorf("L line id1 %q: %w", fields[1], err)
			}
			id2, err := strconv.ParseUint(fields[3], 10, 64)
			if err != nil {
				return fmt.Errorf("L line id2 %q: %w", fields[3], err)
			}
			left := g.GetHandle(id1, fields[2] == "-")
			right := g.GetHandle(id2, fields[4] == "-")
			g.CreateEdge(left, right)
		case "P":
			if len(fields) < 3 {
				return fmt.Errorf("malformed P line: %q", line)
			}
			pendingPathNames = append(pendingPathNames, fields[1])
			pendingPathSteps = append(pendingPathSteps, fields[2])
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("scan GFA: %w", err)
	}

	for i, name := range pendingPathNames {
		p := g.CreatePathHandle(name)
		for _, step := range strings.Split(pendingPathSteps[i], ",") {
			if step == "" {
				continue
			}
			rev := strings.HasSuffix(step, "-")
			idStr := strings.TrimSuffix(strings.TrimSuffix(step, "+"), "-")
			id, err := strconv.ParseUint(idStr, 10, 64)
			if err != nil {
				return fmt.Errorf("P line step %q: %w", step, err)
			}
			g.AppendOccurrence(p, g.GetHandle(id, rev))
		}
	}

	return nil
}
