// Package bdgraph implements a succinct, dynamic, bidirected DNA sequence
// graph with embedded paths: a variation graph stored as a handful of
// dynamic bit vectors, packed integer vectors, and wavelet trees (see
// internal/succinct) rather than pointer-linked node/edge records.
package bdgraph

import "fmt"

// Graph ties together the identifier table (C3), sequence store (C4),
// topology store (C5), path-occurrence store (C6), and path metadata (C7)
// behind the public operation surface (spec §2, data flow).
type Graph struct {
	ids      *idTable
	seq      *sequenceStore
	topo     *topologyStore
	paths    *pathOccurrenceStore
	pathMeta *pathMetadataStore

	edgeCount uint64

	// alphabetStrict governs whether CreateHandle/SetHandleSequence reject
	// non-ACGT input (true, the default) or fold it to A via
	// dna.NormalizeLenient (false). Driven by the CLI's alphabet_strict
	// config setting; see SetAlphabetStrict.
	alphabetStrict bool
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		ids:            newIDTable(),
		seq:            newSequenceStore(),
		topo:           newTopologyStore(),
		paths:          newPathOccurrenceStore(),
		pathMeta:       newPathMetadataStore(),
		alphabetStrict: true,
	}
}

// SetAlphabetStrict sets whether CreateHandle/SetHandleSequence reject
// non-ACGT sequence input outright (the default) or fold it to A instead.
func (g *Graph) SetAlphabetStrict(strict bool) {
	g.alphabetStrict = strict
}

// HasNode reports whether id currently names a live node.
func (g *Graph) HasNode(id uint64) bool {
	return g.ids.hasID(id)
}

// GetHandle returns the handle for id in the requested orientation. Panics
// with a PreconditionError if id is not live.
func (g *Graph) GetHandle(id uint64, rev bool) Handle {
	rank, ok := g.ids.rankForID(id)
	if !ok {
		panicPrecondition("GetHandle", "no live node with id %d", id)
	}
	return packHandle(rank, rev)
}

// GetID returns h's external node id.
func (g *Graph) GetID(h Handle) uint64 {
	return g.ids.idForEffectiveRank(h.unpackRank())
}

// GetIsReverse reports h's orientation bit.
func (g *Graph) GetIsReverse(h Handle) bool {
	return h.unpackRev()
}

// Flip returns h with its orientation toggled.
func (g *Graph) Flip(h Handle) Handle {
	return h.toggleRev()
}

// Forward returns the forward-oriented form of h.
func (g *Graph) Forward(h Handle) Handle {
	if h.unpackRev() {
		return h.toggleRev()
	}
	return h
}

// GetLength returns the number of bases at h's node (orientation-
// independent).
func (g *Graph) GetLength(h Handle) int {
	return g.seq.length(h.unpackRank())
}

// GetSequence returns h's sequence, reverse complemented if h is reverse.
func (g *Graph) GetSequence(h Handle) string {
	return g.seq.sequenceFor(h.unpackRank(), h.unpackRev())
}

// NodeSize returns the number of live nodes, hidden nodes included (spec
// invariant 8's _node_count).
func (g *Graph) NodeSize() int {
	return int(g.ids.nodeCount)
}

// MinNodeID and MaxNodeID bound the live id range (spec invariant 7).
func (g *Graph) MinNodeID() uint64 { return g.ids.minNodeID }
func (g *Graph) MaxNodeID() uint64 { return g.ids.maxNodeID }

// DeletedNodeCount returns the number of tombstoned raw ranks accumulated
// since the last compaction (Compact or Serialize, both of which call
// rebuild_id_handle_mapping).
func (g *Graph) DeletedNodeCount() int {
	return int(g.ids.deletedNodeCount)
}

// Compact rebuilds the id-to-rank mapping, evicting every tombstoned raw
// rank so DeletedNodeCount returns to zero. Serialize calls this
// automatically; callers driving a long batch of mutations can call it
// directly to bound the tombstone overhead before then (spec §9's
// compaction-policy open question; see DESIGN.md).
func (g *Graph) Compact() {
	g.ids.rebuildIDHandleMapping()
}

// IsHidden reports whether id was introduced by destroy_handle's
// orphaned-sequence mechanism (spec §4.8, §9 hidden nodes).
func (g *Graph) IsHidden(id uint64) bool {
	return g.ids.isHiddenID(id)
}

// GetDegree returns the number of edges on h's side (goLeft selects which
// side: false = edges leaving h's right/3' end, true = its left/5' end).
func (g *Graph) GetDegree(h Handle, goLeft bool) int {
	n := 0
	g.FollowEdges(h, goLeft, func(Handle) bool {
		n++
		return true
	})
	return n
}

// FollowEdges reads h's edge list, translating each entry into the
// neighbor handle observed from h's own orientation, and invokes cb for
// each entry on the goLeft side until cb returns false (spec §4.5).
func (g *Graph) FollowEdges(h Handle, goLeft bool, cb func(Handle) bool) {
	r := h.unpackRank()
	selfID := g.GetID(h)
	for _, e := range g.topo.edgesOf(r) {
		otherID := edgeDeltaToID(selfID, e.delta)
		otherRev, toCurr := e.tag.observedFrom(h.unpackRev())
		if goLeft != toCurr {
			continue
		}
		otherRank, ok := g.ids.rankForID(otherID)
		if !ok {
			continue
		}
		if !cb(packHandle(otherRank, otherRev)) {
			return
		}
	}
}

// EdgeHandle returns the canonical form of the edge (left, right): the
// pair reordered and orientation-flipped, if necessary, so that
// GetID(left) <= GetID(right) (spec §4.5).
func (g *Graph) EdgeHandle(left, right Handle) (Handle, Handle) {
	if g.GetID(left) <= g.GetID(right) {
		return left, right
	}
	return g.Flip(right), g.Flip(left)
}

// ForEachHandle calls fn for every live node rank in ascending effective-
// rank order. fn returning false stops iteration. Parallel iteration
// (spec §5) is not exposed: this library targets single-threaded
// mutation, and the only thread-safe caller-visible contract is this
// serial enumeration.
func (g *Graph) ForEachHandle(includeHidden bool, fn func(Handle) bool) {
	n := g.ids.rawSize() - int(g.ids.deletedNodeCount)
	for r := 0; r < n; r++ {
		id := g.ids.idForEffectiveRank(uint64(r))
		if !includeHidden && g.ids.isHiddenID(id) {
			continue
		}
		if !fn(packHandle(uint64(r), false)) {
			return
		}
	}
}

// ForEachEdge calls fn once per canonical edge.
func (g *Graph) ForEachEdge(fn func(left, right Handle) bool) {
	stop := false
	g.ForEachHandle(true, func(h Handle) bool {
		for _, goLeft := range []bool{false, true} {
			g.FollowEdges(h, goLeft, func(n Handle) bool {
				if g.asInteger(h) > g.asInteger(n) {
					return true // only emit once, from the lower side
				}
				l, r := h, n
				if goLeft {
					l, r = n, h
				}
				if !fn(g.EdgeHandle(l, r)) {
					stop = true
					return false
				}
				return true
			})
			if stop {
				return false
			}
		}
		return true
	})
}

// asInteger gives a total order over handles for the "emit once" rule
// FollowEdges/ForEachEdge and the GFA emitter need (spec §6, "emit only
// when as_integer(h) < as_integer(neighbor)").
func (g *Graph) asInteger(h Handle) uint64 {
	return uint64(h)
}

func (g *Graph) requirePath(op string, p PathHandle) *pathMeta {
	m := g.pathMeta.get(uint64(p))
	if m == nil {
		panicPrecondition(op, "no live path with id %d", p)
	}
	return m
}

// CheckInvariants re-derives a handful of spec §3 invariants from the
// public query surface and reports the first violation found. It is not
// itself a spec operation, only a collaborator the validate driver uses to
// turn "it loaded" into "it is internally consistent" (SPEC_FULL §4).
func (g *Graph) CheckInvariants() error {
	if g.NodeSize() > 0 && g.MinNodeID() > g.MaxNodeID() {
		return fmt.Errorf("min_node_id %d > max_node_id %d", g.MinNodeID(), g.MaxNodeID())
	}

	seenNodes := 0
	var badLength error
	g.ForEachHandle(true, func(h Handle) bool {
		seenNodes++
		if g.GetLength(h) <= 0 {
			badLength = fmt.Errorf("node %d has non-positive length %d", g.GetID(h), g.GetLength(h))
			return false
		}
		return true
	})
	if badLength != nil {
		return badLength
	}
	if seenNodes != g.NodeSize() {
		return fmt.Errorf("for_each_handle visited %d nodes, node_size reports %d", seenNodes, g.NodeSize())
	}

	var edgesSeen uint64
	g.ForEachEdge(func(Handle, Handle) bool { edgesSeen++; return true })
	if edgesSeen != g.edgeCount {
		return fmt.Errorf("for_each_edge visited %d edges, edge_count reports %d", edgesSeen, g.edgeCount)
	}

	var badPath error
	g.ForEachPathHandle(func(p PathHandle) bool {
		want := g.GetPathOccurrenceCount(p)
		got := 0
		g.ForEachOccurrenceInPath(p, func(Occurrence) bool { got++; return true })
		if got != want {
			badPath = fmt.Errorf("path %q: occurrence count %d, walk visited %d", g.GetPathName(p), want, got)
			return false
		}
		return true
	})
	if badPath != nil {
		return badPath
	}
	return nil
}

func (g *Graph) String() string {
	return fmt.Sprintf("Graph{nodes=%d, edges=%d, paths=%d}", g.NodeSize(), g.edgeCount, g.pathMeta.count())
}
