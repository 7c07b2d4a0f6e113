package bdgraph

import "github.com/azybler/bdgraph/internal/dna"

// CreateHandle allocates a new node with the given sequence. If id is 0,
// the next unused id (max_node_id+1) is assigned; otherwise id must be
// unused (spec §4.8, create_handle).
func (g *Graph) CreateHandle(seq string, id uint64) Handle {
	if len(seq) == 0 {
		panicPrecondition("CreateHandle", "sequence length must be >= 1")
	}
	if id == 0 {
		id = g.ids.nextID()
	}
	if g.ids.hasID(id) {
		panicPrecondition("CreateHandle", "duplicate node id %d", id)
	}
	rawRank := g.ids.addNode(id)
	r := g.ids.effectiveRank(rawRank)
	if err := g.seq.appendNode(seq, g.alphabetStrict); err != nil {
		panicPrecondition("CreateHandle", "%v", err)
	}
	g.topo.addNode()
	g.paths.addNode()
	return packHandle(r, false)
}

// CreateHiddenHandle allocates a node the same way CreateHandle does, but
// flags it as hidden: it participates in every graph query but enumerators
// may choose to skip it (spec §4.8, §9 hidden nodes).
func (g *Graph) CreateHiddenHandle(seq string) Handle {
	h := g.CreateHandle(seq, 0)
	g.ids.markHidden(g.GetID(h))
	return h
}

// DestroyHandle removes h's node: every incident edge, its topology
// record and sequence slice, and, for any path occurrence that visited
// it, redirects the occurrence to a freshly created hidden node carrying
// the saved sequence so path walks are unaffected (spec §4.8,
// destroy_handle).
func (g *Graph) DestroyHandle(h Handle) {
	fwd := g.Forward(h)
	r := fwd.unpackRank()
	id := g.GetID(fwd)

	var outs, ins []Handle
	g.FollowEdges(fwd, false, func(n Handle) bool { outs = append(outs, n); return true })
	g.FollowEdges(fwd, true, func(n Handle) bool { ins = append(ins, n); return true })
	for _, n := range outs {
		g.DestroyEdge(fwd, n)
	}
	for _, n := range ins {
		g.DestroyEdge(n, fwd)
	}

	g.topo.removeNode(r)
	savedSeq := g.seq.forwardSequence(r)
	g.seq.removeNode(r)

	count := g.paths.occurrenceCount(r)
	if count > 0 {
		hidden := g.CreateHiddenHandle(savedSeq)
		// Tail-first so the local ranks of not-yet-processed entries in
		// r's block never shift mid-loop (spec §4.8; see DESIGN.md for
		// why this ordering is required).
		for i := count - 1; i >= 0; i-- {
			occ := Occurrence{rank: r, localRank: i}
			rev := g.paths.revAt(g.paths.absoluteIndex(r, i))
			g.SetOccurrence(occ, packHandle(hidden.unpackRank(), rev))
		}
	}
	g.paths.removeNode(r)

	// Every rank above r now sits one lower; path first/last occurrences
	// are stored by rank and move with it.
	g.pathMeta.forEach(func(m *pathMeta) bool {
		if m.first.rank > r {
			m.first.rank--
		}
		if m.last.rank > r {
			m.last.rank--
		}
		return true
	})

	g.ids.markDeleted(id)
}

// CreateEdge connects l and r. A no-op if the edge already exists, in
// either orientation (spec §4.8, create_edge; §8 idempotence).
func (g *Graph) CreateEdge(l, r Handle) {
	if g.hasEdge(l, r) {
		return
	}
	left, right := g.EdgeHandle(l, r)
	leftRank, rightRank := left.unpackRank(), right.unpackRank()
	leftID, rightID := g.GetID(left), g.GetID(right)

	leftTag := packEdgeTag(left.unpackRev(), right.unpackRev(), false)
	g.topo.insertEdgeAtHead(leftRank, edgeToDelta(leftID, rightID), leftTag)

	if leftRank != rightRank {
		rightTag := packEdgeTag(right.unpackRev(), left.unpackRev(), true)
		g.topo.insertEdgeAtHead(rightRank, edgeToDelta(rightID, leftID), rightTag)
	}
	g.edgeCount++
}

// hasEdge reports whether the canonical edge for (l, r) is already
// present in l's topology record.
func (g *Graph) hasEdge(l, r Handle) bool {
	found := false
	g.FollowEdges(l, false, func(n Handle) bool {
		if n == r {
			found = true
			return false
		}
		return true
	})
	return found
}

// DestroyEdge removes the edge between l and r, if present (spec §4.8,
// destroy_edge).
func (g *Graph) DestroyEdge(l, r Handle) {
	left, right := g.EdgeHandle(l, r)
	leftRank, rightRank := left.unpackRank(), right.unpackRank()
	leftID, rightID := g.GetID(left), g.GetID(right)

	removed := g.topo.removeEdgeMatching(leftRank, leftID, rightID, right.unpackRev())
	if leftRank != rightRank {
		g.topo.removeEdgeMatching(rightRank, rightID, leftID, left.unpackRev())
	}
	if removed {
		g.edgeCount--
	}
}

// Clear resets the graph to empty.
func (g *Graph) Clear() {
	*g = *New()
}

// ApplyOrientation makes h's node forward, if it is not already, by
// destroying and recreating its edges in the flipped frame and rewriting
// its sequence in place (spec §4.8, apply_orientation).
func (g *Graph) ApplyOrientation(h Handle) Handle {
	if !h.unpackRev() {
		return h
	}
	r := h.unpackRank()

	var left, right []Handle
	g.FollowEdges(h, true, func(n Handle) bool { left = append(left, n); return true })
	g.FollowEdges(h, false, func(n Handle) bool { right = append(right, n); return true })
	for _, n := range left {
		g.DestroyEdge(n, h)
	}
	for _, n := range right {
		g.DestroyEdge(h, n)
	}

	rc, err := dna.ReverseComplementString(g.seq.forwardSequence(r))
	if err != nil {
		panic(err)
	}
	if err := g.seq.setSequence(r, rc, true); err != nil {
		panic(err)
	}

	count := g.paths.occurrenceCount(r)
	for k := 0; k < count; k++ {
		idx := g.paths.absoluteIndex(r, k)
		g.paths.setRevAt(idx, !g.paths.revAt(idx))
	}

	newForward := packHandle(r, false)
	for _, n := range left {
		g.CreateEdge(n, newForward)
	}
	for _, n := range right {
		g.CreateEdge(newForward, n)
	}
	return newForward
}

// SetHandleSequence overwrites h's forward sequence in place, growing or
// shrinking the slice as needed (spec §4.3, set_handle_sequence). h must
// be forward.
func (g *Graph) SetHandleSequence(h Handle, seq string) {
	if h.unpackRev() {
		panicPrecondition("SetHandleSequence", "handle must be forward")
	}
	if len(seq) == 0 {
		panicPrecondition("SetHandleSequence", "sequence length must be >= 1")
	}
	if err := g.seq.setSequence(h.unpackRank(), seq, g.alphabetStrict); err != nil {
		panicPrecondition("SetHandleSequence", "%v", err)
	}
}

// DivideHandle splits h's node into len(offsets)+1 pieces at the given
// forward-strand offsets (translated if h is reverse), rewires every
// incident edge and path occurrence onto the new pieces, and destroys h
// (spec §4.8, divide_handle). Returns the pieces in h's own orientation
// and left-to-right order.
func (g *Graph) DivideHandle(h Handle, offsets []int) []Handle {
	r := h.unpackRank()
	length := g.seq.length(r)
	fwdOffsets := make([]int, len(offsets))
	if h.unpackRev() {
		for i, o := range offsets {
			fwdOffsets[i] = length - o
		}
	} else {
		copy(fwdOffsets, offsets)
	}
	for i := 0; i < len(fwdOffsets); i++ {
		for j := i + 1; j < len(fwdOffsets); j++ {
			if fwdOffsets[j] < fwdOffsets[i] {
				fwdOffsets[i], fwdOffsets[j] = fwdOffsets[j], fwdOffsets[i]
			}
		}
	}

	fwdSeq := g.seq.forwardSequence(r)
	bounds := append([]int{0}, fwdOffsets...)
	bounds = append(bounds, length)

	pieces := make([]Handle, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		pieces = append(pieces, g.CreateHandle(fwdSeq[bounds[i]:bounds[i+1]], 0))
	}
	for i := 0; i+1 < len(pieces); i++ {
		g.CreateEdge(pieces[i], pieces[i+1])
	}

	// Replace every path occurrence on h with the new piece chain,
	// preserving orientation.
	count := g.paths.occurrenceCount(r)
	for i := count - 1; i >= 0; i-- {
		occ := Occurrence{rank: r, localRank: i}
		occRev := g.paths.revAt(g.paths.absoluteIndex(r, i))
		chain := make([]Handle, len(pieces))
		if occRev {
			for j, p := range pieces {
				chain[len(pieces)-1-j] = g.Flip(p)
			}
		} else {
			copy(chain, pieces)
		}
		g.ReplaceOccurrence(occ, chain)
	}

	fwd := g.Forward(h)
	var left, right []Handle
	g.FollowEdges(fwd, true, func(n Handle) bool { left = append(left, n); return true })
	g.FollowEdges(fwd, false, func(n Handle) bool { right = append(right, n); return true })

	first, last := pieces[0], pieces[len(pieces)-1]
	for _, n := range left {
		g.CreateEdge(n, first)
	}
	for _, n := range right {
		g.CreateEdge(last, n)
	}

	// Destroying h shifts the rank of every node above it, so the pieces
	// are looked up again by id afterwards.
	pieceIDs := make([]uint64, len(pieces))
	for i, p := range pieces {
		pieceIDs[i] = g.GetID(p)
	}
	g.DestroyHandle(h)
	for i := range pieces {
		pieces[i] = g.GetHandle(pieceIDs[i], false)
	}

	if h.unpackRev() {
		out := make([]Handle, len(pieces))
		for i, p := range pieces {
			out[len(pieces)-1-i] = g.Flip(p)
		}
		return out
	}
	return pieces
}
