package bdgraph

// CreatePathHandle allocates a fresh, empty path named name. name must be
// unused (spec §4.7, create_path_handle).
func (g *Graph) CreatePathHandle(name string) PathHandle {
	if g.pathMeta.hasPath(name) {
		panicPrecondition("CreatePathHandle", "path name %q already exists", name)
	}
	m := g.pathMeta.createPath(name)
	return PathHandle(m.id)
}

// DestroyPath removes every occurrence of p and erases its metadata and
// name (spec §4.7, destroy_path).
func (g *Graph) DestroyPath(p PathHandle) {
	m := g.requirePath("DestroyPath", p)
	if m.hasOcc {
		occ := m.first
		for i := 0; i < m.length; i++ {
			var next Occurrence
			if g.paths.hasNext(g.absIndex(occ)) {
				next = g.GetNextOccurrence(occ)
			}
			g.removeOccurrenceFromBlock(occ.rank, occ.localRank)
			// A later entry in the same block moved down one local rank.
			if next.rank == occ.rank && next.localRank > occ.localRank {
				next.localRank--
			}
			occ = next
		}
	}
	g.pathMeta.destroyPath(uint64(p))
}

// AppendOccurrence inserts a new occurrence of h at the tail of path p,
// linking it to the path's previous last occurrence (spec §4.7,
// append_occurrence).
func (g *Graph) AppendOccurrence(p PathHandle, h Handle) Occurrence {
	m := g.requirePath("AppendOccurrence", p)
	r := h.unpackRank()
	localRank, absIdx := g.paths.insertOccurrence(r, uint64(p), h.unpackRev())
	newOcc := Occurrence{rank: r, localRank: localRank}

	if m.hasOcc {
		prevAbsIdx := g.absIndex(m.last)
		prevID := g.ids.idForEffectiveRank(m.last.rank)
		newID := g.ids.idForEffectiveRank(r)
		g.paths.link(prevAbsIdx, prevID, m.last.localRank, absIdx, newID, localRank)
	} else {
		m.first = newOcc
		m.hasOcc = true
	}
	m.last = newOcc
	m.length++
	return newOcc
}

// SetOccurrence redirects occ to visit newHandle's node instead, in the
// same position along its path (preserving its path-order neighbors); the
// occurrence's identity (rank, local rank) changes since it now lives in
// a different node's block.
func (g *Graph) SetOccurrence(occ Occurrence, newHandle Handle) Occurrence {
	absIdx := g.absIndex(occ)
	pathID := g.paths.pathIDAt(absIdx)
	hasPrev := g.paths.hasPrev(absIdx)
	hasNext := g.paths.hasNext(absIdx)
	var prevOcc, nextOcc Occurrence
	if hasPrev {
		prevOcc = g.GetPreviousOccurrence(occ)
	}
	if hasNext {
		nextOcc = g.GetNextOccurrence(occ)
	}

	g.removeOccurrenceFromBlock(occ.rank, occ.localRank)

	newRank := newHandle.unpackRank()
	newLocalRank, newAbsIdx := g.paths.insertOccurrence(newRank, pathID, newHandle.unpackRev())
	newOcc := Occurrence{rank: newRank, localRank: newLocalRank}
	newID := g.ids.idForEffectiveRank(newRank)

	if hasPrev {
		prevAbsIdx := g.absIndex(prevOcc)
		prevID := g.ids.idForEffectiveRank(prevOcc.rank)
		g.paths.link(prevAbsIdx, prevID, prevOcc.localRank, newAbsIdx, newID, newLocalRank)
	} else {
		g.paths.unlinkPrev(newAbsIdx)
	}
	if hasNext {
		nextAbsIdx := g.absIndex(nextOcc)
		nextID := g.ids.idForEffectiveRank(nextOcc.rank)
		g.paths.link(newAbsIdx, newID, newLocalRank, nextAbsIdx, nextID, nextOcc.localRank)
	} else {
		g.paths.unlinkNext(newAbsIdx)
	}

	m := g.pathMeta.get(pathID)
	if m.first == occ {
		m.first = newOcc
	}
	if m.last == occ {
		m.last = newOcc
	}
	return newOcc
}

// ReplaceOccurrence replaces occ with a chain of occurrences visiting
// handles in order, splicing the chain into occ's former path-order
// position (used by divide_handle, spec §4.8).
func (g *Graph) ReplaceOccurrence(occ Occurrence, handles []Handle) []Occurrence {
	if len(handles) == 0 {
		panicPrecondition("ReplaceOccurrence", "replacement chain must be nonempty")
	}
	absIdx := g.absIndex(occ)
	pathID := g.paths.pathIDAt(absIdx)
	hasPrev := g.paths.hasPrev(absIdx)
	hasNext := g.paths.hasNext(absIdx)
	var prevOcc, nextOcc Occurrence
	if hasPrev {
		prevOcc = g.GetPreviousOccurrence(occ)
	}
	if hasNext {
		nextOcc = g.GetNextOccurrence(occ)
	}

	g.removeOccurrenceFromBlock(occ.rank, occ.localRank)

	newOccs := make([]Occurrence, len(handles))
	for i, h := range handles {
		localRank, _ := g.paths.insertOccurrence(h.unpackRank(), pathID, h.unpackRev())
		newOccs[i] = Occurrence{rank: h.unpackRank(), localRank: localRank}
	}
	for i := 0; i+1 < len(newOccs); i++ {
		fromIdx, toIdx := g.absIndex(newOccs[i]), g.absIndex(newOccs[i+1])
		fromID := g.ids.idForEffectiveRank(newOccs[i].rank)
		toID := g.ids.idForEffectiveRank(newOccs[i+1].rank)
		g.paths.link(fromIdx, fromID, newOccs[i].localRank, toIdx, toID, newOccs[i+1].localRank)
	}

	first, last := newOccs[0], newOccs[len(newOccs)-1]
	if hasPrev {
		prevAbsIdx := g.absIndex(prevOcc)
		firstAbsIdx := g.absIndex(first)
		prevID := g.ids.idForEffectiveRank(prevOcc.rank)
		firstID := g.ids.idForEffectiveRank(first.rank)
		g.paths.link(prevAbsIdx, prevID, prevOcc.localRank, firstAbsIdx, firstID, first.localRank)
	} else {
		g.paths.unlinkPrev(g.absIndex(first))
	}
	if hasNext {
		nextAbsIdx := g.absIndex(nextOcc)
		lastAbsIdx := g.absIndex(last)
		nextID := g.ids.idForEffectiveRank(nextOcc.rank)
		lastID := g.ids.idForEffectiveRank(last.rank)
		g.paths.link(lastAbsIdx, lastID, last.localRank, nextAbsIdx, nextID, nextOcc.localRank)
	} else {
		g.paths.unlinkNext(g.absIndex(last))
	}

	m := g.pathMeta.get(pathID)
	if m.first == occ {
		m.first = first
	}
	if m.last == occ {
		m.last = last
	}
	m.length += len(handles) - 1
	return newOccs
}

// DestroyOccurrence removes occ from its path, splicing its neighbors
// together.
func (g *Graph) DestroyOccurrence(occ Occurrence) {
	absIdx := g.absIndex(occ)
	pathID := g.paths.pathIDAt(absIdx)
	hasPrev := g.paths.hasPrev(absIdx)
	hasNext := g.paths.hasNext(absIdx)
	var prevOcc, nextOcc Occurrence
	if hasPrev {
		prevOcc = g.GetPreviousOccurrence(occ)
	}
	if hasNext {
		nextOcc = g.GetNextOccurrence(occ)
	}

	g.removeOccurrenceFromBlock(occ.rank, occ.localRank)
	// Neighbors later in the same block moved down one local rank.
	if hasPrev && prevOcc.rank == occ.rank && prevOcc.localRank > occ.localRank {
		prevOcc.localRank--
	}
	if hasNext && nextOcc.rank == occ.rank && nextOcc.localRank > occ.localRank {
		nextOcc.localRank--
	}

	switch {
	case hasPrev && hasNext:
		prevAbsIdx := g.absIndex(prevOcc)
		nextAbsIdx := g.absIndex(nextOcc)
		prevID := g.ids.idForEffectiveRank(prevOcc.rank)
		nextID := g.ids.idForEffectiveRank(nextOcc.rank)
		g.paths.link(prevAbsIdx, prevID, prevOcc.localRank, nextAbsIdx, nextID, nextOcc.localRank)
	case hasPrev:
		g.paths.unlinkNext(g.absIndex(prevOcc))
	case hasNext:
		g.paths.unlinkPrev(g.absIndex(nextOcc))
	}

	m := g.pathMeta.get(pathID)
	m.length--
	if m.length == 0 {
		m.hasOcc = false
	} else {
		if m.first == occ {
			m.first = nextOcc
		}
		if m.last == occ {
			m.last = prevOcc
		}
	}
}

// removeOccurrenceFromBlock deletes the occurrence at (r, localRank) and
// repairs the rank field any neighbor holds pointing at occurrences that
// shifted down by one local rank as a result (spec §4.6: the rank field
// addresses a destination by its position within its own node's block,
// which changes when an earlier entry in that same block is removed).
func (g *Graph) removeOccurrenceFromBlock(r uint64, localRank int) {
	idx := g.paths.absoluteIndex(r, localRank)
	count := g.paths.occurrenceCount(r)
	g.paths.removeOccurrenceAt(idx)
	for k := localRank; k < count-1; k++ {
		g.fixupRankRefs(r, k)
	}
}

func (g *Graph) fixupRankRefs(r uint64, localRank int) {
	idx := g.paths.absoluteIndex(r, localRank)
	id := g.ids.idForEffectiveRank(r)

	// The occurrence now at (r, localRank) was at (r, localRank+1) before
	// the removal that triggered this shift. Its own path's first/last
	// pointer (if it happens to be this occurrence) is stored by value in
	// pathMeta and must move with it; next/prev links on its neighbors are
	// repaired below.
	owningPath := g.paths.pathIDAt(idx)
	if m := g.pathMeta.get(owningPath); m != nil {
		old := Occurrence{rank: r, localRank: localRank + 1}
		shifted := Occurrence{rank: r, localRank: localRank}
		if m.first == old {
			m.first = shifted
		}
		if m.last == old {
			m.last = shifted
		}
	}

	if g.paths.hasPrev(idx) {
		prevID, prevLocalRank := g.paths.prevOf(idx, id)
		if prevRank, ok := g.ids.rankForID(prevID); ok {
			prevIdx := g.paths.absoluteIndex(prevRank, prevLocalRank)
			g.paths.pathNextRankIv.Set(prevIdx, uint64(localRank))
		}
	}
	if g.paths.hasNext(idx) {
		nextID, nextLocalRank := g.paths.nextOf(idx, id)
		if nextRank, ok := g.ids.rankForID(nextID); ok {
			nextIdx := g.paths.absoluteIndex(nextRank, nextLocalRank)
			g.paths.pathPrevRankIv.Set(nextIdx, uint64(localRank))
		}
	}
}
