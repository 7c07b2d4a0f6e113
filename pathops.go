package bdgraph

// Occurrence identifies a single path visit to a node: the node's
// effective rank and the visit's local rank among all occurrences on
// that rank, numbered from 0 (spec §3, Occurrence).
type Occurrence struct {
	rank      uint64
	localRank int
}

func (g *Graph) absIndex(o Occurrence) int {
	return g.paths.absoluteIndex(o.rank, o.localRank)
}

// HasPath reports whether name currently names a live path.
func (g *Graph) HasPath(name string) bool {
	return g.pathMeta.hasPath(name)
}

// GetPathHandle returns the path handle for a live path name.
func (g *Graph) GetPathHandle(name string) PathHandle {
	id, ok := g.pathMeta.idForName(name)
	if !ok {
		panicPrecondition("GetPathHandle", "no live path named %q", name)
	}
	return PathHandle(id)
}

// GetPathName returns p's name.
func (g *Graph) GetPathName(p PathHandle) string {
	return g.requirePath("GetPathName", p).name
}

// GetPathCount returns the number of live paths.
func (g *Graph) GetPathCount() int {
	return g.pathMeta.count()
}

// IsEmpty reports whether p currently has zero occurrences.
func (g *Graph) IsEmpty(p PathHandle) bool {
	return g.requirePath("IsEmpty", p).length == 0
}

// GetPathOccurrenceCount returns the number of occurrences on path p.
func (g *Graph) GetPathOccurrenceCount(p PathHandle) int {
	return g.requirePath("GetPathOccurrenceCount", p).length
}

// GetHandleOccurrenceCount returns the number of occurrences (across all
// paths) visiting h's node.
func (g *Graph) GetHandleOccurrenceCount(h Handle) int {
	return g.paths.occurrenceCount(h.unpackRank())
}

// ForEachPathHandle calls fn for every live path, in ascending id order.
func (g *Graph) ForEachPathHandle(fn func(PathHandle) bool) {
	g.pathMeta.forEach(func(m *pathMeta) bool {
		return fn(PathHandle(m.id))
	})
}

// GetFirstOccurrence returns p's first occurrence. p must be nonempty.
func (g *Graph) GetFirstOccurrence(p PathHandle) Occurrence {
	m := g.requirePath("GetFirstOccurrence", p)
	if !m.hasOcc {
		panicPrecondition("GetFirstOccurrence", "path %q is empty", m.name)
	}
	return m.first
}

// GetLastOccurrence returns p's last occurrence. p must be nonempty.
func (g *Graph) GetLastOccurrence(p PathHandle) Occurrence {
	m := g.requirePath("GetLastOccurrence", p)
	if !m.hasOcc {
		panicPrecondition("GetLastOccurrence", "path %q is empty", m.name)
	}
	return m.last
}

// HasNextOccurrence reports whether occ has a forward path link.
func (g *Graph) HasNextOccurrence(occ Occurrence) bool {
	return g.paths.hasNext(g.absIndex(occ))
}

// HasPreviousOccurrence reports whether occ has a backward path link.
func (g *Graph) HasPreviousOccurrence(occ Occurrence) bool {
	return g.paths.hasPrev(g.absIndex(occ))
}

// GetNextOccurrence follows occ's forward link (get_next_occurrence, spec
// §4.6).
func (g *Graph) GetNextOccurrence(occ Occurrence) Occurrence {
	idx := g.absIndex(occ)
	currentID := g.ids.idForEffectiveRank(occ.rank)
	neighborID, localRank := g.paths.nextOf(idx, currentID)
	rank, _ := g.ids.rankForID(neighborID)
	return Occurrence{rank: rank, localRank: localRank}
}

// GetPreviousOccurrence follows occ's backward link.
func (g *Graph) GetPreviousOccurrence(occ Occurrence) Occurrence {
	idx := g.absIndex(occ)
	currentID := g.ids.idForEffectiveRank(occ.rank)
	neighborID, localRank := g.paths.prevOf(idx, currentID)
	rank, _ := g.ids.rankForID(neighborID)
	return Occurrence{rank: rank, localRank: localRank}
}

// GetOccurrenceHandle returns the node handle, in its visit orientation,
// for occ.
func (g *Graph) GetOccurrenceHandle(occ Occurrence) Handle {
	rev := g.paths.revAt(g.absIndex(occ))
	return packHandle(occ.rank, rev)
}

// GetOccurrencePath returns the path owning occ.
func (g *Graph) GetOccurrencePath(occ Occurrence) PathHandle {
	return PathHandle(g.paths.pathIDAt(g.absIndex(occ)))
}

// GetOccurrence returns the occurrence at the given 0-indexed position
// along path p, walking from its first occurrence.
func (g *Graph) GetOccurrence(p PathHandle, index int) Occurrence {
	m := g.requirePath("GetOccurrence", p)
	if index < 0 || index >= m.length {
		panicPrecondition("GetOccurrence", "index %d out of range for path %q (length %d)", index, m.name, m.length)
	}
	occ := m.first
	for i := 0; i < index; i++ {
		occ = g.GetNextOccurrence(occ)
	}
	return occ
}

// ForEachOccurrenceInPath calls fn for every occurrence on p, in path
// order, stopping early if fn returns false.
func (g *Graph) ForEachOccurrenceInPath(p PathHandle, fn func(Occurrence) bool) {
	m := g.requirePath("ForEachOccurrenceInPath", p)
	if !m.hasOcc {
		return
	}
	occ := m.first
	for i := 0; i < m.length; i++ {
		if !fn(occ) {
			return
		}
		if i+1 < m.length {
			occ = g.GetNextOccurrence(occ)
		}
	}
}

// ForEachOccurrenceOnHandle calls fn for every occurrence (across all
// paths) visiting h's node, stopping early if fn returns false.
func (g *Graph) ForEachOccurrenceOnHandle(h Handle, fn func(Occurrence) bool) {
	r := h.unpackRank()
	count := g.paths.occurrenceCount(r)
	for k := 0; k < count; k++ {
		if !fn(Occurrence{rank: r, localRank: k}) {
			return
		}
	}
}

// OccurrencesOfHandle returns every occurrence on h's node. When
// matchOrientation is true, only occurrences whose visit orientation
// equals h's own orientation are returned (spec §9's second open
// question: the intended behavior, not the source's self-comparison
// bug, is implemented here).
func (g *Graph) OccurrencesOfHandle(h Handle, matchOrientation bool) []Occurrence {
	var out []Occurrence
	g.ForEachOccurrenceOnHandle(h, func(occ Occurrence) bool {
		if matchOrientation && g.paths.revAt(g.absIndex(occ)) != h.unpackRev() {
			return true
		}
		out = append(out, occ)
		return true
	})
	return out
}

// GetPath returns p's concatenated sequence across every occurrence in
// path order.
func (g *Graph) GetPath(p PathHandle) string {
	var out []byte
	g.ForEachOccurrenceInPath(p, func(occ Occurrence) bool {
		out = append(out, g.GetSequence(g.GetOccurrenceHandle(occ))...)
		return true
	})
	return string(out)
}
