package bdgraph

import "github.com/azybler/bdgraph/internal/succinct"

// Per-node header layout (spec §4.4, §6 reserved constants). The header
// holds a single slot: the number of edge entries that follow.
const (
	topologyNodeHeaderLength = 1
	topologyEdgeCountOffset  = 0
)

// topologyStore is the topology store (C5): a per-node variable-length
// edge record — a header holding the edge count, followed by one
// (delta, tag) pair per incident edge — delimited by a parallel bit
// vector with a single 1-bit at the start of each record (spec §4.4).
type topologyStore struct {
	topologyIv *succinct.PackedIntVector
	topologyBv *succinct.BitVector
}

func newTopologyStore() *topologyStore {
	return &topologyStore{
		topologyIv: succinct.NewPackedIntVector(),
		topologyBv: succinct.NewBitVector(),
	}
}

// recordStart returns the index of rank r's header in topologyIv.
func (s *topologyStore) recordStart(r uint64) int {
	return s.topologyBv.Select1(int(r))
}

func (s *topologyStore) edgeCount(r uint64) int {
	return int(s.topologyIv.At(s.recordStart(r) + topologyEdgeCountOffset))
}

func (s *topologyStore) setEdgeCount(r uint64, n int) {
	s.topologyIv.Set(s.recordStart(r)+topologyEdgeCountOffset, uint64(n))
}

// edgeEntry is one decoded (delta, tag) pair from a node's edge list.
type edgeEntry struct {
	delta uint64
	tag   edgeTag
}

// edgesOf returns every edge entry currently stored for rank r, in order.
func (s *topologyStore) edgesOf(r uint64) []edgeEntry {
	n := s.edgeCount(r)
	out := make([]edgeEntry, 0, n)
	base := s.recordStart(r) + topologyNodeHeaderLength
	for i := 0; i < n; i++ {
		delta := s.topologyIv.At(base + 2*i)
		tag := edgeTag(s.topologyIv.At(base + 2*i + 1))
		out = append(out, edgeEntry{delta: delta, tag: tag})
	}
	return out
}

// insertEdgeAtHead inserts a new edge entry at the head of rank r's edge
// list: two integers into topologyIv and two 0-bits into topologyBv just
// after the header (spec §4.4).
func (s *topologyStore) insertEdgeAtHead(r uint64, delta uint64, tag edgeTag) {
	at := s.recordStart(r) + topologyNodeHeaderLength
	s.topologyIv.Insert(at, delta)
	s.topologyBv.Insert(at, false)
	s.topologyIv.Insert(at+1, uint64(tag))
	s.topologyBv.Insert(at+1, false)
	s.setEdgeCount(r, s.edgeCount(r)+1)
}

// removeEdgeAt removes the idx-th edge entry (0-indexed) from rank r's
// edge list.
func (s *topologyStore) removeEdgeAt(r uint64, idx int) {
	at := s.recordStart(r) + topologyNodeHeaderLength + 2*idx
	s.topologyIv.Remove(at)
	s.topologyBv.Remove(at)
	s.topologyIv.Remove(at)
	s.topologyBv.Remove(at)
	s.setEdgeCount(r, s.edgeCount(r)-1)
}

// removeEdgeMatching removes the first edge entry on rank r whose decoded
// (otherID, otherRev) matches. matchRev is the orientation of the other
// endpoint, so it is checked against the entry's otherRev field, not its
// onRev field (onRev is rank r's own orientation at creation time).
// Returns whether an entry was removed.
func (s *topologyStore) removeEdgeMatching(r uint64, selfID uint64, matchID uint64, matchRev bool) bool {
	entries := s.edgesOf(r)
	for i, e := range entries {
		otherID := edgeDeltaToID(selfID, e.delta)
		if otherID == matchID && e.tag.otherRev() == matchRev {
			s.removeEdgeAt(r, i)
			return true
		}
	}
	return false
}

// addNode appends an empty edge record (count 0) for a freshly created
// node, used by create_handle (spec §4.8).
func (s *topologyStore) addNode() {
	at := s.topologyIv.Size()
	s.topologyIv.Insert(at, 0)
	s.topologyBv.Insert(at, true)
}

// removeNode deletes rank r's entire record (header plus every edge
// entry), used by destroy_handle. The record must have no remaining
// edges; callers destroy all incident edges first.
func (s *topologyStore) removeNode(r uint64) {
	start := s.recordStart(r)
	n := topologyNodeHeaderLength + 2*s.edgeCount(r)
	for i := 0; i < n; i++ {
		s.topologyIv.Remove(start)
		s.topologyBv.Remove(start)
	}
}
