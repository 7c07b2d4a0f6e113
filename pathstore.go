package bdgraph

import "github.com/azybler/bdgraph/internal/succinct"

// pathBeginMarker and pathEndMarker are reserved sentinel values in the
// path_*_id_iv vectors, chosen far above any legal edge_to_delta(·,·)+2
// result (spec §6, reserved integer constants; §4.6; §9 path link
// markers).
const (
	pathBeginMarker uint64 = ^uint64(0) - 1
	pathEndMarker   uint64 = ^uint64(0)
)

// pathOccurrenceStore is the path-occurrence store (C6): seven parallel
// structures indexed by an absolute occurrence index, encoding a doubly
// linked list of path visits across the graph (spec §4.6).
type pathOccurrenceStore struct {
	pathHandleWt  *succinct.WaveletTree     // path_id+1 per occurrence, 0 sentinel at the head of each node's block
	pathRevIv     *succinct.BitVector       // path_rev_iv: orientation at this visit
	pathNextIDIv  *succinct.PackedIntVector // edge_to_delta(from,to)+2, or a marker
	pathNextRankIv *succinct.PackedIntVector
	pathPrevIDIv  *succinct.PackedIntVector
	pathPrevRankIv *succinct.PackedIntVector
}

func newPathOccurrenceStore() *pathOccurrenceStore {
	return &pathOccurrenceStore{
		pathHandleWt:   succinct.NewWaveletTree(),
		pathRevIv:      succinct.NewBitVector(),
		pathNextIDIv:   succinct.NewPackedIntVector(),
		pathNextRankIv: succinct.NewPackedIntVector(),
		pathPrevIDIv:   succinct.NewPackedIntVector(),
		pathPrevRankIv: succinct.NewPackedIntVector(),
	}
}

// blockStart returns the absolute index of rank r's sentinel entry.
func (s *pathOccurrenceStore) blockStart(r uint64) int {
	return s.pathHandleWt.Select(int(r), 0)
}

// occurrenceCount returns the number of occurrences currently on rank r.
// The last rank's block has no following sentinel and runs to the end.
func (s *pathOccurrenceStore) occurrenceCount(r uint64) int {
	next := s.pathHandleWt.Size()
	if int(r)+1 < s.pathHandleWt.Rank(next, 0) {
		next = s.pathHandleWt.Select(int(r)+1, 0)
	}
	return next - s.blockStart(r) - 1
}

// absoluteIndex returns the absolute occurrence index for (r, k), per
// spec §4.6 and invariant 5.
func (s *pathOccurrenceStore) absoluteIndex(r uint64, k int) int {
	return s.blockStart(r) + 1 + k
}

// addNode appends a sentinel entry for a freshly created node, giving it
// an empty occurrence block (spec §4.8).
func (s *pathOccurrenceStore) addNode() {
	at := s.pathHandleWt.Size()
	s.pathHandleWt.Insert(at, 0)
	s.pathRevIv.Insert(at, false)
	s.pathNextIDIv.Insert(at, pathEndMarker)
	s.pathNextRankIv.Insert(at, 0)
	s.pathPrevIDIv.Insert(at, pathBeginMarker)
	s.pathPrevRankIv.Insert(at, 0)
}

// removeNode deletes every entry in rank r's block, sentinel included.
func (s *pathOccurrenceStore) removeNode(r uint64) {
	start := s.blockStart(r)
	n := s.occurrenceCount(r) + 1
	for i := 0; i < n; i++ {
		s.pathHandleWt.Remove(start)
		s.pathRevIv.Remove(start)
		s.pathNextIDIv.Remove(start)
		s.pathNextRankIv.Remove(start)
		s.pathPrevIDIv.Remove(start)
		s.pathPrevRankIv.Remove(start)
	}
}

// insertOccurrence inserts a new occurrence for path p's visit to rank r
// in orientation rev, at the tail of rank r's block, and returns its
// local rank (position within the block, 0-indexed) and absolute index.
func (s *pathOccurrenceStore) insertOccurrence(r uint64, pathID uint64, rev bool) (localRank, absIdx int) {
	count := s.occurrenceCount(r)
	at := s.blockStart(r) + 1 + count
	s.pathHandleWt.Insert(at, pathID+1)
	s.pathRevIv.Insert(at, rev)
	s.pathNextIDIv.Insert(at, pathEndMarker)
	s.pathNextRankIv.Insert(at, 0)
	s.pathPrevIDIv.Insert(at, pathBeginMarker)
	s.pathPrevRankIv.Insert(at, 0)
	return count, at
}

// removeOccurrenceAt removes the occurrence at absolute index i.
func (s *pathOccurrenceStore) removeOccurrenceAt(i int) {
	s.pathHandleWt.Remove(i)
	s.pathRevIv.Remove(i)
	s.pathNextIDIv.Remove(i)
	s.pathNextRankIv.Remove(i)
	s.pathPrevIDIv.Remove(i)
	s.pathPrevRankIv.Remove(i)
}

// pathIDAt returns the path id owning the occurrence at absolute index i.
func (s *pathOccurrenceStore) pathIDAt(i int) uint64 {
	return s.pathHandleWt.At(i) - 1
}

func (s *pathOccurrenceStore) revAt(i int) bool {
	return s.pathRevIv.At(i)
}

func (s *pathOccurrenceStore) setRevAt(i int, rev bool) {
	s.pathRevIv.Set(i, rev)
}

// link writes the forward fields at fromIdx and the backward fields at
// toIdx, connecting two occurrences that sit adjacent in their path
// (link_occurrences, spec §4.6).
func (s *pathOccurrenceStore) link(fromIdx int, fromID uint64, fromLocalRank int, toIdx int, toID uint64, toLocalRank int) {
	delta := edgeToDelta(fromID, toID)
	s.pathNextIDIv.Set(fromIdx, delta+2)
	s.pathNextRankIv.Set(fromIdx, uint64(toLocalRank))

	backDelta := edgeToDelta(toID, fromID)
	s.pathPrevIDIv.Set(toIdx, backDelta+2)
	s.pathPrevRankIv.Set(toIdx, uint64(fromLocalRank))
}

// unlinkNext clears the forward link out of idx, marking it the new tail.
func (s *pathOccurrenceStore) unlinkNext(idx int) {
	s.pathNextIDIv.Set(idx, pathEndMarker)
	s.pathNextRankIv.Set(idx, 0)
}

// unlinkPrev clears the backward link into idx, marking it the new head.
func (s *pathOccurrenceStore) unlinkPrev(idx int) {
	s.pathPrevIDIv.Set(idx, pathBeginMarker)
	s.pathPrevRankIv.Set(idx, 0)
}

// hasNext reports whether the occurrence at idx has a forward link.
func (s *pathOccurrenceStore) hasNext(idx int) bool {
	return s.pathNextIDIv.At(idx) != pathEndMarker
}

func (s *pathOccurrenceStore) hasPrev(idx int) bool {
	return s.pathPrevIDIv.At(idx) != pathBeginMarker
}

// nextOf decodes the forward link out of idx (get_next_occurrence, spec
// §4.6): the neighbor's external id and its local rank on that node.
func (s *pathOccurrenceStore) nextOf(idx int, currentID uint64) (neighborID uint64, localRank int) {
	delta := s.pathNextIDIv.At(idx) - 2
	neighborID = edgeDeltaToID(currentID, delta)
	return neighborID, int(s.pathNextRankIv.At(idx))
}

func (s *pathOccurrenceStore) prevOf(idx int, currentID uint64) (neighborID uint64, localRank int) {
	delta := s.pathPrevIDIv.At(idx) - 2
	neighborID = edgeDeltaToID(currentID, delta)
	return neighborID, int(s.pathPrevRankIv.At(idx))
}
