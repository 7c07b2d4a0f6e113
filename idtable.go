package bdgraph

import "github.com/azybler/bdgraph/internal/succinct"

// idTable is the identifier table (C3): the external id <-> internal rank
// mapping, tombstones for deleted ranks, and the hidden-node set that
// marks ranks introduced by destroy_handle's orphaned-sequence mechanism
// (spec §4.2).
type idTable struct {
	graphIDIv   *succinct.PackedIntVector // graph_id_iv: external id at raw rank r, 0 if tombstoned
	deletedIDBv *succinct.BitVector       // deleted_id_bv: 1 iff raw rank r is a tombstone
	idToRank    map[uint64]uint64         // graph_id_map: external id -> raw rank
	hidden      map[uint64]bool           // graph_id_hidden_set: raw rank -> is a hidden node

	nodeCount        uint64
	deletedNodeCount uint64
	hiddenCount      uint64
	minNodeID        uint64
	maxNodeID        uint64
}

func newIDTable() *idTable {
	return &idTable{
		graphIDIv:   succinct.NewPackedIntVector(),
		deletedIDBv: succinct.NewBitVector(),
		idToRank:    make(map[uint64]uint64),
		hidden:      make(map[uint64]bool),
	}
}

// rawSize is the size of the raw rank space, including tombstones.
func (t *idTable) rawSize() int {
	return t.graphIDIv.Size()
}

// effectiveRank translates a raw rank (an index into graphIDIv) to the
// effective rank used to index the sequence, topology, and path-occurrence
// vectors, which never hold tombstoned slots (spec §4.2).
func (t *idTable) effectiveRank(rawRank uint64) uint64 {
	if t.deletedIDBv.Size() == 0 {
		return rawRank
	}
	return rawRank - uint64(t.deletedIDBv.Rank1(int(rawRank)))
}

// hasID reports whether id currently names a live node.
func (t *idTable) hasID(id uint64) bool {
	_, ok := t.idToRank[id]
	return ok
}

// rankForID returns the effective rank for a live external id.
func (t *idTable) rankForID(id uint64) (uint64, bool) {
	raw, ok := t.idToRank[id]
	if !ok {
		return 0, false
	}
	return t.effectiveRank(raw), true
}

// idForEffectiveRank returns the external id owning effective rank r. The
// k-th live raw rank is exactly the position of the k-th 0-bit in
// deletedIDBv (a live slot is a 0-bit), so this is a single Select0 query
// rather than a linear scan.
func (t *idTable) idForEffectiveRank(r uint64) uint64 {
	raw := t.deletedIDBv.Select0(int(r))
	return t.graphIDIv.At(raw)
}

// addNode appends a fresh live entry and returns its raw rank.
func (t *idTable) addNode(id uint64) uint64 {
	raw := uint64(t.rawSize())
	t.graphIDIv.PushBack(id)
	t.deletedIDBv.PushBack(false)
	t.idToRank[id] = raw
	if t.nodeCount == 0 || id < t.minNodeID {
		t.minNodeID = id
	}
	if id > t.maxNodeID {
		t.maxNodeID = id
	}
	t.nodeCount++
	return raw
}

// markDeleted tombstones the raw rank owning id.
func (t *idTable) markDeleted(id uint64) {
	raw := t.idToRank[id]
	t.graphIDIv.Set(int(raw), 0)
	t.deletedIDBv.Set(int(raw), true)
	delete(t.idToRank, id)
	if t.hidden[raw] {
		delete(t.hidden, raw)
		t.hiddenCount--
	}
	t.nodeCount--
	t.deletedNodeCount++
}

func (t *idTable) markHidden(id uint64) {
	raw := t.idToRank[id]
	t.hidden[raw] = true
	t.hiddenCount++
}

func (t *idTable) isHiddenID(id uint64) bool {
	raw, ok := t.idToRank[id]
	if !ok {
		return false
	}
	return t.hidden[raw]
}

// nextID allocates an id when the caller does not supply one.
func (t *idTable) nextID() uint64 {
	return t.maxNodeID + 1
}

// rebuildIDHandleMapping compacts the id table: removes tombstones and
// rewrites idToRank against the new dense raw ranks, which after
// compaction equal the effective ranks (spec §4.2). It returns nothing:
// compaction never reorders live effective ranks, only removes the
// raw-rank gaps tombstones left behind, so parallel structures indexed by
// effective rank need no remapping.
func (t *idTable) rebuildIDHandleMapping() {
	if t.deletedNodeCount == 0 {
		return
	}
	newIv := succinct.NewPackedIntVector()
	newBv := succinct.NewBitVector()
	newHidden := make(map[uint64]bool)
	newIdx := uint64(0)
	for raw := 0; raw < t.rawSize(); raw++ {
		id := t.graphIDIv.At(raw)
		if id == 0 {
			continue
		}
		newIv.PushBack(id)
		newBv.PushBack(false)
		if t.hidden[uint64(raw)] {
			newHidden[newIdx] = true
		}
		t.idToRank[id] = newIdx
		newIdx++
	}
	t.graphIDIv = newIv
	t.deletedIDBv = newBv
	t.hidden = newHidden
	t.deletedNodeCount = 0
}
