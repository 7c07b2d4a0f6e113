package bdgraph

import "testing"

func TestPathOccurrenceStoreInsertAndCount(t *testing.T) {
	s := newPathOccurrenceStore()
	s.addNode()
	s.addNode()

	if s.occurrenceCount(0) != 0 {
		t.Fatalf("occurrenceCount(0) = %d, want 0 for a fresh node", s.occurrenceCount(0))
	}

	localRank, absIdx := s.insertOccurrence(0, 3, false)
	if localRank != 0 {
		t.Fatalf("insertOccurrence returned localRank %d, want 0", localRank)
	}
	if s.pathIDAt(absIdx) != 3 {
		t.Fatalf("pathIDAt(absIdx) = %d, want 3", s.pathIDAt(absIdx))
	}
	if s.occurrenceCount(0) != 1 {
		t.Fatalf("occurrenceCount(0) = %d, want 1", s.occurrenceCount(0))
	}
	if s.occurrenceCount(1) != 0 {
		t.Fatalf("occurrenceCount(1) = %d, want 0 (unaffected sibling node)", s.occurrenceCount(1))
	}
}

func TestPathOccurrenceStoreLinkAndDecode(t *testing.T) {
	s := newPathOccurrenceStore()
	s.addNode()
	s.addNode()

	_, idxA := s.insertOccurrence(0, 1, false)
	_, idxB := s.insertOccurrence(1, 1, false)

	s.link(idxA, 10, 0, idxB, 20, 0)

	if !s.hasNext(idxA) {
		t.Fatalf("hasNext(idxA) = false after link")
	}
	if !s.hasPrev(idxB) {
		t.Fatalf("hasPrev(idxB) = false after link")
	}

	nextID, nextLocalRank := s.nextOf(idxA, 10)
	if nextID != 20 || nextLocalRank != 0 {
		t.Fatalf("nextOf(idxA, 10) = (%d, %d), want (20, 0)", nextID, nextLocalRank)
	}
	prevID, prevLocalRank := s.prevOf(idxB, 20)
	if prevID != 10 || prevLocalRank != 0 {
		t.Fatalf("prevOf(idxB, 20) = (%d, %d), want (10, 0)", prevID, prevLocalRank)
	}
}

func TestPathOccurrenceStoreUnlinkMarksEnds(t *testing.T) {
	s := newPathOccurrenceStore()
	s.addNode()
	_, idx := s.insertOccurrence(0, 1, false)

	if s.hasNext(idx) || s.hasPrev(idx) {
		t.Fatalf("a freshly inserted occurrence should have neither a next nor a prev link")
	}

	s.link(idx, 10, 0, idx, 10, 0) // self-link to populate both fields
	s.unlinkNext(idx)
	s.unlinkPrev(idx)
	if s.hasNext(idx) || s.hasPrev(idx) {
		t.Fatalf("unlinkNext/unlinkPrev did not clear the links")
	}
}

func TestPathOccurrenceStoreRemoveNode(t *testing.T) {
	s := newPathOccurrenceStore()
	s.addNode()
	s.insertOccurrence(0, 1, false)
	s.insertOccurrence(0, 2, true)

	s.removeNode(0)
	s.addNode() // re-add to make occurrenceCount(0) addressable again
	if s.occurrenceCount(0) != 0 {
		t.Fatalf("occurrenceCount(0) after removeNode+addNode = %d, want 0", s.occurrenceCount(0))
	}
}
