package bdgraph

import "testing"

func TestTopologyStoreInsertAndEdgesOf(t *testing.T) {
	s := newTopologyStore()
	s.addNode()
	s.addNode()

	tag := packEdgeTag(false, false, true)
	s.insertEdgeAtHead(0, 42, tag)

	entries := s.edgesOf(0)
	if len(entries) != 1 {
		t.Fatalf("edgesOf(0) returned %d entries, want 1", len(entries))
	}
	if entries[0].delta != 42 || entries[0].tag != tag {
		t.Errorf("edgesOf(0)[0] = %+v, want delta=42 tag=%v", entries[0], tag)
	}
	if s.edgeCount(0) != 1 {
		t.Errorf("edgeCount(0) = %d, want 1", s.edgeCount(0))
	}
	if s.edgeCount(1) != 0 {
		t.Errorf("edgeCount(1) = %d, want 0", s.edgeCount(1))
	}
}

func TestTopologyStoreInsertAtHeadOrdersNewestFirst(t *testing.T) {
	s := newTopologyStore()
	s.addNode()

	tagA := packEdgeTag(false, false, false)
	tagB := packEdgeTag(false, true, false)
	s.insertEdgeAtHead(0, 10, tagA)
	s.insertEdgeAtHead(0, 20, tagB)

	entries := s.edgesOf(0)
	if len(entries) != 2 {
		t.Fatalf("edgesOf(0) returned %d entries, want 2", len(entries))
	}
	if entries[0].delta != 20 || entries[1].delta != 10 {
		t.Errorf("edgesOf(0) deltas = [%d %d], want [20 10] (most recent insert at head)", entries[0].delta, entries[1].delta)
	}
}

func TestTopologyStoreRemoveEdgeMatching(t *testing.T) {
	s := newTopologyStore()
	s.addNode()
	tag := packEdgeTag(false, false, false)
	s.insertEdgeAtHead(0, edgeToDelta(1, 2), tag)

	removed := s.removeEdgeMatching(0, 1, 2, false)
	if !removed {
		t.Fatalf("removeEdgeMatching did not find the edge")
	}
	if s.edgeCount(0) != 0 {
		t.Errorf("edgeCount(0) after removal = %d, want 0", s.edgeCount(0))
	}
}

func TestTopologyStoreRemoveEdgeMatchingMixedOrientation(t *testing.T) {
	s := newTopologyStore()
	s.addNode()
	// onRev=false (rank 0's own orientation), otherRev=true (the other
	// endpoint is reverse): matchRev must be checked against otherRev, not
	// onRev, or a mixed-orientation edge like this one is never found.
	tag := packEdgeTag(false, true, false)
	s.insertEdgeAtHead(0, edgeToDelta(1, 2), tag)

	if s.removeEdgeMatching(0, 1, 2, false) {
		t.Fatalf("removeEdgeMatching(matchRev=false) matched an entry whose otherRev is true")
	}
	if s.edgeCount(0) != 1 {
		t.Fatalf("edgeCount(0) = %d, want 1 (no removal should have happened)", s.edgeCount(0))
	}

	removed := s.removeEdgeMatching(0, 1, 2, true)
	if !removed {
		t.Fatalf("removeEdgeMatching(matchRev=true) did not find the mixed-orientation edge")
	}
	if s.edgeCount(0) != 0 {
		t.Errorf("edgeCount(0) after removal = %d, want 0", s.edgeCount(0))
	}
}

func TestTopologyStoreRemoveEdgeMatchingMissReturnsFalse(t *testing.T) {
	s := newTopologyStore()
	s.addNode()
	if s.removeEdgeMatching(0, 1, 2, false) {
		t.Fatalf("removeEdgeMatching reported success for a non-existent edge")
	}
}

func TestTopologyStoreRemoveNode(t *testing.T) {
	s := newTopologyStore()
	s.addNode()
	s.addNode()
	s.removeNode(0)
	if s.edgeCount(0) != 0 {
		t.Errorf("edgeCount(0) after removeNode = %d, want 0 (rank 0 is now the former rank 1's record)", s.edgeCount(0))
	}
}
