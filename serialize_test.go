package bdgraph

import (
	"bytes"
	"testing"
)

func buildSampleGraph() *Graph {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	c := g.CreateHandle("GGGG", 3)
	g.CreateEdge(a, b)
	g.CreateEdge(b, c)
	g.CreateEdge(a, c)

	p := g.CreatePathHandle("p1")
	g.AppendOccurrence(p, a)
	g.AppendOccurrence(p, b)
	g.AppendOccurrence(p, g.Flip(c))

	g.CreatePathHandle("empty")
	return g
}

func TestSerializeLoadRoundTrip(t *testing.T) {
	g := buildSampleGraph()

	var buf bytes.Buffer
	if _, err := g.Serialize(&buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}

	g2, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if g2.NodeSize() != g.NodeSize() {
		t.Errorf("NodeSize() = %d, want %d", g2.NodeSize(), g.NodeSize())
	}
	if g2.MinNodeID() != g.MinNodeID() || g2.MaxNodeID() != g.MaxNodeID() {
		t.Errorf("min/max node id = (%d, %d), want (%d, %d)", g2.MinNodeID(), g2.MaxNodeID(), g.MinNodeID(), g.MaxNodeID())
	}
	if g2.GetPathCount() != g.GetPathCount() {
		t.Errorf("GetPathCount() = %d, want %d", g2.GetPathCount(), g.GetPathCount())
	}

	for id := uint64(1); id <= 3; id++ {
		h1 := g.GetHandle(id, false)
		h2 := g2.GetHandle(id, false)
		if g2.GetSequence(h2) != g.GetSequence(h1) {
			t.Errorf("node %d sequence after round trip = %q, want %q", id, g2.GetSequence(h2), g.GetSequence(h1))
		}
		if g2.GetDegree(h2, false) != g.GetDegree(h1, false) {
			t.Errorf("node %d out-degree after round trip = %d, want %d", id, g2.GetDegree(h2, false), g.GetDegree(h1, false))
		}
	}

	p1 := g2.GetPathHandle("p1")
	if g2.GetPath(p1) != g.GetPath(g.GetPathHandle("p1")) {
		t.Errorf("path p1 sequence after round trip = %q, want %q", g2.GetPath(p1), g.GetPath(g.GetPathHandle("p1")))
	}
	if !g2.IsEmpty(g2.GetPathHandle("empty")) {
		t.Errorf("path \"empty\" should still be empty after round trip")
	}

	if err := g2.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants() on round-tripped graph = %v", err)
	}
}

func TestSerializePreservesHiddenNodes(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	p := g.CreatePathHandle("p1")
	g.AppendOccurrence(p, a)
	g.AppendOccurrence(p, b)
	g.DestroyHandle(a)

	var buf bytes.Buffer
	if _, err := g.Serialize(&buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	g2, err := Load(&buf)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	first := g2.GetFirstOccurrence(g2.GetPathHandle("p1"))
	id := g2.GetID(g2.GetOccurrenceHandle(first))
	if !g2.IsHidden(id) {
		t.Fatalf("IsHidden(%d) = false after round trip, want true", id)
	}
	if g2.GetSequence(g2.GetOccurrenceHandle(first)) != "AAAA" {
		t.Fatalf("hidden node sequence after round trip = %q, want AAAA", g2.GetSequence(g2.GetOccurrenceHandle(first)))
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	buf := bytes.NewBufferString("NOTBDGRAPH-garbage-bytes-00000000")
	if _, err := Load(buf); err == nil {
		t.Fatalf("Load() on a non-snapshot stream succeeded, want an error")
	}
}

func TestLoadRejectsCorruptedCRC(t *testing.T) {
	g := buildSampleGraph()
	var buf bytes.Buffer
	if _, err := g.Serialize(&buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	data := buf.Bytes()
	data[len(data)-1] ^= 0xFF // corrupt the stored CRC32 trailer
	if _, err := Load(bytes.NewReader(data)); err == nil {
		t.Fatalf("Load() on a CRC-corrupted stream succeeded, want an error")
	}
}

func TestRebuildIDHandleMappingCompactsBeforeSerialize(t *testing.T) {
	g := New()
	g.CreateHandle("AAAA", 1)
	g.CreateHandle("CCCC", 2)
	g.CreateHandle("GGGG", 3)
	g.DestroyHandle(g.GetHandle(2, false))

	if g.ids.deletedNodeCount == 0 {
		t.Fatalf("expected a tombstone before serialization")
	}

	var buf bytes.Buffer
	if _, err := g.Serialize(&buf); err != nil {
		t.Fatalf("Serialize() = %v", err)
	}
	if g.ids.deletedNodeCount != 0 {
		t.Fatalf("deletedNodeCount after Serialize() = %d, want 0 (rebuild_id_handle_mapping runs first)", g.ids.deletedNodeCount)
	}
}
