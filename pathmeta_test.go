package bdgraph

import "testing"

func TestPathMetadataStoreCreateAndLookup(t *testing.T) {
	s := newPathMetadataStore()
	m := s.createPath("chr1")
	if m.id != 0 {
		t.Fatalf("first createPath id = %d, want 0", m.id)
	}
	if !s.hasPath("chr1") {
		t.Fatalf("hasPath(\"chr1\") = false after createPath")
	}
	id, ok := s.idForName("chr1")
	if !ok || id != m.id {
		t.Fatalf("idForName(\"chr1\") = (%d, %v), want (%d, true)", id, ok, m.id)
	}
}

func TestPathMetadataStoreIDsNeverReused(t *testing.T) {
	s := newPathMetadataStore()
	a := s.createPath("a")
	s.destroyPath(a.id)
	b := s.createPath("b")
	if b.id == a.id {
		t.Fatalf("createPath reused destroyed id %d", a.id)
	}
}

func TestPathMetadataStoreForEachAscendingOrder(t *testing.T) {
	s := newPathMetadataStore()
	s.createPath("z")
	s.createPath("a")
	s.createPath("m")

	var seen []uint64
	s.forEach(func(m *pathMeta) bool {
		seen = append(seen, m.id)
		return true
	})
	for i := 1; i < len(seen); i++ {
		if seen[i] < seen[i-1] {
			t.Fatalf("forEach visited ids out of order: %v", seen)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("forEach visited %d paths, want 3", len(seen))
	}
}

func TestPathMetadataStoreDestroyRemovesNameAndID(t *testing.T) {
	s := newPathMetadataStore()
	m := s.createPath("chr1")
	s.destroyPath(m.id)
	if s.hasPath("chr1") {
		t.Fatalf("hasPath(\"chr1\") = true after destroyPath")
	}
	if s.get(m.id) != nil {
		t.Fatalf("get(%d) returned non-nil after destroyPath", m.id)
	}
}
