package bdgraph

import "testing"

func TestSetHandleSequenceRequiresForwardHandle(t *testing.T) {
	g := New()
	h := g.CreateHandle("AAAA", 1)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for SetHandleSequence on a reverse handle")
		}
	}()
	g.SetHandleSequence(g.Flip(h), "CCCC")
}

func TestCreateHiddenHandleIsHiddenButQueryable(t *testing.T) {
	g := New()
	h := g.CreateHiddenHandle("AAAA")
	id := g.GetID(h)
	if !g.IsHidden(id) {
		t.Fatalf("IsHidden(%d) = false, want true", id)
	}
	if g.GetSequence(h) != "AAAA" {
		t.Fatalf("GetSequence() = %q, want AAAA (hidden nodes still answer queries)", g.GetSequence(h))
	}
}

func TestClearResetsGraph(t *testing.T) {
	g := New()
	g.CreateHandle("AAAA", 1)
	g.CreatePathHandle("p1")
	g.Clear()
	if g.NodeSize() != 0 {
		t.Fatalf("NodeSize() after Clear() = %d, want 0", g.NodeSize())
	}
	if g.GetPathCount() != 0 {
		t.Fatalf("GetPathCount() after Clear() = %d, want 0", g.GetPathCount())
	}
}

func TestEdgeHandleCanonicalizesByID(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 5)
	b := g.CreateHandle("CCCC", 2)

	left, right := g.EdgeHandle(a, b)
	if g.GetID(left) != 2 || g.GetID(right) != 5 {
		t.Fatalf("EdgeHandle(a, b) = (id %d, id %d), want (2, 5)", g.GetID(left), g.GetID(right))
	}
	if !right.unpackRev() {
		t.Fatalf("EdgeHandle did not flip the higher-id side into the right position")
	}
}

func TestDivideHandleRejectsNothingButProducesContiguousPieces(t *testing.T) {
	g := New()
	h := g.CreateHandle("AAAACCCCGGGG", 1)
	pieces := g.DivideHandle(h, []int{4, 8})
	if len(pieces) != 3 {
		t.Fatalf("DivideHandle returned %d pieces, want 3", len(pieces))
	}
	want := []string{"AAAA", "CCCC", "GGGG"}
	for i, p := range pieces {
		if g.GetSequence(p) != want[i] {
			t.Errorf("piece %d sequence = %q, want %q", i, g.GetSequence(p), want[i])
		}
	}
	if g.hasEdge(pieces[0], pieces[1]) == false || g.hasEdge(pieces[1], pieces[2]) == false {
		t.Fatalf("adjacent pieces are not connected after divide")
	}
}

func TestGetDegreeCountsBothDirectionsIndependently(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	c := g.CreateHandle("GGGG", 3)
	g.CreateEdge(a, b)
	g.CreateEdge(c, a)

	if g.GetDegree(a, false) != 1 {
		t.Errorf("GetDegree(a, false) = %d, want 1", g.GetDegree(a, false))
	}
	if g.GetDegree(a, true) != 1 {
		t.Errorf("GetDegree(a, true) = %d, want 1", g.GetDegree(a, true))
	}
}
