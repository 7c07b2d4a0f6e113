package bdgraph

import "testing"

func TestAppendOccurrenceBuildsPathOrder(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	p := g.CreatePathHandle("p1")
	oa := g.AppendOccurrence(p, a)
	ob := g.AppendOccurrence(p, b)

	if g.GetFirstOccurrence(p) != oa {
		t.Fatalf("GetFirstOccurrence(p) != first appended occurrence")
	}
	if g.GetLastOccurrence(p) != ob {
		t.Fatalf("GetLastOccurrence(p) != last appended occurrence")
	}
	if !g.HasNextOccurrence(oa) || g.GetNextOccurrence(oa) != ob {
		t.Fatalf("oa's next occurrence is not ob")
	}
	if !g.HasPreviousOccurrence(ob) || g.GetPreviousOccurrence(ob) != oa {
		t.Fatalf("ob's previous occurrence is not oa")
	}
}

func TestSetOccurrenceRedirectsInPlace(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	c := g.CreateHandle("GGGG", 3)
	p := g.CreatePathHandle("p1")
	g.AppendOccurrence(p, a)
	occB := g.AppendOccurrence(p, b)

	newOcc := g.SetOccurrence(occB, c)
	if g.GetID(g.GetOccurrenceHandle(newOcc)) != 3 {
		t.Fatalf("SetOccurrence did not redirect to node 3")
	}
	if g.GetPath(p) != "AAAAGGGG" {
		t.Fatalf("GetPath(p) = %q, want AAAAGGGG", g.GetPath(p))
	}
	if g.GetLastOccurrence(p) != newOcc {
		t.Fatalf("GetLastOccurrence(p) was not updated to the new occurrence")
	}
}

func TestReplaceOccurrenceSplicesChain(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	c := g.CreateHandle("GGGG", 3)
	d := g.CreateHandle("TTTT", 4)
	p := g.CreatePathHandle("p1")
	g.AppendOccurrence(p, a)
	occB := g.AppendOccurrence(p, b)
	g.AppendOccurrence(p, d)

	newOccs := g.ReplaceOccurrence(occB, []Handle{b, c})
	if len(newOccs) != 2 {
		t.Fatalf("ReplaceOccurrence returned %d occurrences, want 2", len(newOccs))
	}
	if g.GetPathOccurrenceCount(p) != 4 {
		t.Fatalf("GetPathOccurrenceCount(p) = %d, want 4", g.GetPathOccurrenceCount(p))
	}
	if g.GetPath(p) != "AAAACCCCGGGGTTTT" {
		t.Fatalf("GetPath(p) = %q, want AAAACCCCGGGGTTTT", g.GetPath(p))
	}
}

func TestDestroyOccurrenceSplicesNeighbors(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	c := g.CreateHandle("GGGG", 3)
	p := g.CreatePathHandle("p1")
	g.AppendOccurrence(p, a)
	occB := g.AppendOccurrence(p, b)
	g.AppendOccurrence(p, c)

	g.DestroyOccurrence(occB)
	if g.GetPathOccurrenceCount(p) != 2 {
		t.Fatalf("GetPathOccurrenceCount(p) = %d, want 2", g.GetPathOccurrenceCount(p))
	}
	if g.GetPath(p) != "AAAAGGGG" {
		t.Fatalf("GetPath(p) = %q, want AAAAGGGG", g.GetPath(p))
	}
}

// TestRemoveOccurrenceFromBlockFixesUpSiblingRankPointers exercises the
// mid-block removal case: three occurrences share a single node's block,
// each belonging to a different path, with a fourth path occurrence on a
// second node pointing at the middle one. Removing the middle entry must
// shift the tail entry in the block down by one local rank and repoint
// whichever path pointed through it.
func TestRemoveOccurrenceFromBlockFixesUpSiblingRankPointers(t *testing.T) {
	g := New()
	shared := g.CreateHandle("AAAA", 1)
	before := g.CreateHandle("CCCC", 2)

	p1 := g.CreatePathHandle("p1")
	occ0 := g.AppendOccurrence(p1, shared) // local rank 0 on shared

	p2 := g.CreatePathHandle("p2")
	g.AppendOccurrence(p2, before)
	occ1 := g.AppendOccurrence(p2, shared) // local rank 1 on shared; has a prev

	p3 := g.CreatePathHandle("p3")
	occ2 := g.AppendOccurrence(p3, shared) // local rank 2 on shared

	if occ0.localRank != 0 || occ1.localRank != 1 || occ2.localRank != 2 {
		t.Fatalf("unexpected local ranks: %d %d %d", occ0.localRank, occ1.localRank, occ2.localRank)
	}

	// Remove the middle occurrence (local rank 1); occ2 must shift to
	// local rank 1 and still resolve correctly via p3's path metadata.
	g.DestroyOccurrence(occ1)

	if g.GetPathOccurrenceCount(p2) != 1 {
		t.Fatalf("GetPathOccurrenceCount(p2) = %d, want 1", g.GetPathOccurrenceCount(p2))
	}
	if g.GetPath(p3) != "AAAA" {
		t.Fatalf("p3's path after sibling removal = %q, want AAAA (shifted occurrence still resolves)", g.GetPath(p3))
	}
	if g.GetPath(p1) != "AAAA" {
		t.Fatalf("p1's path after sibling removal = %q, want AAAA", g.GetPath(p1))
	}
}

func TestDestroyPathRemovesAllOccurrences(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	b := g.CreateHandle("CCCC", 2)
	p := g.CreatePathHandle("p1")
	g.AppendOccurrence(p, a)
	g.AppendOccurrence(p, b)

	before := g.GetHandleOccurrenceCount(a)
	g.DestroyPath(p)
	if before != 1 {
		t.Fatalf("GetHandleOccurrenceCount(a) before destroy = %d, want 1", before)
	}
	if g.GetHandleOccurrenceCount(a) != 0 {
		t.Fatalf("GetHandleOccurrenceCount(a) after DestroyPath = %d, want 0", g.GetHandleOccurrenceCount(a))
	}
	if g.HasPath("p1") {
		t.Fatalf("path p1 still reported live after DestroyPath")
	}
}

func TestOccurrencesOfHandleMatchOrientation(t *testing.T) {
	g := New()
	a := g.CreateHandle("AAAA", 1)
	p := g.CreatePathHandle("p1")
	g.AppendOccurrence(p, a)
	g.AppendOccurrence(p, g.Flip(a))

	fwdOnly := g.OccurrencesOfHandle(a, true)
	if len(fwdOnly) != 1 {
		t.Fatalf("OccurrencesOfHandle(a, true) returned %d occurrences, want 1", len(fwdOnly))
	}
	if g.GetIsReverse(g.GetOccurrenceHandle(fwdOnly[0])) {
		t.Fatalf("OccurrencesOfHandle(a, true) returned a reverse occurrence")
	}

	revOnly := g.OccurrencesOfHandle(g.Flip(a), true)
	if len(revOnly) != 1 {
		t.Fatalf("OccurrencesOfHandle(flip(a), true) returned %d occurrences, want 1", len(revOnly))
	}
	if !g.GetIsReverse(g.GetOccurrenceHandle(revOnly[0])) {
		t.Fatalf("OccurrencesOfHandle(flip(a), true) returned a forward occurrence")
	}

	all := g.OccurrencesOfHandle(a, false)
	if len(all) != 2 {
		t.Fatalf("OccurrencesOfHandle(a, false) returned %d occurrences, want 2", len(all))
	}
}
