package bdgraph

import (
	"github.com/azybler/bdgraph/internal/dna"
	"github.com/azybler/bdgraph/internal/succinct"
)

// sequenceStore is the sequence store (C4): a packed 2-bit DNA stream with
// a parallel delimiter bit vector marking the last base of each node
// (spec §4.3).
type sequenceStore struct {
	seqPv *succinct.PackedIntVector // one 2-bit base code per entry
	seqBv *succinct.BitVector       // 1 at the last base of each node, 0 elsewhere
}

func newSequenceStore() *sequenceStore {
	return &sequenceStore{
		seqPv: succinct.NewPackedIntVector(),
		seqBv: succinct.NewBitVector(),
	}
}

// encodeSequence encodes seq according to the alphabet_strict setting
// (internal/config's AlphabetStrict): strict rejects any non-ACGT
// character, lenient folds it to A via dna.NormalizeLenient instead.
func encodeSequence(seq string, strict bool) ([]dna.Base, error) {
	if strict {
		return dna.EncodeString(seq)
	}
	return dna.EncodeStringLenient(seq), nil
}

// start returns the first index (inclusive) of rank r's forward slice.
func (s *sequenceStore) start(r uint64) int {
	if r == 0 {
		return 0
	}
	return s.seqBv.Select1(int(r)-1) + 1
}

// end returns the last index (inclusive) of rank r's forward slice.
func (s *sequenceStore) end(r uint64) int {
	return s.seqBv.Select1(int(r))
}

// length returns get_length(r): the number of bases at rank r.
func (s *sequenceStore) length(r uint64) int {
	return s.end(r) - s.start(r) + 1
}

// forwardSequence returns rank r's sequence in forward orientation.
func (s *sequenceStore) forwardSequence(r uint64) string {
	lo, hi := s.start(r), s.end(r)
	bases := make([]dna.Base, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		bases = append(bases, dna.Base(s.seqPv.At(i)))
	}
	return dna.DecodeString(bases)
}

// sequenceFor returns the sequence as observed through handle h, reverse
// complementing when h is reverse-oriented (get_sequence, spec §4.3).
func (s *sequenceStore) sequenceFor(r uint64, rev bool) string {
	fwd := s.forwardSequence(r)
	if !rev {
		return fwd
	}
	rc, err := dna.ReverseComplementString(fwd)
	if err != nil {
		panic(err)
	}
	return rc
}

// appendNode appends a new node's forward sequence at the tail of the
// store, used by create_handle (spec §4.8). When strict is false,
// non-ACGT characters are folded rather than rejected.
func (s *sequenceStore) appendNode(seq string, strict bool) error {
	bases, err := encodeSequence(seq, strict)
	if err != nil {
		return err
	}
	for _, b := range bases {
		s.seqPv.PushBack(uint64(b))
		s.seqBv.PushBack(false)
	}
	s.seqBv.Set(s.seqPv.Size()-1, true)
	return nil
}

// removeNode deletes rank r's slice entirely, used by destroy_handle.
// Every rank above r shifts down by one effective position as a side
// effect of the underlying dynamic vectors, which is exactly how
// idTable.effectiveRank expects ranks to move (spec §4.2).
func (s *sequenceStore) removeNode(r uint64) {
	lo, hi := s.start(r), s.end(r)
	for i := hi; i >= lo; i-- {
		s.seqPv.Remove(i)
		s.seqBv.Remove(i)
	}
}

// setSequence overwrites rank r's forward sequence, growing or shrinking
// the slice in place at start(r) (set_handle_sequence, spec §4.3). When
// strict is false, non-ACGT characters are folded rather than rejected.
func (s *sequenceStore) setSequence(r uint64, seq string, strict bool) error {
	bases, err := encodeSequence(seq, strict)
	if err != nil {
		return err
	}
	lo, hi := s.start(r), s.end(r)
	oldLen := hi - lo + 1
	newLen := len(bases)

	switch {
	case newLen < oldLen:
		for i := 0; i < oldLen-newLen; i++ {
			s.seqPv.Remove(lo)
			s.seqBv.Remove(lo)
		}
	case newLen > oldLen:
		for i := 0; i < newLen-oldLen; i++ {
			s.seqPv.Insert(lo, 0)
			s.seqBv.Insert(lo, false)
		}
	}
	for i, b := range bases {
		s.seqPv.Set(lo+i, uint64(b))
		s.seqBv.Set(lo+i, false)
	}
	s.seqBv.Set(lo+newLen-1, true)
	return nil
}
