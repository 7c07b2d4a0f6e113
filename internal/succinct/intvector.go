package succinct

import "io"

// PackedIntVector is a dynamic vector of non-negative integers, blocked the
// same way as BitVector so insert/remove at an arbitrary position stays a
// single-block shift instead of a whole-vector copy.
type PackedIntVector struct {
	blocks []*intBlock
}

type intBlock struct {
	vals []uint64
}

// NewPackedIntVector returns an empty vector.
func NewPackedIntVector() *PackedIntVector {
	return &PackedIntVector{}
}

// Size returns the number of values stored.
func (v *PackedIntVector) Size() int {
	n := 0
	for _, b := range v.blocks {
		n += len(b.vals)
	}
	return n
}

func (v *PackedIntVector) locate(i int) (blockIdx, local int) {
	pos := 0
	for bi, b := range v.blocks {
		if i < pos+len(b.vals) {
			return bi, i - pos
		}
		pos += len(b.vals)
	}
	return len(v.blocks) - 1, len(v.blocks[len(v.blocks)-1].vals)
}

// At returns the value at position i.
func (v *PackedIntVector) At(i int) uint64 {
	bi, local := v.locate(i)
	return v.blocks[bi].vals[local]
}

// PushBack appends a value to the end of the vector.
func (v *PackedIntVector) PushBack(x uint64) {
	v.Insert(v.Size(), x)
}

// Insert inserts value x at position i, shifting everything at or after i
// one place to the right.
func (v *PackedIntVector) Insert(i int, x uint64) {
	if len(v.blocks) == 0 {
		v.blocks = append(v.blocks, &intBlock{})
	}
	bi, local := v.locate(i)
	blk := v.blocks[bi]
	blk.vals = append(blk.vals, 0)
	copy(blk.vals[local+1:], blk.vals[local:])
	blk.vals[local] = x
	if len(blk.vals) > 2*blockSize {
		v.splitBlock(bi)
	}
}

// Remove deletes the value at position i, shifting everything after it one
// place to the left.
func (v *PackedIntVector) Remove(i int) {
	bi, local := v.locate(i)
	blk := v.blocks[bi]
	copy(blk.vals[local:], blk.vals[local+1:])
	blk.vals = blk.vals[:len(blk.vals)-1]
	if len(blk.vals) == 0 && len(v.blocks) > 1 {
		v.blocks = append(v.blocks[:bi], v.blocks[bi+1:]...)
	}
}

// Set overwrites the value at position i.
func (v *PackedIntVector) Set(i int, x uint64) {
	bi, local := v.locate(i)
	v.blocks[bi].vals[local] = x
}

func (v *PackedIntVector) splitBlock(bi int) {
	blk := v.blocks[bi]
	mid := len(blk.vals) / 2
	left := &intBlock{vals: append([]uint64(nil), blk.vals[:mid]...)}
	right := &intBlock{vals: append([]uint64(nil), blk.vals[mid:]...)}
	v.blocks = append(v.blocks, nil)
	copy(v.blocks[bi+2:], v.blocks[bi+1:])
	v.blocks[bi] = left
	v.blocks[bi+1] = right
}

// Serialize writes the vector as a block count followed by each block's
// length-prefixed uint64 values, the same convention BitVector.Serialize
// uses.
func (v *PackedIntVector) Serialize(w io.Writer) (int, error) {
	cw := &countingWriter{w: w}
	if err := writeUint64(cw, uint64(len(v.blocks))); err != nil {
		return cw.n, wrapErr("PackedIntVector.Serialize", err)
	}
	for _, blk := range v.blocks {
		if err := writeUint64(cw, uint64(len(blk.vals))); err != nil {
			return cw.n, wrapErr("PackedIntVector.Serialize", err)
		}
		for _, x := range blk.vals {
			if err := writeUint64(cw, x); err != nil {
				return cw.n, wrapErr("PackedIntVector.Serialize", err)
			}
		}
	}
	return cw.n, nil
}

// Load replaces the vector's contents with a snapshot written by Serialize.
func (v *PackedIntVector) Load(r io.Reader) error {
	nBlocks, err := readUint64(r)
	if err != nil {
		return wrapErr("PackedIntVector.Load", err)
	}
	blocks := make([]*intBlock, 0, nBlocks)
	for i := uint64(0); i < nBlocks; i++ {
		nVals, err := readUint64(r)
		if err != nil {
			return wrapErr("PackedIntVector.Load", err)
		}
		vals := make([]uint64, nVals)
		for j := range vals {
			x, err := readUint64(r)
			if err != nil {
				return wrapErr("PackedIntVector.Load", err)
			}
			vals[j] = x
		}
		blocks = append(blocks, &intBlock{vals: vals})
	}
	v.blocks = blocks
	return nil
}
