package bdgraph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

// magicBytes identifies a bdgraph snapshot file, following the teacher's
// fixed-length magic-string header convention (pkg/graph/binary.go).
const (
	magicBytes     = "BDGRAPH1"
	snapshotVersion = uint32(1)
)

// Serialize writes a whole-graph snapshot to w: rebuild_id_handle_mapping
// first (so no tombstone ever reaches the stream), then the seven scalar
// counters, then every indexed structure in the fixed order spec §4.9
// requires, then path metadata and the name->id map, then a CRC32 trailer
// over everything written (spec §4.9, serialize).
func (g *Graph) Serialize(w io.Writer) (int, error) {
	g.ids.rebuildIDHandleMapping()

	cw := &crc32Writer{w: w, hash: crc32.NewIEEE()}
	total := 0

	n, err := io.WriteString(cw, magicBytes)
	total += n
	if err != nil {
		return total, fmt.Errorf("write magic: %w", err)
	}
	n, err = writeUint32(cw, snapshotVersion)
	total += n
	if err != nil {
		return total, fmt.Errorf("write version: %w", err)
	}

	counters := []uint64{
		g.ids.maxNodeID,
		g.ids.minNodeID,
		g.ids.nodeCount,
		g.edgeCount,
		uint64(g.pathMeta.count()),
		g.pathMeta.nextID,
		g.ids.deletedNodeCount,
	}
	for _, c := range counters {
		n, err = writeUint64(cw, c)
		total += n
		if err != nil {
			return total, fmt.Errorf("write counter: %w", err)
		}
	}

	serializers := []func(io.Writer) (int, error){
		g.ids.graphIDIv.Serialize,
		g.ids.deletedIDBv.Serialize,
	}
	for _, s := range serializers {
		n, err = s(cw)
		total += n
		if err != nil {
			return total, fmt.Errorf("write id structures: %w", err)
		}
	}

	n, err = writeUint64(cw, uint64(len(g.ids.idToRank)))
	total += n
	if err != nil {
		return total, fmt.Errorf("write id map length: %w", err)
	}
	for id, rank := range g.ids.idToRank {
		n, err = writeUint64(cw, id)
		total += n
		if err != nil {
			return total, fmt.Errorf("write id map entry: %w", err)
		}
		n, err = writeUint64(cw, rank)
		total += n
		if err != nil {
			return total, fmt.Errorf("write id map entry: %w", err)
		}
	}

	// The hidden-rank set is not named among spec §4.9's listed fields, but
	// without it a snapshot round trip would silently lose every
	// is_hidden answer, so it rides along with the id table it belongs to.
	n, err = writeUint64(cw, uint64(len(g.ids.hidden)))
	total += n
	if err != nil {
		return total, fmt.Errorf("write hidden set length: %w", err)
	}
	for raw, hidden := range g.ids.hidden {
		if !hidden {
			continue
		}
		n, err = writeUint64(cw, raw)
		total += n
		if err != nil {
			return total, fmt.Errorf("write hidden set entry: %w", err)
		}
	}

	rest := []func(io.Writer) (int, error){
		g.topo.topologyIv.Serialize,
		g.topo.topologyBv.Serialize,
		g.seq.seqPv.Serialize,
		g.seq.seqBv.Serialize,
		g.paths.pathHandleWt.Serialize,
		g.paths.pathRevIv.Serialize,
		g.paths.pathNextIDIv.Serialize,
		g.paths.pathNextRankIv.Serialize,
		g.paths.pathPrevIDIv.Serialize,
		g.paths.pathPrevRankIv.Serialize,
	}
	for _, s := range rest {
		n, err = s(cw)
		total += n
		if err != nil {
			return total, fmt.Errorf("write indexed structure: %w", err)
		}
	}

	if n, err = writePathMetadata(cw, g.pathMeta); err != nil {
		return total + n, fmt.Errorf("write path metadata: %w", err)
	} else {
		total += n
	}

	if n, err = writeNameToID(cw, g.pathMeta); err != nil {
		return total + n, fmt.Errorf("write name map: %w", err)
	} else {
		total += n
	}

	if err := binary.Write(w, binary.LittleEndian, cw.hash.Sum32()); err != nil {
		return total, fmt.Errorf("write CRC32: %w", err)
	}
	return total + 4, nil
}

// Load returns a new graph built from a snapshot read from r,
// reversing Serialize's writes in the exact same order, then validates
// the trailing CRC32 (spec §4.9, load; §7.2).
func Load(r io.Reader) (*Graph, error) {
	cr := &crc32Reader{r: r, hash: crc32.NewIEEE()}

	magic := make([]byte, len(magicBytes))
	if _, err := io.ReadFull(cr, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if string(magic) != magicBytes {
		return nil, fmt.Errorf("not a bdgraph snapshot: bad magic %q", magic)
	}
	version, err := readUint32(cr)
	if err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", version)
	}

	g := New()
	counters := make([]uint64, 7)
	for i := range counters {
		v, err := readUint64(cr)
		if err != nil {
			return nil, fmt.Errorf("read counter: %w", err)
		}
		counters[i] = v
	}
	g.ids.maxNodeID = counters[0]
	g.ids.minNodeID = counters[1]
	g.ids.nodeCount = counters[2]
	g.edgeCount = counters[3]
	wantPathCount := counters[4]
	g.pathMeta.nextID = counters[5]
	g.ids.deletedNodeCount = counters[6]

	if err := g.ids.graphIDIv.Load(cr); err != nil {
		return nil, fmt.Errorf("read graph_id_iv: %w", err)
	}
	if err := g.ids.deletedIDBv.Load(cr); err != nil {
		return nil, fmt.Errorf("read deleted_id_bv: %w", err)
	}

	idMapLen, err := readUint64(cr)
	if err != nil {
		return nil, fmt.Errorf("read id map length: %w", err)
	}
	for i := uint64(0); i < idMapLen; i++ {
		id, err := readUint64(cr)
		if err != nil {
			return nil, fmt.Errorf("read id map entry: %w", err)
		}
		rank, err := readUint64(cr)
		if err != nil {
			return nil, fmt.Errorf("read id map entry: %w", err)
		}
		g.ids.idToRank[id] = rank
	}

	hiddenLen, err := readUint64(cr)
	if err != nil {
		return nil, fmt.Errorf("read hidden set length: %w", err)
	}
	for i := uint64(0); i < hiddenLen; i++ {
		raw, err := readUint64(cr)
		if err != nil {
			return nil, fmt.Errorf("read hidden set entry: %w", err)
		}
		g.ids.hidden[raw] = true
		g.ids.hiddenCount++
	}

	loaders := []func(io.Reader) error{
		g.topo.topologyIv.Load,
		g.topo.topologyBv.Load,
		g.seq.seqPv.Load,
		g.seq.seqBv.Load,
		g.paths.pathHandleWt.Load,
		g.paths.pathRevIv.Load,
		g.paths.pathNextIDIv.Load,
		g.paths.pathNextRankIv.Load,
		g.paths.pathPrevIDIv.Load,
		g.paths.pathPrevRankIv.Load,
	}
	for _, l := range loaders {
		if err := l(cr); err != nil {
			return nil, fmt.Errorf("read indexed structure: %w", err)
		}
	}

	if err := readPathMetadata(cr, g.pathMeta, wantPathCount); err != nil {
		return nil, fmt.Errorf("read path metadata: %w", err)
	}
	if err := readNameToID(cr, g.pathMeta); err != nil {
		return nil, fmt.Errorf("read name map: %w", err)
	}

	expected := cr.hash.Sum32()
	var stored uint32
	if err := binary.Read(r, binary.LittleEndian, &stored); err != nil {
		return nil, fmt.Errorf("read CRC32: %w", err)
	}
	if stored != expected {
		return nil, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", stored, expected)
	}

	return g, nil
}

func writePathMetadata(w io.Writer, s *pathMetadataStore) (int, error) {
	total := 0
	n, err := writeUint64(w, uint64(len(s.byID)))
	total += n
	if err != nil {
		return total, err
	}
	s.forEach(func(m *pathMeta) bool {
		fields := []uint64{m.id, uint64(m.length)}
		if m.hasOcc {
			fields = append(fields, m.first.rank, uint64(m.first.localRank), m.last.rank, uint64(m.last.localRank))
		} else {
			fields = append(fields, 0, 0, 0, 0)
		}
		for _, f := range fields {
			nn, e := writeUint64(w, f)
			total += nn
			if e != nil {
				err = e
				return false
			}
		}
		nn, e := writeUint64(w, boolToUint64(m.hasOcc))
		total += nn
		if e != nil {
			err = e
			return false
		}
		nn, e = writeUint64(w, uint64(len(m.name)))
		total += nn
		if e != nil {
			err = e
			return false
		}
		written, e := io.WriteString(w, m.name)
		total += written
		if e != nil {
			err = e
			return false
		}
		return true
	})
	return total, err
}

func readPathMetadata(r io.Reader, s *pathMetadataStore, want uint64) error {
	count, err := readUint64(r)
	if err != nil {
		return err
	}
	if count != want {
		return fmt.Errorf("path metadata count %d does not match header count %d", count, want)
	}
	for i := uint64(0); i < count; i++ {
		id, err := readUint64(r)
		if err != nil {
			return err
		}
		length, err := readUint64(r)
		if err != nil {
			return err
		}
		firstRank, err := readUint64(r)
		if err != nil {
			return err
		}
		firstLocal, err := readUint64(r)
		if err != nil {
			return err
		}
		lastRank, err := readUint64(r)
		if err != nil {
			return err
		}
		lastLocal, err := readUint64(r)
		if err != nil {
			return err
		}
		hasOccRaw, err := readUint64(r)
		if err != nil {
			return err
		}
		nameLen, err := readUint64(r)
		if err != nil {
			return err
		}
		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return err
		}
		m := &pathMeta{
			id:     id,
			name:   string(nameBytes),
			length: int(length),
			hasOcc: hasOccRaw != 0,
			first:  Occurrence{rank: firstRank, localRank: int(firstLocal)},
			last:   Occurrence{rank: lastRank, localRank: int(lastLocal)},
		}
		s.byID[id] = m
		if id >= s.nextID {
			s.nextID = id + 1
		}
	}
	return nil
}

func writeNameToID(w io.Writer, s *pathMetadataStore) (int, error) {
	total := 0
	n, err := writeUint64(w, uint64(len(s.nameToID)))
	total += n
	if err != nil {
		return total, err
	}
	for name, id := range s.nameToID {
		nn, err := writeUint64(w, uint64(len(name)))
		total += nn
		if err != nil {
			return total, err
		}
		written, err := io.WriteString(w, name)
		total += written
		if err != nil {
			return total, err
		}
		nn, err = writeUint64(w, id)
		total += nn
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func readNameToID(r io.Reader, s *pathMetadataStore) error {
	count, err := readUint64(r)
	if err != nil {
		return err
	}
	for i := uint64(0); i < count; i++ {
		nameLen, err := readUint64(r)
		if err != nil {
			return err
		}
		nameBytes := make([]byte, nameLen)
		if _, err := io.ReadFull(r, nameBytes); err != nil {
			return err
		}
		id, err := readUint64(r)
		if err != nil {
			return err
		}
		s.nameToID[string(nameBytes)] = id
	}
	return nil
}

func boolToUint64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func writeUint64(w io.Writer, v uint64) (int, error) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return w.Write(buf[:])
}

func readUint64(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func writeUint32(w io.Writer, v uint32) (int, error) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return w.Write(buf[:])
}

func readUint32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// crc32Writer/crc32Reader mirror the teacher's pkg/graph/binary.go wrapping
// writer/reader pair that folds every byte written or read into a running
// CRC32 so the trailer covers the whole stream.
type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
