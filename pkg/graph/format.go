package graph

import "encoding/binary"

const (
	magicBytes = "CSRG"
	headerSize = 32

	versionWithEdgeMeta = 2
	minSupportedVersion = 1
	maxSupportedVersion = 2
)

// header mirrors the fixed 32-byte CSRG header: 4-byte magic, u32 version,
// u32 node count, u32 directed edge count, 16 reserved bytes.
type header struct {
	version          uint32
	numNodes         uint32
	numDirectedEdges uint32
}

func parseHeader(buf []byte) (header, error) {
	if len(buf) < headerSize {
		return header{}, newLoadError(TooSmall, "file is %d bytes, need at least %d for the header", len(buf), headerSize)
	}
	if string(buf[0:4]) != magicBytes {
		return header{}, newLoadError(BadMagic, "expected magic %q, got %q", magicBytes, buf[0:4])
	}
	version := binary.LittleEndian.Uint32(buf[4:8])
	if version < minSupportedVersion || version > maxSupportedVersion {
		return header{}, newLoadError(UnsupportedVersion, "version %d is outside supported range [%d,%d]", version, minSupportedVersion, maxSupportedVersion)
	}
	numNodes := binary.LittleEndian.Uint32(buf[8:12])
	numDirectedEdges := binary.LittleEndian.Uint32(buf[12:16])

	return header{
		version:          version,
		numNodes:         numNodes,
		numDirectedEdges: numDirectedEdges,
	}, nil
}

// sectionLayout records the byte range of every section in the file,
// computed once at load time from the header's node/edge counts.
type sectionLayout struct {
	nodeIDs        [2]int
	nodeLats       [2]int
	nodeLons       [2]int
	adjOffsets     [2]int
	adjTargets     [2]int
	adjWeights     [2]int
	edgeNameIdx    [2]int
	edgeHighwayIdx [2]int
	nameTable      [2]int
	hwyTable       [2]int
}

// computeLayout walks buf section by section, validating that each one fits
// before advancing. For v2 files the two string tables are length-prefixed
// and self-describing, so their end offset comes from decoding them rather
// than from the header.
func computeLayout(h header, buf []byte) (sectionLayout, error) {
	n := int(h.numNodes)
	e := int(h.numDirectedEdges)
	fileLen := len(buf)

	var l sectionLayout
	off := headerSize

	take := func(size int) ([2]int, error) {
		start := off
		end := off + size
		if end > fileLen {
			return [2]int{}, newLoadError(Truncated, "section at offset %d needs %d bytes but file has %d remaining", start, size, fileLen-start)
		}
		off = end
		return [2]int{start, end}, nil
	}

	var err error
	if l.nodeIDs, err = take(8 * n); err != nil {
		return l, err
	}
	if l.nodeLats, err = take(4 * n); err != nil {
		return l, err
	}
	if l.nodeLons, err = take(4 * n); err != nil {
		return l, err
	}
	if l.adjOffsets, err = take(4 * (n + 1)); err != nil {
		return l, err
	}
	if l.adjTargets, err = take(4 * e); err != nil {
		return l, err
	}
	if l.adjWeights, err = take(4 * e); err != nil {
		return l, err
	}

	if h.version >= versionWithEdgeMeta {
		if l.edgeNameIdx, err = take(2 * e); err != nil {
			return l, err
		}
		if l.edgeHighwayIdx, err = take(1 * e); err != nil {
			return l, err
		}

		nameStart := off
		_, nameConsumed, err := decodeStringTable(buf[nameStart:])
		if err != nil {
			return l, err
		}
		l.nameTable = [2]int{nameStart, nameStart + nameConsumed}
		off = l.nameTable[1]

		hwyStart := off
		_, hwyConsumed, err := decodeStringTable(buf[hwyStart:])
		if err != nil {
			return l, err
		}
		l.hwyTable = [2]int{hwyStart, hwyStart + hwyConsumed}
		off = l.hwyTable[1]
	}

	return l, nil
}
