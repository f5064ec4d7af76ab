package graph

import (
	"encoding/binary"
	"math"
	"unsafe"
)

// nativeLittleEndian reports whether the host's native byte order matches
// the wire format (little-endian). The fixed-endianness binary format
// requires byte-swapping reads on big-endian hosts, per the design notes;
// everywhere else we take the zero-copy unsafe-cast fast path.
var nativeLittleEndian = func() bool {
	var x uint16 = 1
	b := (*[2]byte)(unsafe.Pointer(&x))
	return b[0] == 1
}()

func decodeInt64Slice(buf []byte, n int) []int64 {
	if n == 0 {
		return nil
	}
	if nativeLittleEndian {
		return unsafe.Slice((*int64)(unsafe.Pointer(&buf[0])), n)
	}
	out := make([]int64, n)
	for i := 0; i < n; i++ {
		out[i] = int64(binary.LittleEndian.Uint64(buf[i*8 : i*8+8]))
	}
	return out
}

func decodeFloat32Slice(buf []byte, n int) []float32 {
	if n == 0 {
		return nil
	}
	if nativeLittleEndian {
		return unsafe.Slice((*float32)(unsafe.Pointer(&buf[0])), n)
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}
	return out
}

func decodeInt32Slice(buf []byte, n int) []int32 {
	if n == 0 {
		return nil
	}
	if nativeLittleEndian {
		return unsafe.Slice((*int32)(unsafe.Pointer(&buf[0])), n)
	}
	out := make([]int32, n)
	for i := 0; i < n; i++ {
		out[i] = int32(binary.LittleEndian.Uint32(buf[i*4 : i*4+4]))
	}
	return out
}

func decodeUint16Slice(buf []byte, n int) []uint16 {
	if n == 0 {
		return nil
	}
	if nativeLittleEndian {
		return unsafe.Slice((*uint16)(unsafe.Pointer(&buf[0])), n)
	}
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = binary.LittleEndian.Uint16(buf[i*2 : i*2+2])
	}
	return out
}
