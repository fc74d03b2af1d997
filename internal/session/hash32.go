package session

import "encoding/binary"

// Hash32 computes the packet checksum: the length seeds the high 16 bits
// of the accumulator, complete little-endian u32 chunks are wrapping-added
// in, and any 1-3 trailing bytes are packed most-significant-byte-first
// into a final partial word.
func Hash32(data []byte) uint32 {
	length := len(data)
	checksum := uint32(length) << 16
	i := 0
	for i+4 <= length {
		chunk := binary.LittleEndian.Uint32(data[i : i+4])
		checksum += chunk
		i += 4
	}
	shift := 3
	for i < length {
		checksum += uint32(data[i]) << uint(8*shift)
		i++
		shift--
	}
	return checksum
}
