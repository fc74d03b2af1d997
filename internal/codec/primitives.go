// Package codec implements the variable-length wire primitives shared by
// every message type: packed integers, length-prefixed padded strings, and
// hashtable headers.
package codec

import (
	"encoding/binary"
	"errors"

	"golang.org/x/text/encoding/charmap"
)

var ErrTruncated = errors.New("codec: truncated buffer")

// ReadPackedU32 reads a variable-length u32: a u16 whose high bit, when
// clear, makes that value the result. When set, the full 4 bytes are read
// as one little-endian u32 "packed" word; the original value's low 16 bits
// live in the packed word's high 16 bits, and the original value's high 16
// bits (with the presence bit masked off) live in the packed word's low 16
// bits. Returns the value, the number of bytes consumed, and an error.
func ReadPackedU32(buf []byte) (uint32, int, error) {
	if len(buf) < 2 {
		return 0, 0, ErrTruncated
	}
	low := binary.LittleEndian.Uint16(buf[0:2])
	if low&0x8000 == 0 {
		return uint32(low), 2, nil
	}
	if len(buf) < 4 {
		return 0, 0, ErrTruncated
	}
	packed := binary.LittleEndian.Uint32(buf[0:4])
	lower := packed >> 16
	higher := (packed & 0x7FFF) << 16
	return higher | lower, 4, nil
}

// WritePackedU32 appends the packed encoding of v to buf, using the short
// (2-byte) form when v <= 0x7FFF.
func WritePackedU32(buf []byte, v uint32) []byte {
	if v <= 0x7FFF {
		var tmp [2]byte
		binary.LittleEndian.PutUint16(tmp[:], uint16(v))
		return append(buf, tmp[:]...)
	}
	var tmp [4]byte
	low := uint16(0x8000 | (v >> 16))
	high := uint16(v & 0xFFFF)
	binary.LittleEndian.PutUint16(tmp[0:2], low)
	binary.LittleEndian.PutUint16(tmp[2:4], high)
	return append(buf, tmp[:]...)
}

// ReadPackedU32Prefixed reads a packed u32 that may implicitly carry a
// known prefix in its short (2-byte) form, as used for ids that
// conventionally share a known high bitmask (e.g. texture ids under
// 0x06000000). If the value was read in short form, prefix is ORed in;
// values read in long form carry their own full bits already.
func ReadPackedU32Prefixed(buf []byte, prefix uint32) (uint32, int, error) {
	v, n, err := ReadPackedU32(buf)
	if err != nil {
		return 0, 0, err
	}
	if n == 2 {
		v |= prefix
	}
	return v, n, nil
}

// WritePackedU32Prefixed writes v using the short form with prefix
// subtracted out when v carries exactly that prefix, saving two bytes on
// the wire; otherwise it falls back to the ordinary packed encoding.
func WritePackedU32Prefixed(buf []byte, v uint32, prefix uint32) []byte {
	if prefix != 0 && v&prefix == prefix && v-prefix <= 0x7FFF {
		return WritePackedU32(buf, v-prefix)
	}
	return WritePackedU32(buf, v)
}

func align4(n int) int {
	return (n + 3) &^ 3
}

var win1252Decoder = charmap.Windows1252.NewDecoder()
var win1252Encoder = charmap.Windows1252.NewEncoder()

// ReadString16 reads a u16-length-prefixed Windows-1252 string, padded so
// the whole field (including the 2-byte length word) is a multiple of 4.
func ReadString16(buf []byte) (string, int, error) {
	if len(buf) < 2 {
		return "", 0, ErrTruncated
	}
	n := int(binary.LittleEndian.Uint16(buf[0:2]))
	total := align4(2 + n)
	if len(buf) < total {
		return "", 0, ErrTruncated
	}
	raw := buf[2 : 2+n]
	s, err := win1252Decoder.String(string(raw))
	if err != nil {
		return "", 0, err
	}
	return s, total, nil
}

// WriteString16 appends a String16-encoded field to buf.
func WriteString16(buf []byte, s string) []byte {
	enc, err := win1252Encoder.String(s)
	if err != nil {
		enc = s
	}
	n := len(enc)
	total := align4(2 + n)
	out := make([]byte, total)
	binary.LittleEndian.PutUint16(out[0:2], uint16(n))
	copy(out[2:2+n], enc)
	return append(buf, out...)
}

// ReadString32 reads a u32-total-length, u8-inner-length prefixed string,
// padded to a multiple of 4.
func ReadString32(buf []byte) (string, int, error) {
	if len(buf) < 5 {
		return "", 0, ErrTruncated
	}
	dataLen := int(binary.LittleEndian.Uint32(buf[0:4]))
	innerLen := int(buf[4])
	total := align4(4 + dataLen)
	if len(buf) < total {
		return "", 0, ErrTruncated
	}
	if 1+innerLen > dataLen {
		return "", 0, ErrTruncated
	}
	raw := buf[5 : 5+innerLen]
	s, err := win1252Decoder.String(string(raw))
	if err != nil {
		return "", 0, err
	}
	return s, total, nil
}

// WriteString32 appends a String32-encoded field to buf.
func WriteString32(buf []byte, s string) []byte {
	enc, err := win1252Encoder.String(s)
	if err != nil {
		enc = s
	}
	innerLen := len(enc)
	dataLen := 1 + innerLen
	total := align4(4 + dataLen)
	out := make([]byte, total)
	binary.LittleEndian.PutUint32(out[0:4], uint32(dataLen))
	out[4] = byte(innerLen)
	copy(out[5:5+innerLen], enc)
	return append(buf, out...)
}

// HashtableHeader is the u16-entry-count, u16-bucket-count prefix of a
// hashtable-encoded property bag. Bucket count is informational only; the
// entries that follow are always a flat list.
type HashtableHeader struct {
	EntryCount  uint16
	BucketCount uint16
}

func ReadHashtableHeader(buf []byte) (HashtableHeader, int, error) {
	if len(buf) < 4 {
		return HashtableHeader{}, 0, ErrTruncated
	}
	return HashtableHeader{
		EntryCount:  binary.LittleEndian.Uint16(buf[0:2]),
		BucketCount: binary.LittleEndian.Uint16(buf[2:4]),
	}, 4, nil
}

func (h HashtableHeader) Encode(buf []byte) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint16(tmp[0:2], h.EntryCount)
	binary.LittleEndian.PutUint16(tmp[2:4], h.BucketCount)
	return append(buf, tmp[:]...)
}

// AlignBoundary returns the number of padding bytes needed after n bytes to
// reach a 4-byte boundary.
func AlignBoundary(n int) int {
	return align4(n) - n
}
