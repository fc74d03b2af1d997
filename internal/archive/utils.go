package archive

import (
	"fmt"
	"math"

	"golang.org/x/text/encoding/charmap"
)

func floatFromBits(bits uint64) float64 { return math.Float64frombits(bits) }

var win1252Decoder = charmap.Windows1252.NewDecoder()

// readPString reads a length-prefixed, Windows-1252 encoded string from
// data at offset. sizeOfLength selects the width of the length prefix
// (1, 2, or 4 bytes); no trailing padding is consumed, matching the
// in-memory weenie/landblock template formats (as opposed to the
// wire-level String16/String32 forms, which do pad).
func readPString(data []byte, offset *int, sizeOfLength int) (string, error) {
	var length int
	switch sizeOfLength {
	case 1:
		if *offset+1 > len(data) {
			return "", fmt.Errorf("archive: truncated pstring length")
		}
		length = int(data[*offset])
		*offset++
	case 2:
		if *offset+2 > len(data) {
			return "", fmt.Errorf("archive: truncated pstring length")
		}
		length = int(data[*offset]) | int(data[*offset+1])<<8
		*offset += 2
	case 4:
		if *offset+4 > len(data) {
			return "", fmt.Errorf("archive: truncated pstring length")
		}
		length = int(data[*offset]) | int(data[*offset+1])<<8 | int(data[*offset+2])<<16 | int(data[*offset+3])<<24
		*offset += 4
	default:
		return "", fmt.Errorf("archive: unsupported pstring length size %d", sizeOfLength)
	}

	if *offset+length > len(data) {
		return "", fmt.Errorf("archive: truncated pstring body")
	}
	raw := data[*offset : *offset+length]
	*offset += length

	decoded, err := win1252Decoder.Bytes(raw)
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}

// alignBoundary advances *offset to the next multiple of boundary.
func alignBoundary(offset *int, boundary int) {
	delta := *offset % boundary
	if delta != 0 {
		*offset += boundary - delta
	}
}

// readCompressedU32 decodes the DAT format's variable-width integer: a
// 1, 2, or 4 byte encoding selected by the top two bits of the first
// byte. It is not wired into any DAT field this client reads today, but
// is kept and tested since several DAT table formats the client does
// not yet parse use it.
func readCompressedU32(data []byte, offset *int) (uint32, error) {
	if *offset+1 > len(data) {
		return 0, fmt.Errorf("archive: truncated compressed u32")
	}
	b0 := data[*offset]
	*offset++
	if b0&0x80 == 0 {
		return uint32(b0), nil
	}

	if *offset+1 > len(data) {
		return 0, fmt.Errorf("archive: truncated compressed u32")
	}
	b1 := data[*offset]
	*offset++
	if b0&0x40 == 0 {
		return (uint32(b0&0x7F) << 8) | uint32(b1), nil
	}

	if *offset+2 > len(data) {
		return 0, fmt.Errorf("archive: truncated compressed u32")
	}
	s := uint32(data[*offset]) | uint32(data[*offset+1])<<8
	*offset += 2
	return (((uint32(b0&0x3F) << 8) | uint32(b1)) << 16) | s, nil
}
