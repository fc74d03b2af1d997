package archive

import (
	"encoding/binary"
	"fmt"

	"github.com/holtburger/holtburger/internal/world"
)

// propertyStringName is PropertyString::Name from the client's property
// key table — the only string property this client looks up by name.
const propertyStringName = 1

// Weenie is a parsed weenie template: the static blueprint a DAT-stored
// object description is built from.
type Weenie struct {
	WCID       uint32
	WeenieType uint32
	Bag        world.PropertyBag
}

// UnpackWeenie parses a weenie template's 7-bucket property layout: a
// wcid, weenie type, a flags word (unused by this client), then bucket
// tables for int/int64/bool/float/string/did/iid properties, each
// prefixed by a u16 entry count.
func UnpackWeenie(data []byte) (Weenie, error) {
	if len(data) < 12 {
		return Weenie{}, fmt.Errorf("archive: truncated weenie template")
	}
	le := binary.LittleEndian
	w := Weenie{
		WCID:       le.Uint32(data[0:4]),
		WeenieType: le.Uint32(data[4:8]),
		Bag:        world.NewPropertyBag(),
	}
	offset := 12 // wcid(4) + weenie_type(4) + flags(4)

	readU16 := func() (uint16, error) {
		if offset+2 > len(data) {
			return 0, fmt.Errorf("archive: truncated weenie bucket count")
		}
		v := le.Uint16(data[offset : offset+2])
		offset += 2
		return v, nil
	}
	readU32 := func() (uint32, error) {
		if offset+4 > len(data) {
			return 0, fmt.Errorf("archive: truncated weenie field")
		}
		v := le.Uint32(data[offset : offset+4])
		offset += 4
		return v, nil
	}

	countInt, err := readU16()
	if err != nil {
		return w, err
	}
	for i := uint16(0); i < countInt; i++ {
		key, err := readU32()
		if err != nil {
			return w, err
		}
		val, err := readU32()
		if err != nil {
			return w, err
		}
		w.Bag.Ints[key] = int32(val)
	}

	countInt64, err := readU16()
	if err != nil {
		return w, err
	}
	for i := uint16(0); i < countInt64; i++ {
		key, err := readU32()
		if err != nil {
			return w, err
		}
		if offset+8 > len(data) {
			return w, fmt.Errorf("archive: truncated weenie int64 field")
		}
		val := le.Uint64(data[offset : offset+8])
		offset += 8
		w.Bag.Int64s[key] = int64(val)
	}

	countBool, err := readU16()
	if err != nil {
		return w, err
	}
	for i := uint16(0); i < countBool; i++ {
		key, err := readU32()
		if err != nil {
			return w, err
		}
		if offset+1 > len(data) {
			return w, fmt.Errorf("archive: truncated weenie bool field")
		}
		w.Bag.Bools[key] = data[offset] != 0
		offset++
	}

	countFloat, err := readU16()
	if err != nil {
		return w, err
	}
	for i := uint16(0); i < countFloat; i++ {
		key, err := readU32()
		if err != nil {
			return w, err
		}
		if offset+8 > len(data) {
			return w, fmt.Errorf("archive: truncated weenie float field")
		}
		bits := le.Uint64(data[offset : offset+8])
		offset += 8
		w.Bag.Floats[key] = floatFromBits(bits)
	}

	countString, err := readU16()
	if err != nil {
		return w, err
	}
	for i := uint16(0); i < countString; i++ {
		key, err := readU32()
		if err != nil {
			return w, err
		}
		s, err := readPString(data, &offset, 2)
		if err != nil {
			return w, err
		}
		alignBoundary(&offset, 4)
		w.Bag.Strings[key] = s
	}

	countDID, err := readU16()
	if err != nil {
		return w, err
	}
	for i := uint16(0); i < countDID; i++ {
		key, err := readU32()
		if err != nil {
			return w, err
		}
		val, err := readU32()
		if err != nil {
			return w, err
		}
		w.Bag.DIDs[key] = val
	}

	countIID, err := readU16()
	if err != nil {
		return w, err
	}
	for i := uint16(0); i < countIID; i++ {
		key, err := readU32()
		if err != nil {
			return w, err
		}
		val, err := readU32()
		if err != nil {
			return w, err
		}
		w.Bag.IIDs[key] = val
	}

	return w, nil
}
