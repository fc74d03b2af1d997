package archive

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildWeenieFixture(name string) []byte {
	var data []byte
	appendU32 := func(v uint32) {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		data = append(data, b...)
	}
	appendU16 := func(v uint16) {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, v)
		data = append(data, b...)
	}

	appendU32(0x12345678) // wcid
	appendU32(1)          // weenie_type
	appendU32(0)          // flags

	appendU16(0) // int bucket count
	appendU16(0) // int64 bucket count
	appendU16(0) // bool bucket count
	appendU16(0) // float bucket count

	appendU16(1) // string bucket count
	appendU32(propertyStringName)
	appendU16(uint16(len(name)))
	data = append(data, []byte(name)...)
	for len(data)%4 != 0 {
		data = append(data, 0)
	}

	appendU16(0) // did bucket count
	appendU16(0) // iid bucket count
	return data
}

func TestUnpackWeenie(t *testing.T) {
	data := buildWeenieFixture("Rabbit")
	w, err := UnpackWeenie(data)
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345678), w.WCID)
	require.Equal(t, "Rabbit", w.Bag.Strings[propertyStringName])
}
