package archive

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCompressedU32Short(t *testing.T) {
	data := []byte{0x7F}
	offset := 0
	v, err := readCompressedU32(data, &offset)
	require.NoError(t, err)
	require.Equal(t, uint32(0x7F), v)
	require.Equal(t, 1, offset)
}

func TestReadCompressedU32Medium(t *testing.T) {
	data := []byte{0x80 | 0x01, 0x23}
	offset := 0
	v, err := readCompressedU32(data, &offset)
	require.NoError(t, err)
	require.Equal(t, uint32(0x0123), v)
	require.Equal(t, 2, offset)
}

func TestReadCompressedU32Long(t *testing.T) {
	data := []byte{0xC0 | 0x01, 0x02, 0x03, 0x04}
	offset := 0
	v, err := readCompressedU32(data, &offset)
	require.NoError(t, err)
	require.Equal(t, uint32(0x01020403), v)
}

func TestAlignBoundary(t *testing.T) {
	offset := 5
	alignBoundary(&offset, 4)
	require.Equal(t, 8, offset)

	offset = 8
	alignBoundary(&offset, 4)
	require.Equal(t, 8, offset)
}

func TestDecompressLRSPassthroughShort(t *testing.T) {
	require.Equal(t, []byte{1, 2}, DecompressLRS([]byte{1, 2}))
}
