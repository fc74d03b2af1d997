package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPackedU32Small(t *testing.T) {
	buf := WritePackedU32(nil, 0x1234)
	require.Equal(t, []byte{0x34, 0x12}, buf)

	v, n, err := ReadPackedU32(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0x1234), v)
	require.Equal(t, 2, n)
}

func TestPackedU32Large(t *testing.T) {
	buf := WritePackedU32(nil, 0x12345678)
	require.Equal(t, []byte{0x34, 0x92, 0x78, 0x56}, buf)

	v, n, err := ReadPackedU32(buf)
	require.NoError(t, err)
	require.Equal(t, uint32(0x12345678), v)
	require.Equal(t, 4, n)
}

func TestPackedU32RoundTrip(t *testing.T) {
	for _, v := range []uint32{0, 1, 0x7FFF, 0x8000, 0x12345678, 0xFFFFFFFF} {
		buf := WritePackedU32(nil, v)
		if v <= 0x7FFF {
			require.Len(t, buf, 2)
		} else {
			require.Len(t, buf, 4)
		}
		got, n, err := ReadPackedU32(buf)
		require.NoError(t, err)
		require.Equal(t, v, got)
		require.Equal(t, len(buf), n)
	}
}

func TestPackedU32KnownPrefix(t *testing.T) {
	val := uint32(0x06001234)
	buf := WritePackedU32Prefixed(nil, val, 0x06000000)
	require.Equal(t, []byte{0x34, 0x12}, buf)

	v, n, err := ReadPackedU32Prefixed(buf, 0x06000000)
	require.NoError(t, err)
	require.Equal(t, val, v)
	require.Equal(t, 2, n)
}

func TestString16Padding(t *testing.T) {
	buf := WriteString16(nil, "abc")
	require.Len(t, buf, 8)
	require.Equal(t, []byte{0x03, 0x00}, buf[0:2])
	require.Equal(t, "abc", string(buf[2:5]))
	require.Equal(t, []byte{0, 0, 0}, buf[5:8])

	s, n, err := ReadString16(buf)
	require.NoError(t, err)
	require.Equal(t, "abc", s)
	require.Equal(t, 8, n)
}

func TestString16PaddingProperty(t *testing.T) {
	for _, s := range []string{"", "a", "ab", "abc", "abcd", "hello world"} {
		buf := WriteString16(nil, s)
		require.Equal(t, align4(2+len(s)), len(buf))
		got, n, err := ReadString16(buf)
		require.NoError(t, err)
		require.Equal(t, s, got)
		require.Equal(t, len(buf), n)
	}
}

func TestString32Padding(t *testing.T) {
	buf := WriteString32(nil, "a")
	require.Len(t, buf, 8)
	require.Equal(t, uint32(2), leUint32(buf[0:4]))

	s, n, err := ReadString32(buf)
	require.NoError(t, err)
	require.Equal(t, "a", s)
	require.Equal(t, 8, n)
}

func TestAlignTo4(t *testing.T) {
	cases := map[int]int{0: 0, 1: 4, 2: 4, 3: 4, 4: 4, 5: 8}
	for in, want := range cases {
		require.Equal(t, want, align4(in))
	}
}

func TestHashtableHeaderRoundTrip(t *testing.T) {
	h := HashtableHeader{EntryCount: 3, BucketCount: 8}
	buf := h.Encode(nil)
	got, n, err := ReadHashtableHeader(buf)
	require.NoError(t, err)
	require.Equal(t, h, got)
	require.Equal(t, 4, n)
}

func leUint32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
