package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash32Distinct(t *testing.T) {
	d1 := []byte("abc")
	d2 := []byte("abcd")
	d3 := []byte("abcde")

	require.NotEqual(t, Hash32(d1), Hash32(d2))
	require.NotEqual(t, Hash32(d2), Hash32(d3))
}

func TestHash32Empty(t *testing.T) {
	require.Equal(t, uint32(0), Hash32(nil))
}

func TestHash32NonZero(t *testing.T) {
	require.NotEqual(t, uint32(0), Hash32([]byte("hello world")))
}

func TestIsaacDeterministic(t *testing.T) {
	a := NewIsaac(0x12345678)
	first := a.Next()
	second := a.Next()
	require.NotEqual(t, first, second)

	b := NewIsaac(0x12345678)
	require.Equal(t, first, b.Next())
	require.Equal(t, second, b.Next())
}
