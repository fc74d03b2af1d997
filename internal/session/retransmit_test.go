package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRetransmitBufferEvictThrough(t *testing.T) {
	b := newRetransmitBuffer()
	b.store(1, []byte("one"))
	b.store(2, []byte("two"))
	b.store(3, []byte("three"))

	b.evictThrough(2)
	require.Equal(t, 1, b.len())
	_, ok := b.get(3)
	require.True(t, ok)
	_, ok = b.get(1)
	require.False(t, ok)
}

func TestRetransmitBufferEvictSingle(t *testing.T) {
	b := newRetransmitBuffer()
	b.store(5, []byte("five"))
	b.evict(5)
	_, ok := b.get(5)
	require.False(t, ok)
}
