package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/holtburger/holtburger/internal/wire"
)

func TestReassemblerOutOfOrderFragments(t *testing.T) {
	r := newReassembler(time.Minute)

	hdr := func(idx uint16) wire.FragmentHeader {
		return wire.FragmentHeader{
			MessageSequence:   7,
			MessageID:         42,
			FragmentCount:     3,
			FragmentTotalSize: 2,
			FragmentIndex:     idx,
		}
	}

	_, done := r.addFragment(hdr(2), []byte("EF"), time.Now())
	require.False(t, done)
	_, done = r.addFragment(hdr(0), []byte("AB"), time.Now())
	require.False(t, done)
	full, done := r.addFragment(hdr(1), []byte("CD"), time.Now())
	require.True(t, done)
	require.Equal(t, "ABCDEF", string(full))
	require.Equal(t, 0, r.len())
}

func TestReassemblerSweepsExpiredPartials(t *testing.T) {
	r := newReassembler(10 * time.Millisecond)
	hdr := wire.FragmentHeader{MessageSequence: 1, MessageID: 1, FragmentCount: 2, FragmentIndex: 0}

	start := time.Now()
	_, done := r.addFragment(hdr, []byte("x"), start)
	require.False(t, done)
	require.Equal(t, 1, r.len())

	dropped := r.sweep(start.Add(50 * time.Millisecond))
	require.Equal(t, 1, dropped)
	require.Equal(t, 0, r.len())
}
