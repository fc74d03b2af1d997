package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDupFilterFlagsRepeats(t *testing.T) {
	d := newDupFilter()
	require.False(t, d.seen(100))
	require.True(t, d.seen(100))
	require.False(t, d.seen(101))
}
