package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRetryStateSchedulesExpectedBackoffs(t *testing.T) {
	now := time.Unix(0, 0)
	r := NewRetryState(6, 5)
	r.Arm(now)

	wantBackoffs := []float64{5, 10, 20, 40, 80, 160}
	for i, want := range wantBackoffs {
		now = now.Add(time.Duration(want) * time.Second)
		fire, exhausted := r.Tick(now)
		require.True(t, fire, "attempt %d should fire", i+1)
		if i == len(wantBackoffs)-1 {
			require.True(t, exhausted)
		} else {
			require.False(t, exhausted)
		}
	}
	require.Equal(t, 6, r.Attempts)
	require.False(t, r.Active)
}

func TestRetryStateResetReturnsToIdle(t *testing.T) {
	r := NewRetryState(6, 5)
	r.Arm(time.Unix(0, 0))
	r.Attempts = 3
	r.Reset(5)
	require.False(t, r.Active)
	require.Equal(t, 0, r.Attempts)
	require.Equal(t, 5.0, r.BackoffSecs)
}

func TestRetryStateDoesNotFireBeforeDeadline(t *testing.T) {
	now := time.Unix(0, 0)
	r := NewRetryState(6, 5)
	r.Arm(now)
	fire, _ := r.Tick(now.Add(1 * time.Second))
	require.False(t, fire)
}
