package client

import "time"

// maxBackoffSecs is the ceiling spec.md's retry schedule doubles toward:
// once reached, further attempts keep retrying at this interval rather
// than continuing to double.
const maxBackoffSecs = 300

// RetryState is an explicit, clock-driven backoff schedule: the client
// loop calls Tick(now) on every iteration rather than hiding timers
// inside a background goroutine, so the event loop remains the single
// clock driving both the logon-retry and enter-retry timers.
type RetryState struct {
	Active      bool
	NextTime    time.Time
	Attempts    int
	MaxAttempts int
	BackoffSecs float64
}

// NewRetryState builds an idle RetryState with the given attempt cap and
// initial backoff (doubled on every subsequent Tick firing).
func NewRetryState(maxAttempts int, initialBackoffSecs float64) RetryState {
	return RetryState{MaxAttempts: maxAttempts, BackoffSecs: initialBackoffSecs}
}

// Arm starts the timer counting from now, at the current backoff.
func (r *RetryState) Arm(now time.Time) {
	r.Active = true
	r.NextTime = now.Add(time.Duration(r.BackoffSecs * float64(time.Second)))
}

// Reset returns the timer to idle, as happens whenever progress is
// observed (a response arrives, a state transition completes).
func (r *RetryState) Reset(initialBackoffSecs float64) {
	r.Active = false
	r.Attempts = 0
	r.BackoffSecs = initialBackoffSecs
	r.NextTime = time.Time{}
}

// Tick advances the timer against now. It reports fire=true exactly once
// per elapsed interval, and exhausted=true once Attempts has reached
// MaxAttempts with no progress observed in between.
func (r *RetryState) Tick(now time.Time) (fire, exhausted bool) {
	if !r.Active {
		return false, false
	}
	if now.Before(r.NextTime) {
		return false, false
	}
	r.Attempts++
	if r.Attempts >= r.MaxAttempts {
		r.Active = false
		return true, true
	}
	r.BackoffSecs *= 2
	if r.BackoffSecs > maxBackoffSecs {
		r.BackoffSecs = maxBackoffSecs
	}
	r.Arm(now)
	return true, false
}
