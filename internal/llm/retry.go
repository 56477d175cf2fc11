package llm

import (
	"context"
	"time"
)

// RetryPolicy is fixed exponential backoff without jitter: the wait after
// failed attempt n is InitialBackoff * 2^(n-1).
type RetryPolicy struct {
	MaxAttempts    int
	InitialBackoff time.Duration
}

// Backoff returns the wait after the given failed attempt (1-based).
func (p RetryPolicy) Backoff(failedAttempt int) time.Duration {
	if failedAttempt < 1 {
		return 0
	}
	return p.InitialBackoff << (failedAttempt - 1)
}

// RetryPhase is the state of a retry loop.
type RetryPhase int

const (
	Attempting RetryPhase = iota
	Succeeded
	Failed
)

func (p RetryPhase) String() string {
	switch p {
	case Attempting:
		return "attempting"
	case Succeeded:
		return "succeeded"
	default:
		return "failed"
	}
}

// RetryState is one point of the loop. While Attempting, Attempt is the
// number of the attempt about to run and Delay the wait before it.
type RetryState struct {
	Phase   RetryPhase
	Attempt int
	Delay   time.Duration
	Err     error
}

// StartRetry is the state before the first attempt.
func StartRetry() RetryState {
	return RetryState{Phase: Attempting, Attempt: 1}
}

// Step folds the outcome of the current attempt into the next state.
// Terminal states are returned unchanged.
func Step(s RetryState, p RetryPolicy, attemptErr error) RetryState {
	if s.Phase != Attempting {
		return s
	}
	if attemptErr == nil {
		return RetryState{Phase: Succeeded, Attempt: s.Attempt}
	}
	if s.Attempt >= p.MaxAttempts {
		return RetryState{Phase: Failed, Attempt: s.Attempt, Err: attemptErr}
	}
	return RetryState{
		Phase:   Attempting,
		Attempt: s.Attempt + 1,
		Delay:   p.Backoff(s.Attempt),
		Err:     attemptErr,
	}
}

// Sleeper waits for d or until ctx is done.
type Sleeper func(ctx context.Context, d time.Duration) error

// TimerSleep is the production Sleeper.
func TimerSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
