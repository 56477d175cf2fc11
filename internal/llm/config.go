package llm

import (
	"fmt"
	"time"
)

// Config holds the generation client settings.
type Config struct {
	Endpoint       string
	Model          string
	MaxAttempts    int
	InitialBackoff time.Duration
	// AttemptTimeout bounds one HTTP round trip; zero means no bound beyond ctx.
	AttemptTimeout time.Duration
}

// DefaultConfig returns the Gemini settings used by the dashboard:
// five attempts, 1s doubling backoff.
func DefaultConfig() Config {
	return Config{
		Endpoint:       "https://generativelanguage.googleapis.com/v1beta",
		Model:          "gemini-2.5-flash-preview-09-2025",
		MaxAttempts:    5,
		InitialBackoff: time.Second,
		AttemptTimeout: 30 * time.Second,
	}
}

// Validate rejects settings the client cannot run with.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("llm endpoint is required")
	}
	if c.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("llm max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.InitialBackoff < 0 {
		return fmt.Errorf("llm initial backoff must not be negative")
	}
	return nil
}

// Policy is the retry policy implied by the config.
func (c Config) Policy() RetryPolicy {
	return RetryPolicy{MaxAttempts: c.MaxAttempts, InitialBackoff: c.InitialBackoff}
}
