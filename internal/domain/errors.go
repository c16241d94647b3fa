package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrQuotaExceeded = errors.New("quota exceeded")
)

// GenerationError reports a failure of the generation service. RateLimited
// distinguishes provider quota exhaustion (surfaced as 429 with backoff
// advice) from a generic outage.
type GenerationError struct {
	RateLimited bool
	Err         error
}

func (e *GenerationError) Error() string {
	if e.RateLimited {
		return "generation rate limited"
	}
	if e.Err != nil {
		return fmt.Sprintf("generation failed: %v", e.Err)
	}
	return "generation failed"
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// MalformedOutputError reports generated text that could not be normalized
// into structured records. Raw carries the model output for diagnostics.
type MalformedOutputError struct {
	Raw string
}

func (e *MalformedOutputError) Error() string {
	return "model output was not valid JSON"
}
