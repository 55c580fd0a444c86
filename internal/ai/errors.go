package ai

import (
	"errors"
	"fmt"
)

// Sentinel errors for model API operations.
var (
	ErrUnauthorized      = errors.New("ai: invalid or missing API key")
	ErrRateLimited       = errors.New("ai: rate limited by provider")
	ErrBadRequest        = errors.New("ai: bad request")
	ErrServer            = errors.New("ai: provider server error")
	ErrEmptyCompletion   = errors.New("ai: model returned an empty completion")
	ErrMalformedAnalysis = errors.New("ai: sentiment analysis was not valid JSON")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op  string // Operation: "caption", "story", "sentiment", "title"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("ai %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op string, err error) error {
	return &Error{Op: op, Err: err}
}
