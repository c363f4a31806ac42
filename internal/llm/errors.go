package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrorKind classifies advisor failures. Every kind is recoverable: the
// caller falls back to builtin content and reports a non-blocking notice.
type ErrorKind int

const (
	Unavailable ErrorKind = iota
	Timeout
	MalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case Unavailable:
		return "unavailable"
	case Timeout:
		return "timeout"
	case MalformedResponse:
		return "malformed_response"
	}
	return "unknown"
}

// AIError wraps any failure crossing the advisor boundary.
type AIError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *AIError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("ai advisor: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("ai advisor: %s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *AIError) Unwrap() error { return e.Err }

// KindOf extracts the error kind; non-advisor errors count as Unavailable.
func KindOf(err error) ErrorKind {
	var aiErr *AIError
	if errors.As(err, &aiErr) {
		return aiErr.Kind
	}
	return Unavailable
}

func classify(op string, err error) *AIError {
	kind := Unavailable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = Timeout
	}
	return &AIError{Kind: kind, Op: op, Err: err}
}

func malformed(op string, err error) *AIError {
	return &AIError{Kind: MalformedResponse, Op: op, Err: err}
}

func unavailable(op string) *AIError {
	return &AIError{Kind: Unavailable, Op: op, Err: errors.New("advisor not configured")}
}
