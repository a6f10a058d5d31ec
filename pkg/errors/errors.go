// Package errors provides structured error reporting for the preview engine.
//
// Nothing in the engine propagates a failure to the host application: image
// load failures, malformed input and recovered panics are reported here and
// the overlay keeps running.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindInput indicates a malformed or out-of-order input event.
	KindInput
	// KindLoad indicates an image that failed to load.
	KindLoad
	// KindLifecycle indicates a mount, unmount or close sequencing failure.
	KindLifecycle
	// KindConfig indicates an invalid tuning or launch configuration.
	KindConfig
	// KindPanic indicates a recovered panic.
	KindPanic
)

func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindLoad:
		return "load"
	case KindLifecycle:
		return "lifecycle"
	case KindConfig:
		return "config"
	case KindPanic:
		return "panic"
	default:
		return "unknown"
	}
}

// PreviewError represents a structured, non-fatal error in the preview engine.
type PreviewError struct {
	// Op is the operation that failed (e.g., "preview.ImageFailed").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// Item identifies the displayable involved, if any.
	Item string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *PreviewError) Error() string {
	if e.Item != "" {
		return fmt.Sprintf("%s [%s] item=%s: %v", e.Op, e.Kind, e.Item, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *PreviewError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "preview.HandlePointer").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// ErrorHandler receives errors reported by the preview engine.
type ErrorHandler interface {
	// HandleError is called when a non-fatal error occurs.
	HandleError(err *PreviewError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
