// Package errors provides structured error handling for the pocketdash framework.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindRender indicates a render contract violation.
	KindRender
	// KindConstruction indicates a component was wired incorrectly.
	KindConstruction
	// KindUnknownObject indicates an attempt to remove a child or interval
	// the caller does not own.
	KindUnknownObject
	// KindInterval indicates a periodic task problem such as an overrun.
	KindInterval
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindConfig indicates invalid configuration.
	KindConfig
)

func (k ErrorKind) String() string {
	switch k {
	case KindRender:
		return "render"
	case KindConstruction:
		return "construction"
	case KindUnknownObject:
		return "unknown_object"
	case KindInterval:
		return "interval"
	case KindPanic:
		return "panic"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// FrameworkError represents a structured error reported by the framework.
type FrameworkError struct {
	// Op is the operation that failed (e.g., "core.RemoveChild").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the type name of the component involved, if any.
	Component string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *FrameworkError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *FrameworkError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "core.Interval").
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

// Sentinels for the render contract. RenderError matches them with errors.Is.
var (
	ErrNoOutput     = stderrors.New("render returned no image")
	ErrSizeMismatch = stderrors.New("render returned an image of a different size")
	ErrZeroSize     = stderrors.New("render called with a zero-size image")
)

// RenderReason is the sub-kind of a render contract violation.
type RenderReason int

const (
	// ReasonFailed means the render body returned an error.
	ReasonFailed RenderReason = iota
	// ReasonNoOutput means the render body returned a nil image.
	ReasonNoOutput
	// ReasonSizeMismatch means the output size differs from the input size.
	ReasonSizeMismatch
	// ReasonZeroSize means the input image had zero width or height.
	ReasonZeroSize
)

func (r RenderReason) String() string {
	switch r {
	case ReasonFailed:
		return "failed"
	case ReasonNoOutput:
		return "no_output"
	case ReasonSizeMismatch:
		return "size_mismatch"
	case ReasonZeroSize:
		return "zero_size"
	default:
		return fmt.Sprintf("RenderReason(%d)", int(r))
	}
}

// RenderError reports a violation of the render contract: output size must
// equal input size, always. It is fatal for the frame being drawn.
type RenderError struct {
	// Component is the type name of the component that failed.
	Component string
	// Reason identifies which part of the contract was broken.
	Reason RenderReason
	// Want is the input size as "WxH".
	Want string
	// Got is the output size as "WxH", when one was produced.
	Got string
	// Err is the underlying error for ReasonFailed.
	Err error
}

func (e *RenderError) Error() string {
	switch e.Reason {
	case ReasonNoOutput:
		return fmt.Sprintf("%s.Render(): no image returned", e.Component)
	case ReasonSizeMismatch:
		return fmt.Sprintf("%s.Render(): returned %s, want %s", e.Component, e.Got, e.Want)
	case ReasonZeroSize:
		return fmt.Sprintf("%s.Render(): zero-size input %s", e.Component, e.Want)
	default:
		return fmt.Sprintf("%s.Render(): %v", e.Component, e.Err)
	}
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Is matches the reason-specific sentinels.
func (e *RenderError) Is(target error) bool {
	switch target {
	case ErrNoOutput:
		return e.Reason == ReasonNoOutput
	case ErrSizeMismatch:
		return e.Reason == ReasonSizeMismatch
	case ErrZeroSize:
		return e.Reason == ReasonZeroSize
	}
	return false
}

// ConstructionError reports a component that was created without the wiring
// the tree requires. Continuing would corrupt ownership, so it is never
// degraded silently.
type ConstructionError struct {
	// Component is the type name of the component being created.
	Component string
	// Reason describes what was missing.
	Reason string
}

func (e *ConstructionError) Error() string {
	if e.Component == "" {
		return "construction: " + e.Reason
	}
	return fmt.Sprintf("construction of %s: %s", e.Component, e.Reason)
}

// ErrorHandler receives errors reported by the framework.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *FrameworkError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}
