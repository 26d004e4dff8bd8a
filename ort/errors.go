package ort

import (
	"errors"
	"fmt"
)

// ErrorKind classifies which part of the binding an operation failed in.
type ErrorKind int

const (
	KindConfiguration ErrorKind = iota
	KindPath
	KindEnvironment
	KindSessionOptions
	KindSession
	KindAllocator
	KindMetadata
	KindInference
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindPath:
		return "path"
	case KindEnvironment:
		return "environment"
	case KindSessionOptions:
		return "session options"
	case KindSession:
		return "session"
	case KindAllocator:
		return "allocator"
	case KindMetadata:
		return "metadata"
	case KindInference:
		return "inference"
	default:
		return "unknown"
	}
}

var (
	// ErrFileNotFound indicates the model path does not exist on disk.
	ErrFileNotFound = errors.New("model file does not exist")
	// ErrUnrepresentablePath indicates the model path cannot be encoded
	// as the null-terminated string the native ABI requires.
	ErrUnrepresentablePath = errors.New("model path is not representable in the native encoding")
	// ErrNotSupported indicates a declared-but-unsupported configuration
	// knob (advanced session options, CUDA) was requested.
	ErrNotSupported = errors.New("not yet supported")
)

// Error is the structured error returned to callers for every recoverable
// failure. Kind identifies the failing stage, Op the native call or
// operation, and Err the underlying cause (a *StatusError for native
// failures, a sentinel for local validation).
type Error struct {
	Kind ErrorKind
	Op   string
	Path string // set for KindPath errors
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s error in %s (%s): %v", e.Kind, e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s error in %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// StatusError carries the native diagnostic attached to a non-success
// status handle. The handle itself is released before this value is built;
// callers never see a raw status.
type StatusError struct {
	Op      string
	Code    ErrorCode
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: %s (%s)", e.Op, e.Message, e.Code)
}

// TypeMismatchError is returned by Extract when the requested element type
// does not match the tensor's declared element type. It is the one expected,
// frequently-recovered-from error: callers branch on ElementType and retry.
type TypeMismatchError struct {
	Actual    TensorElementDataType
	Requested TensorElementDataType
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("data type mismatch: tensor holds %s, requested %s", e.Actual, e.Requested)
}

// contractViolation reports a broken assumption about the native ABI, such
// as a success status paired with a null out-handle. Continuing would
// propagate undefined behavior, so this is an abort, not an error return.
func contractViolation(op, detail string) {
	panic(fmt.Sprintf("ort: native contract violation in %s: %s", op, detail))
}
