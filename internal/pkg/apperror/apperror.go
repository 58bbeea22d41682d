package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies an error into one of the categories the transport
// layers map onto status codes and websocket frames.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
	KindServiceDegraded
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	case KindServiceDegraded:
		return "SERVICE_DEGRADED"
	default:
		return "INTERNAL_ERROR"
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func InvalidInput(message string, err error) *AppError {
	return Wrap(KindInvalidInput, message, err)
}

func NotFound(message string, err error) *AppError {
	return Wrap(KindNotFound, message, err)
}

func Conflict(message string, err error) *AppError {
	return Wrap(KindConflict, message, err)
}

// ServiceDegraded marks failures of an external dependency (LLM, STT,
// TTS, cache) where retrying later may succeed.
func ServiceDegraded(message string, err error) *AppError {
	return Wrap(KindServiceDegraded, message, err)
}

func Internal(message string, err error) *AppError {
	return Wrap(KindInternal, message, err)
}

// KindOf extracts the Kind from any error in the chain, defaulting
// to KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
