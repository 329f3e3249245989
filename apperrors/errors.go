package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the stable error classification exposed to callers. The transport
// layer maps kinds to status codes; the core never produces HTTP codes.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindInvalidReference  Kind = "invalid_reference"
	KindPermissionDenied  Kind = "permission_denied"
	KindNotFound          Kind = "not_found"
	KindInvalidStatus     Kind = "invalid_status"
	KindAlreadyTerminated Kind = "already_terminated"
	KindAlreadyInState    Kind = "already_in_state"
	KindConflict          Kind = "conflict"
)

type Error struct {
	Kind    Kind
	Reason  string // stable reason code, set for permission denials
	Message string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Denied wraps an authorization deny with its reason code.
func Denied(reason, message string) *Error {
	return &Error{Kind: KindPermissionDenied, Reason: reason, Message: message}
}

func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Message: what + " not found"}
}

// KindOf extracts the kind from any error in the chain, or "" if the error
// is not an application error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return ""
}
