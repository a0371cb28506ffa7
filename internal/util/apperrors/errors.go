package apperrors

import (
	"errors"
	"net/http"
)

type Kind string

const (
	KindNotFound           Kind = "NOT_FOUND"
	KindAccessDenied       Kind = "ACCESS_DENIED"
	KindValidation         Kind = "VALIDATION_ERROR"
	KindInvariantViolation Kind = "INVARIANT_VIOLATION"
)

// Error is a request-level failure that is recovered at the HTTP boundary
// and turned into a user-visible message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func AccessDenied(message string) error {
	return &Error{Kind: KindAccessDenied, Message: message}
}

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func InvariantViolation(message string) error {
	return &Error{Kind: KindInvariantViolation, Message: message}
}

func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}

	return "", false
}

func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

func HTTPStatus(err error) int {
	kind, ok := KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}

	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindAccessDenied:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindInvariantViolation:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
