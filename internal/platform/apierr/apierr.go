package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinels for the failure taxonomy. Services wrap these so callers can
// branch with errors.Is while handlers map them to HTTP statuses.
var (
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrPendingApproval       = errors.New("pending approval")
	ErrNotFound              = errors.New("not found")
	ErrValidation            = errors.New("validation error")
	ErrDuplicate             = errors.New("duplicate")
	ErrRateLimited           = errors.New("rate limit exceeded")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthenticated(reason string) *Error {
	return New(http.StatusUnauthorized, "unauthenticated", fmt.Errorf("%w: %s", ErrUnauthenticated, reason))
}

func Forbidden(reason string) *Error {
	return New(http.StatusForbidden, "forbidden", fmt.Errorf("%w: %s", ErrForbidden, reason))
}

func PendingApproval() *Error {
	return New(http.StatusForbidden, "pending_approval", fmt.Errorf("%w: awaiting manager approval", ErrPendingApproval))
}

func NotFound(entity string) *Error {
	return New(http.StatusNotFound, "not_found", fmt.Errorf("%s: %w", entity, ErrNotFound))
}

func Validation(field, reason string) *Error {
	return New(http.StatusUnprocessableEntity, "validation_error", fmt.Errorf("%w: %s: %s", ErrValidation, field, reason))
}

func Duplicate(reason string) *Error {
	return New(http.StatusConflict, "duplicate", fmt.Errorf("%w: %s", ErrDuplicate, reason))
}

func RateLimited() *Error {
	return New(http.StatusTooManyRequests, "rate_limited", ErrRateLimited)
}

func Unavailable(dependency string) *Error {
	return New(http.StatusBadGateway, "dependency_unavailable", fmt.Errorf("%s: %w", dependency, ErrDependencyUnavailable))
}

// StatusOf resolves any error to an HTTP status and machine code.
func StatusOf(err error) (int, string) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Status, ae.Code
	}
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized, "unauthenticated"
	case errors.Is(err, ErrPendingApproval):
		return http.StatusForbidden, "pending_approval"
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, "forbidden"
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, ErrDependencyUnavailable):
		return http.StatusBadGateway, "dependency_unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
