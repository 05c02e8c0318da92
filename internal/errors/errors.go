package errors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindUnauthorized
	KindNotFound
	KindUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindUnavailable:
		return "unavailable"
	default:
		return "internal"
	}
}

// Error is a classified domain error. Message is safe to show to clients;
// Err carries the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error

	// public marks internal errors whose message may be shown as is.
	public bool
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two *Error values of the same kind and message so that
// sentinels keep working after Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func newError(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

// Validation returns a 400 error with the given message.
func Validation(msg string) *Error { return newError(KindValidation, msg) }

// Conflict returns a uniqueness/referential error.
func Conflict(msg string) *Error { return newError(KindConflict, msg) }

// NotFound returns a missing-resource error.
func NotFound(msg string) *Error { return newError(KindNotFound, msg) }

// Internal wraps an unexpected failure. The cause is never sent to clients.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// Wrap attaches a cause to a sentinel, keeping its kind and message.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Message: sentinel.Message, Err: err, public: sentinel.public}
}

// KindOf reports the kind of err, or KindInternal if it is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

var (
	ErrInvalidCredentials     = newError(KindUnauthorized, "Invalid credentials")
	ErrUnauthorized           = newError(KindUnauthorized, "Unauthorized")
	ErrUserExists             = Conflict("Username or email already exists")
	ErrUserNotFound           = NotFound("User not found")
	ErrEmployeeNotFound       = NotFound("Employee not found")
	ErrEmailExists            = Conflict("Email already exists")
	ErrDepartmentNotFound     = NotFound("Department not found")
	ErrDepartmentExists       = Conflict("Department code already exists")
	ErrDepartmentHasEmployees = Conflict("Cannot delete department that has employees assigned to it")
	ErrDatabaseInitializing   = newError(KindUnavailable, "Database is initializing, please try again in a moment")
	ErrLogoutFailed           = &Error{Kind: KindInternal, Message: "Logout failed", public: true}
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Conflicts are reported
// as 400, which is what existing clients expect.
func MapErrorToHTTP(err error) *HTTPError {
	var e *Error
	if !errors.As(err, &e) {
		return NewHTTPError(http.StatusInternalServerError, "Server error", "INTERNAL_ERROR")
	}
	switch e.Kind {
	case KindValidation:
		return NewHTTPError(http.StatusBadRequest, e.Message, "VALIDATION_ERROR")
	case KindConflict:
		return NewHTTPError(http.StatusBadRequest, e.Message, "CONFLICT")
	case KindUnauthorized:
		return NewHTTPError(http.StatusUnauthorized, e.Message, "UNAUTHORIZED")
	case KindNotFound:
		return NewHTTPError(http.StatusNotFound, e.Message, "NOT_FOUND")
	case KindUnavailable:
		return NewHTTPError(http.StatusServiceUnavailable, e.Message, "SERVICE_UNAVAILABLE")
	default:
		if e.public {
			return NewHTTPError(http.StatusInternalServerError, e.Message, "INTERNAL_ERROR")
		}
		return NewHTTPError(http.StatusInternalServerError, "Server error", "INTERNAL_ERROR")
	}
}
