package recipeclip

import (
	"errors"
	"fmt"
)

// Application error codes. These are not HTTP status codes; they describe
// error conditions in domain terms so callers can branch without string
// matching.
const (
	EINVALID     = "invalid"     // validation failed
	ENOTFOUND    = "not_found"   // entity does not exist
	ETIMEOUT     = "timeout"     // operation exceeded its deadline
	EUNAVAILABLE = "unavailable" // external collaborator not configured or unreachable
	EINTERNAL    = "internal"    // internal error
)

// Error represents an application-specific error. Application errors carry
// a machine-readable code and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface. Not used by the application itself
// other than for logging; use ErrorCode and ErrorMessage instead.
func (e *Error) Error() string {
	return fmt.Sprintf("recipeclip error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error"
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
