package code

import "errors"

// Error is a client-facing failure carrying a code and a message
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Status returns the HTTP status for the error code
func (e *Error) Status() int {
	return GetStatus(e.Code)
}

// New returns an Error with a custom message
func New(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// From returns an Error using the default message of code
func From(code int) *Error {
	return &Error{Code: code, Message: GetMessage(code)}
}

// As extracts an *Error from err
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err carries the given code
func Is(err error, code int) bool {
	e, ok := As(err)
	return ok && e.Code == code
}
