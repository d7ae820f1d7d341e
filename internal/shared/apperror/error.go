package apperror

import "fmt"

// AppError is the error type every module returns across its service
// boundary. Handlers map it straight onto the HTTP response: Code and
// Message go to the client, HTTPStatus sets the response status, and
// the wrapped Err stays server-side for the logs.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is/As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds a standalone AppError, typically a package-level sentinel
// such as ErrNodeReferenced or ErrInvalidStatusTransition.
func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        nil,
	}
}

// Wrap annotates an unexpected error (database, cache, broker) with a
// code and client-safe message. Returns nil when err is nil so it can
// sit directly on a return statement.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}
