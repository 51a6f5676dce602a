// Package apperror holds the client's error taxonomy. Callers match kinds
// with errors.Is and read the user-facing text from *AppError.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrAuth            = errors.New("authentication failed")
	ErrEdit            = errors.New("edit rejected")
	ErrDuplicateLogin  = errors.New("login already exists")
	ErrNotFound        = errors.New("not found")
	ErrNetwork         = errors.New("network error")
	ErrUnauthenticated = errors.New("not signed in")
)

type AppError struct {
	Err     error  // kind, one of the sentinels above
	Message string // human-readable, usually from the server
	Cause   error  // underlying transport error, may be nil
}

func (e *AppError) Error() string {
	if e.Message == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Message)
}

func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func Auth(message string, cause error) *AppError {
	return &AppError{Err: ErrAuth, Message: message, Cause: cause}
}

func Edit(message string, cause error) *AppError {
	return &AppError{Err: ErrEdit, Message: message, Cause: cause}
}

func DuplicateLogin(login string, cause error) *AppError {
	return &AppError{Err: ErrDuplicateLogin, Message: login, Cause: cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{Err: ErrNotFound, Message: fmt.Sprintf("%s %s", resource, id)}
}

func Network(cause error) *AppError {
	return &AppError{Err: ErrNetwork, Cause: cause}
}

func Unauthenticated(action string) *AppError {
	return &AppError{Err: ErrUnauthenticated, Message: action}
}

// UserMessage returns the text to show for err.
func UserMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}
