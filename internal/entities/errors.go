package entities

import (
	"errors"
)

// Виды ошибок, общие для всех компонентов консоли.
// Проверяются через errors.Is, конкретная ошибка несет сообщение для пользователя.
var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidCode         = errors.New("invalid pickup code")
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrTooFar              = errors.New("too far from destination")
	ErrRemote              = errors.New("remote error")
	ErrLocationUnavailable = errors.New("location unavailable")
)

type Error struct {
	Kind    error
	Message string
	Err     error
}

func NewError(kind error, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

func ValidationError(message string) *Error {
	return NewError(ErrValidation, message, nil)
}

func InvalidCodeError(message string) *Error {
	return NewError(ErrInvalidCode, message, nil)
}

func UnauthenticatedError() *Error {
	return NewError(ErrUnauthenticated, "Please log in again", nil)
}

func TooFarError(message string) *Error {
	return NewError(ErrTooFar, message, nil)
}

func RemoteError(message string, cause error) *Error {
	return NewError(ErrRemote, message, cause)
}

func LocationUnavailableError(cause error) *Error {
	return NewError(ErrLocationUnavailable, "Location unavailable", cause)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.Error() + ": " + e.Message + ": " + e.Err.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage достает сообщение, которое можно показать пользователю.
// Для ошибок вне таксономии возвращает fallback.
func UserMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
