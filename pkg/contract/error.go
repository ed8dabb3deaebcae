package contract

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorCode classifies a failure independently of the transport. The fiber
// layer maps codes to HTTP statuses; services and stores only deal in codes.
type ErrorCode string

const (
	ErrorCodeBadRequest            ErrorCode = "BAD_REQUEST"
	ErrorCodeInvalidParameterValue ErrorCode = "INVALID_PARAMETER_VALUE"
	ErrorCodeResourceDoesNotExist  ErrorCode = "RESOURCE_DOES_NOT_EXIST"
	ErrorCodeInternalError         ErrorCode = "INTERNAL_ERROR"
)

type Error struct {
	Code    ErrorCode `json:"error_code"`
	Message string    `json:"message"`
	inner   error
}

func NewError(code ErrorCode, message string) *Error {
	return NewErrorWith(code, message, nil)
}

func NewErrorWith(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		inner:   err,
	}
}

func (e *Error) Error() string {
	if e.inner != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.inner)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.inner
}

func (e *Error) StatusCode() int {
	switch e.Code {
	case ErrorCodeBadRequest, ErrorCodeInvalidParameterValue:
		return fiber.StatusBadRequest
	case ErrorCodeResourceDoesNotExist:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}
