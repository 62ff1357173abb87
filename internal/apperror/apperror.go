// Package apperror defines the error kinds that reach HTTP clients.
package apperror

import "errors"

const (
	ServerErrorMessage   = "An error occurred on the server. Try again later."
	MissingParamsMessage = "Missing one or more of the required params."
	BookNotFoundMessage  = "The book ID does not exist."
)

var ErrUnauthorized = errors.New("session expired please log in again")

// InvalidParamError is a client mistake: missing or malformed input, or an unknown resource id.
type InvalidParamError struct {
	Message string
}

func (e *InvalidParamError) Error() string {
	return e.Message
}

func InvalidParam(message string) error {
	return &InvalidParamError{Message: message}
}

func IsInvalidParam(err error) bool {
	var target *InvalidParamError
	return errors.As(err, &target)
}
