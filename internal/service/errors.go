package service

import (
	"errors"
	"fmt"
)

// Классы ошибок. Обработчики HTTP сопоставляют их со статусами через errors.Is,
// все прочие ошибки считаются внутренними.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrDependency        = errors.New("dependency unavailable")
	ErrInvalidTransition = errors.New("invalid status transition")
)

var (
	ErrNoContacts           = fmt.Errorf("%w: no usable emergency contacts", ErrDependency)
	ErrGatewayNotConfigured = fmt.Errorf("%w: sms gateway is not configured", ErrDependency)
)

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
