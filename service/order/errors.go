package order

import "errors"

// ErrNotFound is returned when an order does not resolve inside its
// owning store. Nothing has been written when it is returned.
var ErrNotFound = errors.New("order not found")

// ValidationError rejects a request before any write happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
