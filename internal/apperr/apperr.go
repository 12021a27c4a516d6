// Package apperr holds the sentinel errors the handler boundary maps to
// HTTP statuses. Services return these (possibly wrapped); everything
// else is treated as an internal failure and never shown to the client.
package apperr

import "errors"

var (
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("access denied")
	ErrUnauthenticated = errors.New("authentication required")
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrDuplicateEmail  = errors.New("user with this email already exists")
	ErrBadCredentials  = errors.New("invalid email or password")
)

// Validation carries a client-facing message for a 400 response.
type Validation struct {
	Msg string
}

func (v *Validation) Error() string {
	return v.Msg
}

func Validationf(msg string) error {
	return &Validation{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a validation error and
// returns its message.
func IsValidation(err error) (string, bool) {
	var v *Validation
	if errors.As(err, &v) {
		return v.Msg, true
	}
	return "", false
}
