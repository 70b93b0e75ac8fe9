package api

import "errors"

// ErrUnauthorized reports that a credential was rejected or could not be
// verified. Expired tokens and transport failures both surface as this
// error; the caller treats either one as a logout.
var ErrUnauthorized = errors.New("unauthorized")

// InvalidCredentialsError reports a rejected login attempt. Message holds
// the server-provided detail when present and is safe to display.
type InvalidCredentialsError struct {
	Message string
}

func (e *InvalidCredentialsError) Error() string {
	return e.Message
}

// RegistrationError reports a rejected signup attempt. Message holds the
// server-provided detail when present and is safe to display.
type RegistrationError struct {
	Message string
}

func (e *RegistrationError) Error() string {
	return e.Message
}
