package domain

import "errors"

var (
	ErrIdentityNotFound = errors.New("identity not found")
	ErrSecretNotFound   = errors.New("secret not found")
	ErrUnknownHandler   = errors.New("unknown handler")
	ErrNoCredentials    = errors.New("no session credentials")
	ErrSessionClosed    = errors.New("trade session closed")
)
