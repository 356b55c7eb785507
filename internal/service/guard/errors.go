package guard

import "errors"

var (
	ErrNoCredential     = errors.New("no credential")
	ErrMalformedToken   = errors.New("malformed credential")
	ErrExpiredToken     = errors.New("credential expired")
	ErrInvalidRoleClaim = errors.New("invalid role claim")
)
