package domain

import "errors"

var (
	ErrPromoterNotFound   = errors.New("promoter not found")
	ErrHappeningNotFound  = errors.New("happening not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("wrong credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidAuthMethod  = errors.New("exactly one of password or google id must be set")
	ErrAlreadyRegistered  = errors.New("user already registered")
	ErrMissingFields      = errors.New("missing required fields")
	ErrNoUpdateFields     = errors.New("no valid fields provided for update")
)
