package models

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream catalog unavailable")
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrUnauthorized        = errors.New("unauthorized")
)
