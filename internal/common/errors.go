// Package common contains sentinel errors shared by the server and client
// components.
package common

import "errors"

var (

	// repository specific errors
	ErrNotFound = errors.New("not found")

	// service specific errors
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")
	ErrValidation   = errors.New("validation error")
	ErrEmailTaken   = errors.New("email already registered")

	// auth-specific errors
	ErrInvalidToken   = errors.New("invalid token")
	ErrUnknownSubject = errors.New("unknown subject")
	ErrNoToken        = errors.New("missing token")
)
