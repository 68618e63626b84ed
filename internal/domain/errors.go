package domain

import "errors"

var (
	// ErrUnauthenticated indicates a missing or malformed bearer token.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrInvalidToken indicates the identity provider rejected the token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrForbidden indicates the caller may not act on the target record.
	ErrForbidden = errors.New("action forbidden")
	// ErrAlreadyRegistered indicates a record already exists for the subject.
	ErrAlreadyRegistered = errors.New("user already registered")
	// ErrNotFound indicates no record exists for the subject.
	ErrNotFound = errors.New("user not found")
	// ErrInvalidInput indicates a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input data")
)
