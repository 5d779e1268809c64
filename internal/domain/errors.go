package domain

import "errors"

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists is returned on a unique constraint violation.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrNoFieldsToUpdate is returned when a patch carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden is returned when the caller may not act on a resource.
	ErrForbidden = errors.New("forbidden")

	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStatus = errors.New("invalid status")
	ErrOwnRole       = errors.New("cannot change your own role")
)
