package service

import "errors"

var (
	// ErrNotFound covers missing rows and rows outside the caller's project
	// scope; handlers translate it to 404 without distinguishing the two.
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	// ErrEmptyUpdate rejects update payloads with zero recognized fields;
	// an empty update is a client error, never a no-op success.
	ErrEmptyUpdate = errors.New("update payload has no fields")

	ErrValidation = errors.New("validation failed")

	// ErrConfirmationMismatch means the deletion confirmation text did not
	// match the project name exactly (case-sensitive, trimmed).
	ErrConfirmationMismatch = errors.New("confirmation text does not match project name")

	ErrOwnerRemoval = errors.New("project owner cannot be removed")
	ErrDuplicate    = errors.New("already exists")
)
