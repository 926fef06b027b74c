package common

import "errors"

var (
	// ErrorNotFound is returned when a category or content item does not exist
	// or is not visible to the current user.
	ErrorNotFound = errors.New("not found")

	// ErrorUnauthorized means the stored token is missing, invalid or expired.
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrEmptyCategoryName = errors.New("category name cannot be empty")
)
