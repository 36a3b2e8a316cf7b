package utils

import "errors"

// Common application errors used across services.
var (
	ErrSessionNotFound  = errors.New("SESSION_NOT_FOUND")
	ErrUnknownSection   = errors.New("UNKNOWN_SECTION")
	ErrCategoryNotFound = errors.New("CATEGORY_NOT_FOUND")
)
