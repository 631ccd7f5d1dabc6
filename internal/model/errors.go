package model

import "errors"

// Common errors used across the application
var (
	// Entry errors
	ErrEntryNotFound = errors.New("entry not found")

	// Submission validation errors
	ErrMissingCount  = errors.New("invite count is required")
	ErrNotANumber    = errors.New("invite count must be a whole number")
	ErrNegativeCount = errors.New("invite count must not be negative")
)

// IsValidation reports whether err was caused by bad caller input.
// Validation failures leave the store unchanged and are reported back
// to the submitter rather than treated as system failures.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingCount) ||
		errors.Is(err, ErrNotANumber) ||
		errors.Is(err, ErrNegativeCount)
}
