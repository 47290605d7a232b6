package errors

import "errors"

// Application-level errors shared across services. Repositories map driver
// errors onto these; handlers translate them into HTTP responses.
var (
	// ErrNotFound is returned when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned for authentication failures (bad token, bad credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the actor lacks the role required for the action.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is returned for invalid input data.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidAmount is returned when a point amount is zero or negative.
	ErrInvalidAmount = errors.New("amount must be positive")

	// ErrInsufficientBalance is returned when a deduction exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient points balance")

	// ErrAlreadyReviewed is returned when a challenge submission is no longer pending.
	ErrAlreadyReviewed = errors.New("submission already reviewed")

	// ErrMalformedDifficulty is returned when an edited question carries an
	// unknown difficulty label.
	ErrMalformedDifficulty = errors.New("malformed difficulty level")

	// ErrRewardCreditFailed is returned when the points credit of an approved
	// submission cannot be applied; the approval is rolled back with it.
	ErrRewardCreditFailed = errors.New("reward credit failed")

	// ErrConcurrentConflict is returned after the bounded retries on a
	// storage-level write conflict are exhausted.
	ErrConcurrentConflict = errors.New("concurrent update conflict")

	// ErrConflict is returned for generic state conflicts (duplicate email etc.).
	ErrConflict = errors.New("resource state conflict")
)
