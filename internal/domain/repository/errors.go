package repository

import "errors"

var (
	// ErrDuplicateAttempt means the (student, quiz, attempt_number) unique
	// constraint rejected an insert; the caller retries the numbering.
	ErrDuplicateAttempt = errors.New("duplicate attempt number")

	// ErrDuplicateAccount means a concurrent insert already created the
	// points account for this user; the caller re-reads it.
	ErrDuplicateAccount = errors.New("points account already exists")
)
