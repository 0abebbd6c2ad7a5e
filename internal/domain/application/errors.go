package application

import "errors"

// Business-rule failures surfaced to callers. All are detected before any
// mutation; a transition that returns one of these leaves the application
// unchanged.
var (
	ErrNotFound          = errors.New("application not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrUnauthorized      = errors.New("actor not authorized for this stage")
	ErrAlreadyResponded  = errors.New("guarantor has already responded")
	ErrValidation        = errors.New("invalid input")
)
