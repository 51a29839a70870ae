package services

import "errors"

var (
	// ErrMalformedGeneration reports that a model response could not be
	// parsed into the required shape. Never retried here; the caller decides.
	ErrMalformedGeneration = errors.New("generation response is malformed")

	// ErrEmptyPool reports that no AI persona exists to attribute content to.
	ErrEmptyPool = errors.New("no AI personas available")

	// ErrSlugExhausted reports that slug allocation hit its attempt cap.
	ErrSlugExhausted = errors.New("no free slug found within attempt limit")
)
