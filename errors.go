package folio

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates caller input failed validation.
	ErrValidation = errors.New("validation error")

	// ErrTransport indicates the provider call itself failed: connectivity,
	// authentication, rate limiting or a missing credential.
	ErrTransport = errors.New("transport error")

	// ErrGeneration indicates the provider answered without the payload a
	// hard-required output needs.
	ErrGeneration = errors.New("generation error")

	// ErrBusy indicates a conversation turn is already in flight.
	ErrBusy = errors.New("turn in progress")

	// ErrSessionNotFound indicates an unknown session ID.
	ErrSessionNotFound = errors.New("session not found")
)
