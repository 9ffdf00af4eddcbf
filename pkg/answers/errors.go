package answers

import "errors"

var (
	// ErrSubmitInFlight is returned when a submission is attempted while a
	// previous one is still outstanding.
	ErrSubmitInFlight = errors.New("answers: submission already in flight")

	// ErrIncomplete is returned when required instances are missing answers;
	// the normalizer is never invoked in that case.
	ErrIncomplete = errors.New("answers: required answers missing")
)
