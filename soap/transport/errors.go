package transport

import "errors"

// MaxAttemptsMessage is the message of every TransportError.
const MaxAttemptsMessage = "Request failed for the maximum number of attempts."

// ErrMaxAttempts matches every *TransportError via errors.Is.
var ErrMaxAttempts = errors.New("transport: request failed for the maximum number of attempts")

// TransportError is returned by Execute after every attempt has failed.
// Per-attempt failures are not reported individually.
type TransportError struct {
	// Attempts is the number of attempts made.
	Attempts int

	// Code is the error code of the last attempt.
	Code ErrorCode

	// Err is the error of the last attempt.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return MaxAttemptsMessage
}

// Unwrap returns ErrMaxAttempts and the last attempt's error.
func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMaxAttempts}
	}
	return []error{ErrMaxAttempts, e.Err}
}

// IsTransportError returns true if err is a TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
