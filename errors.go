package lab

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	// ErrSendInFlight indicates a send was attempted while another send
	// from the same store was still in progress.
	ErrSendInFlight = errors.New("send already in progress")

	// ErrStreamClosed indicates an operation on a closed stream.
	ErrStreamClosed = errors.New("stream closed")

	// ErrAmbiguousReconciliation indicates the session-list refresh did not
	// identify exactly one new session; the newest session was used.
	ErrAmbiguousReconciliation = errors.New("ambiguous session reconciliation")

	// ErrNoSessionAssigned indicates the backend completed a first-message
	// send without creating a session.
	ErrNoSessionAssigned = errors.New("backend did not assign a session")

	// ErrNotLoggedIn indicates no user is logged in.
	ErrNotLoggedIn = errors.New("not logged in")
)

// APIError is a business failure reported by a well-formed backend
// response: a non-zero envelope code with the backend's message.
type APIError struct {
	Code    int
	Message string
}

// Error returns the backend's message verbatim when available, else a
// generic failure message.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed (code %d)", e.Code)
	}
	return e.Message
}
