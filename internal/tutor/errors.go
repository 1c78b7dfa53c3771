package tutor

import (
	"errors"
	"fmt"
)

// ErrNotResolved is returned by Dispatch when the session has not
// reached ResolvedClear. Calling Dispatch early is a programming error,
// fatal to the current turn only.
var ErrNotResolved = errors.New("session is not resolved")

// ErrOperationInFlight is returned when a second operation is started on
// a session that is still processing one. Sessions are single-writer.
var ErrOperationInFlight = errors.New("session already has an operation in flight")

// StateError indicates an operation was invoked in the wrong lifecycle
// state, e.g. a reply arriving with no clarification pending.
type StateError struct {
	Want Status
	Got  Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("session is %s, operation requires %s", e.Got, e.Want)
}

// AbandonedError indicates the clarification budget ran out. Surfaced to
// the learner with an offer to restart.
type AbandonedError struct {
	Rounds int
	Reason string
}

func (e *AbandonedError) Error() string {
	return fmt.Sprintf("session abandoned after %d clarification rounds: %s", e.Rounds, e.Reason)
}
