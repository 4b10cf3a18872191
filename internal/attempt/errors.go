package attempt

import "fmt"

// ErrTerminalAttempt indicates a step was attempted on a finished attempt.
// Surfaced to callers as "session already ended"; resubmitting after a
// terminal status is always rejected with this error.
type ErrTerminalAttempt struct {
	AttemptID string
	Status    Status
}

func (e *ErrTerminalAttempt) Error() string {
	return fmt.Sprintf("attempt %s already ended with status %q", e.AttemptID, e.Status)
}

// ErrNotTerminal indicates a summary was requested while the session is
// still in progress.
type ErrNotTerminal struct {
	AttemptID string
}

func (e *ErrNotTerminal) Error() string {
	return fmt.Sprintf("attempt %s is still active; no summary yet", e.AttemptID)
}

// ErrSequence indicates a turn-ledger invariant violation: a sequence number
// that is not the next in line, or a ledger length diverging from the
// attempt's turn counter. Never expected in correct operation; it signals
// a bug and aborts the step rather than self-repairing.
type ErrSequence struct {
	AttemptID string
	Want      int
	Got       int
}

func (e *ErrSequence) Error() string {
	return fmt.Sprintf("turn ledger for attempt %s out of sequence: want %d, got %d", e.AttemptID, e.Want, e.Got)
}
