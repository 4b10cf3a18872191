package judge

import (
	"context"
	"errors"
	"fmt"
)

// ErrCollaborator indicates the text-analysis backend failed for a judging
// call. The attempt that triggered the call is left unmodified.
type ErrCollaborator struct {
	Op  string
	Err error
}

func (e *ErrCollaborator) Error() string {
	return fmt.Sprintf("collaborator failure during %s: %v", e.Op, e.Err)
}

func (e *ErrCollaborator) Unwrap() error { return e.Err }

// ErrCollaboratorTimeout indicates the judging call exceeded the caller's
// deadline. The student can resubmit the same turn.
type ErrCollaboratorTimeout struct {
	Op  string
	Err error
}

func (e *ErrCollaboratorTimeout) Error() string {
	return fmt.Sprintf("collaborator timeout during %s: %v", e.Op, e.Err)
}

func (e *ErrCollaboratorTimeout) Unwrap() error { return e.Err }

// wrapErr classifies a backend failure. Deadline expiry gets its own type so
// the API layer can answer 504 instead of 502.
func wrapErr(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ErrCollaboratorTimeout{Op: op, Err: err}
	}
	return &ErrCollaborator{Op: op, Err: err}
}
