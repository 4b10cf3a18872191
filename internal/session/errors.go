package session

import (
	"fmt"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
)

// ErrWrongMode indicates an operation was called against an attempt in the
// other mode (e.g. a quiz answer submitted to a brain-dump attempt).
type ErrWrongMode struct {
	AttemptID string
	Mode      attempt.Mode
	Op        string
}

func (e *ErrWrongMode) Error() string {
	return fmt.Sprintf("%s not allowed for attempt %s in mode %s", e.Op, e.AttemptID, e.Mode)
}

// ErrInvalidMode indicates an unknown mode string at attempt creation.
type ErrInvalidMode struct {
	Mode string
}

func (e *ErrInvalidMode) Error() string {
	return fmt.Sprintf("invalid mode %q: want brain_dump or notes_quiz", e.Mode)
}

// ErrNotesAlreadyUploaded indicates a second notes upload for an attempt that
// already has its quiz generated. Uploads are one-to-one with attempts.
type ErrNotesAlreadyUploaded struct {
	AttemptID string
}

func (e *ErrNotesAlreadyUploaded) Error() string {
	return fmt.Sprintf("attempt %s already has notes uploaded", e.AttemptID)
}

// ErrQuizNotReady indicates a quiz answer arrived before notes were uploaded
// and the question list generated.
type ErrQuizNotReady struct {
	AttemptID string
}

func (e *ErrQuizNotReady) Error() string {
	return fmt.Sprintf("attempt %s has no quiz yet: upload notes first", e.AttemptID)
}
