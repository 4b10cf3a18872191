// Package store persists topics, attempts, turns, and note uploads. The
// production implementation is GORM over SQLite or Postgres; tests use the
// in-memory implementation.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

// NoteUpload is a processed notes upload tied to one attempt, including the
// quiz generated from it. QuestionIndex for the next quiz turn is derived
// from the attempt's TurnCount, so the upload itself stays immutable.
type NoteUpload struct {
	ID        string
	AttemptID string
	Filename  string
	Text      string
	Analysis  judge.NotesAnalysis
	Questions []judge.QuizQuestion
	CreatedAt time.Time
}

// Stats is the teacher-dashboard aggregate.
type Stats struct {
	TotalAttempts int64
	MasteryCount  int64
	ByStatus      map[attempt.Status]int64
	ByMode        map[attempt.Mode]int64
}

// Store is the persistence boundary. All methods are safe for concurrent
// use; writes to a single attempt are serialized by the session layer.
type Store interface {
	// SeedTopics inserts topics that do not exist yet and updates ones that
	// do. Safe to run on every startup.
	SeedTopics(ctx context.Context, topics []topic.Topic) error
	ListTopics(ctx context.Context) ([]topic.Topic, error)
	GetTopic(ctx context.Context, id string) (*topic.Topic, error)

	CreateAttempt(ctx context.Context, a *attempt.Attempt) error
	GetAttempt(ctx context.Context, id string) (*attempt.Attempt, error)

	// UpdateAttempt persists attempt state that changed without a new turn
	// (opt-out).
	UpdateAttempt(ctx context.Context, a *attempt.Attempt) error

	// AppendTurn atomically inserts the turn and persists the attempt's
	// updated state. The turn's Seq must be exactly one past the stored
	// turn count; a mismatch returns *attempt.ErrSequence and writes
	// nothing.
	AppendTurn(ctx context.Context, a *attempt.Attempt, turn *attempt.Turn) error
	ListTurns(ctx context.Context, attemptID string) ([]attempt.Turn, error)

	// SaveNoteUpload atomically inserts the upload and persists the
	// attempt's seeded state. A failure writes neither, so the upload can
	// be resubmitted.
	SaveNoteUpload(ctx context.Context, upload *NoteUpload, a *attempt.Attempt) error
	GetNoteUpload(ctx context.Context, attemptID string) (*NoteUpload, error)

	ListRecentAttempts(ctx context.Context, limit int) ([]attempt.Attempt, error)
	Stats(ctx context.Context) (*Stats, error)
}

// ErrNotFound indicates the requested record does not exist.
type ErrNotFound struct {
	Kind string
	ID   string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}
