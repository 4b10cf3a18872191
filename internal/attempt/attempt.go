// Package attempt models one student's learning session: the aggregate state
// accumulated across turns, the immutable turn ledger entries, and the
// deterministic end-condition evaluation.
package attempt

import (
	"encoding/json"
	"time"

	"github.com/ChenMel27/adaptive-recall-engine/internal/concepts"
)

// Mode selects the interaction style for an attempt. Fixed at creation.
type Mode string

const (
	// ModeBrainDump is free recall: the student writes everything they
	// remember, then answers AI-generated follow-up questions.
	ModeBrainDump Mode = "brain_dump"

	// ModeNotesQuiz is structured: the student uploads notes, and answers
	// a quiz generated from the gaps in those notes.
	ModeNotesQuiz Mode = "notes_quiz"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeBrainDump || m == ModeNotesQuiz
}

// Status is the attempt lifecycle state. All statuses other than
// StatusActive are terminal: once left, StatusActive is never re-entered.
type Status string

const (
	StatusActive        Status = "active"
	StatusMastery       Status = "mastery"
	StatusMaxTurns      Status = "max_turns"
	StatusOptedOut      Status = "opted_out"
	StatusQuizExhausted Status = "quiz_exhausted"
)

// Terminal reports whether the status ends the session.
func (s Status) Terminal() bool {
	return s != StatusActive
}

// Attempt is the aggregate root of one session. Mutated only by the
// orchestrator; persisted atomically with each appended Turn.
type Attempt struct {
	ID          string
	TopicID     string
	StudentName string
	Mode        Mode
	Status      Status

	// TurnCount equals the number of turns in the ledger at all times.
	TurnCount int

	// CorrectFollowups counts turns the judge explicitly marked correct.
	// The ungraded first brain-dump turn never contributes.
	CorrectFollowups int

	// Demonstrated grows monotonically as evidence accumulates.
	Demonstrated concepts.Set

	// Missing is recomputed each turn as expected minus demonstrated.
	// In quiz mode it is undefined until the notes are processed.
	Missing concepts.Set

	// Misconceptions holds currently-flagged wrong beliefs. A flag is
	// cleared only by an explicit correction in a later judgment.
	Misconceptions concepts.Set

	// ConceptsSeeded is false for a quiz-mode attempt whose notes have not
	// been analyzed yet. While false, Missing is unknown and the evaluator
	// never claims mastery.
	ConceptsSeeded bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// New creates an active attempt. In brain-dump mode the missing set starts
// as the full expected set; in quiz mode it stays unknown until notes are
// processed.
func New(id, topicID, studentName string, mode Mode, expected concepts.Set, now time.Time) *Attempt {
	a := &Attempt{
		ID:          id,
		TopicID:     topicID,
		StudentName: studentName,
		Mode:        mode,
		Status:      StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if mode == ModeBrainDump {
		a.Missing = expected
		a.ConceptsSeeded = true
	}
	return a
}

// Turn is one prompt/response/judgment exchange. Immutable once appended to
// the ledger; sequence numbers are 1-based and gap-free per attempt.
type Turn struct {
	ID        string `json:"id"`
	AttemptID string `json:"attempt_id"`
	Seq       int    `json:"seq"`
	Prompt    string `json:"prompt"`
	Response  string `json:"response"`

	// Judgment is the raw structured payload returned by the judge.
	// Opaque to storage; interpreted only at merge time.
	Judgment json.RawMessage `json:"judgment"`

	// IsCorrect is nil for ungraded turns (the initial brain dump).
	IsCorrect *bool `json:"is_correct"`

	CreatedAt time.Time `json:"created_at"`
}

// NewTurn builds the next ledger entry and advances the turn counter.
// Fails with ErrTerminalAttempt when the attempt has already ended; the
// ledger of a finished session never grows.
func (a *Attempt) NewTurn(id, prompt, response string, judgment json.RawMessage, isCorrect *bool, now time.Time) (*Turn, error) {
	if a.Status.Terminal() {
		return nil, &ErrTerminalAttempt{AttemptID: a.ID, Status: a.Status}
	}

	t := &Turn{
		ID:        id,
		AttemptID: a.ID,
		Seq:       a.TurnCount + 1,
		Prompt:    prompt,
		Response:  response,
		Judgment:  judgment,
		IsCorrect: isCorrect,
		CreatedAt: now,
	}

	a.TurnCount++
	if isCorrect != nil && *isCorrect {
		a.CorrectFollowups++
	}
	a.UpdatedAt = now
	return t, nil
}

// MergeEvidence unions newly demonstrated concepts into the attempt and
// recomputes the missing set from the topic's expected concepts. Recomputing
// from the expected set (rather than trusting the judge's missing list)
// keeps Missing consistent even when the judge's list is incomplete.
func (a *Attempt) MergeEvidence(demonstrated, expected concepts.Set) {
	a.Demonstrated = a.Demonstrated.Union(demonstrated)
	a.Missing = expected.Difference(a.Demonstrated)
}

// MergeQuizEvidence adds demonstrated concepts and shrinks the seeded missing
// set. Quiz mode never recomputes against the full expected set: the quiz
// only covers what the notes analysis identified.
func (a *Attempt) MergeQuizEvidence(demonstrated concepts.Set) {
	a.Demonstrated = a.Demonstrated.Union(demonstrated)
	a.Missing = a.Missing.Difference(demonstrated)
}

// MergeMisconceptions flags newly surfaced misconceptions and clears only
// those the judgment explicitly marks as corrected. A misconception absent
// from the latest judgment stays flagged: absence is not correction.
func (a *Attempt) MergeMisconceptions(found, corrected concepts.Set) {
	a.Misconceptions = a.Misconceptions.Union(found).Difference(corrected)
}

// SeedFromNotes initializes the concept sets from the notes analysis.
// Quiz mode only; called once before the first question is issued.
func (a *Attempt) SeedFromNotes(covered, missing, misconceptions concepts.Set) {
	a.Demonstrated = covered
	a.Missing = missing
	a.Misconceptions = misconceptions
	a.ConceptsSeeded = true
}

// Transition moves the attempt out of the active state. Fails with
// ErrTerminalAttempt when the attempt has already ended; terminal statuses
// never change.
func (a *Attempt) Transition(to Status, now time.Time) error {
	if a.Status.Terminal() {
		return &ErrTerminalAttempt{AttemptID: a.ID, Status: a.Status}
	}
	if to == StatusActive {
		return nil
	}
	a.Status = to
	a.UpdatedAt = now
	return nil
}
