// Package session drives the turn loop for both interaction modes. Every step
// follows the same shape: load the attempt, guard against terminal state, get
// a structured judgment from the collaborator, merge it, append an immutable
// turn, evaluate end conditions. Merges happen only after a successful,
// schema-valid collaborator response, so a failed step never changes stored
// state and resubmission is always safe.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/concepts"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
	"github.com/ChenMel27/adaptive-recall-engine/internal/notes"
	"github.com/ChenMel27/adaptive-recall-engine/internal/store"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

// Quiz length bounds. The count tracks the gaps found in the notes, clamped
// so every quiz is substantial but bounded.
const (
	quizMinQuestions = 3
	quizMaxQuestions = 6
)

// StepResult is what one completed turn reports back to the caller.
type StepResult struct {
	Status   attempt.Status `json:"status"`
	Feedback string         `json:"feedback"`

	// NextPrompt is the follow-up question or next quiz question. Empty once
	// the attempt is terminal.
	NextPrompt string `json:"next_prompt,omitempty"`

	// QuestionNumber / TotalQuestions are set in notes_quiz mode only.
	QuestionNumber int `json:"question_number,omitempty"`
	TotalQuestions int `json:"total_questions,omitempty"`

	// SummaryReady reports that the attempt is terminal and GetSummary will
	// succeed.
	SummaryReady bool `json:"summary_ready"`
}

// NotesResult reports the outcome of a notes upload: the concept analysis and
// the first quiz question.
type NotesResult struct {
	Analysis       judge.NotesAnalysis `json:"analysis"`
	FirstQuestion  string              `json:"first_question"`
	TotalQuestions int                 `json:"total_questions"`
}

// Service is the session orchestrator.
type Service struct {
	store      store.Store
	adapter    judge.Adapter
	thresholds attempt.Thresholds
	log        *zap.Logger

	locks     *attemptLocks
	summaries singleflight.Group

	now   func() time.Time
	newID func() string
}

// New creates a Service. Thresholds are explicit so tests can exercise
// boundary values without touching global configuration.
func New(st store.Store, adapter judge.Adapter, th attempt.Thresholds, log *zap.Logger) *Service {
	return &Service{
		store:      st,
		adapter:    adapter,
		thresholds: th,
		log:        log,
		locks:      newAttemptLocks(),
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// StartAttempt creates a new active attempt for the topic and mode. In
// brain_dump mode the missing set starts as the topic's full expected set; in
// notes_quiz mode the concept sets stay unseeded until notes are processed.
func (s *Service) StartAttempt(ctx context.Context, topicID, mode, studentName string) (*attempt.Attempt, error) {
	m := attempt.Mode(mode)
	if !m.Valid() {
		return nil, &ErrInvalidMode{Mode: mode}
	}

	t, err := s.store.GetTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	a := attempt.New(s.newID(), t.ID, studentName, m, t.Expected(), s.now())
	if err := s.store.CreateAttempt(ctx, a); err != nil {
		return nil, err
	}

	s.log.Info("attempt started",
		zap.String("attempt_id", a.ID),
		zap.String("topic_id", t.ID),
		zap.String("mode", mode))
	return a, nil
}

// SubmitBrainDump records one brain-dump turn: the initial free recall when
// the attempt has no turns yet, a graded follow-up answer otherwise.
func (s *Service) SubmitBrainDump(ctx context.Context, attemptID, text string) (*StepResult, error) {
	release := s.locks.Acquire(attemptID)
	defer release()

	a, t, err := s.loadActive(ctx, attemptID, attempt.ModeBrainDump, "brain-dump submission")
	if err != nil {
		return nil, err
	}

	var j *judge.Judgment
	var prompt string
	if a.TurnCount == 0 {
		prompt = openingPrompt(*t)
		j, err = s.adapter.JudgeBrainDump(ctx, *t, text)
	} else {
		var history []judge.Exchange
		history, prompt, err = s.loadHistory(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		j, err = s.adapter.JudgeFollowUp(ctx, *t, history, text, a.Misconceptions.Values())
	}
	if err != nil {
		return nil, err
	}

	a.MergeEvidence(concepts.FromList(j.Demonstrated), t.Expected())
	a.MergeMisconceptions(claimSet(j.Misconceptions), concepts.FromList(j.Corrected))

	judgment, err := json.Marshal(j)
	if err != nil {
		return nil, fmt.Errorf("encoding judgment: %w", err)
	}
	// The opening brain dump is ungraded no matter what the judge returns.
	isCorrect := j.IsCorrect
	if a.TurnCount == 0 {
		isCorrect = nil
	}
	turn, err := a.NewTurn(s.newID(), prompt, text, judgment, isCorrect, s.now())
	if err != nil {
		return nil, err
	}

	status := attempt.Evaluate(a, s.thresholds)
	if status != a.Status {
		if err := a.Transition(status, s.now()); err != nil {
			return nil, err
		}
	}

	if err := s.store.AppendTurn(ctx, a, turn); err != nil {
		return nil, err
	}

	s.logTurn(a, "brain_dump")

	res := &StepResult{
		Status:       a.Status,
		Feedback:     j.OverallFeedback,
		SummaryReady: a.Status.Terminal(),
	}
	if a.Status == attempt.StatusActive {
		res.NextPrompt = j.FollowUpQuestion
	}
	return res, nil
}

// UploadNotes processes a notes upload for a notes_quiz attempt: extracts
// text, analyzes concept coverage, seeds the attempt's concept sets, and
// generates the fixed quiz question list. One upload per attempt.
func (s *Service) UploadNotes(ctx context.Context, attemptID, filename string, fileBytes []byte, contentType string) (*NotesResult, error) {
	release := s.locks.Acquire(attemptID)
	defer release()

	a, t, err := s.loadActive(ctx, attemptID, attempt.ModeNotesQuiz, "notes upload")
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetNoteUpload(ctx, attemptID); err == nil {
		return nil, &ErrNotesAlreadyUploaded{AttemptID: attemptID}
	}

	text, err := notes.ExtractText(fileBytes, contentType)
	if err != nil {
		return nil, err
	}

	analysis, err := s.adapter.ExtractNotes(ctx, *t, text)
	if err != nil {
		return nil, err
	}

	n := quizSize(len(analysis.Missing) + len(analysis.Misconceptions))
	questions, err := s.adapter.GenerateQuiz(ctx, *t, *analysis, n)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, &judge.ErrCollaborator{Op: "quiz-generation", Err: fmt.Errorf("empty question list")}
	}

	a.SeedFromNotes(
		concepts.FromList(analysis.Covered),
		concepts.FromList(analysis.Missing),
		claimSet(analysis.Misconceptions),
	)
	a.UpdatedAt = s.now()

	upload := &store.NoteUpload{
		ID:        s.newID(),
		AttemptID: a.ID,
		Filename:  filename,
		Text:      text,
		Analysis:  *analysis,
		Questions: questions,
		CreatedAt: s.now(),
	}
	if err := s.store.SaveNoteUpload(ctx, upload, a); err != nil {
		return nil, err
	}

	s.log.Info("notes processed",
		zap.String("attempt_id", a.ID),
		zap.Int("covered", len(analysis.Covered)),
		zap.Int("missing", len(analysis.Missing)),
		zap.Int("questions", len(questions)))

	return &NotesResult{
		Analysis:       *analysis,
		FirstQuestion:  questions[0].Question,
		TotalQuestions: len(questions),
	}, nil
}

// SubmitQuizAnswer grades the answer to the current quiz question. The
// question list is fixed at upload time; running out of questions ends the
// session even without mastery.
func (s *Service) SubmitQuizAnswer(ctx context.Context, attemptID, answer string) (*StepResult, error) {
	release := s.locks.Acquire(attemptID)
	defer release()

	a, t, err := s.loadActive(ctx, attemptID, attempt.ModeNotesQuiz, "quiz answer")
	if err != nil {
		return nil, err
	}

	upload, err := s.store.GetNoteUpload(ctx, attemptID)
	if err != nil {
		return nil, &ErrQuizNotReady{AttemptID: attemptID}
	}
	if a.TurnCount >= len(upload.Questions) {
		return nil, &ErrQuizNotReady{AttemptID: attemptID}
	}
	q := upload.Questions[a.TurnCount]

	eval, err := s.adapter.EvaluateAnswer(ctx, *t, q, answer)
	if err != nil {
		return nil, err
	}

	if eval.ConceptDemonstrated || eval.IsCorrect {
		a.MergeQuizEvidence(concepts.FromList([]string{q.TargetConcept}))
	}

	judgment, err := json.Marshal(eval)
	if err != nil {
		return nil, fmt.Errorf("encoding evaluation: %w", err)
	}
	isCorrect := eval.IsCorrect
	turn, err := a.NewTurn(s.newID(), q.Question, answer, judgment, &isCorrect, s.now())
	if err != nil {
		return nil, err
	}

	// Question exhaustion is a loop condition checked before the evaluator:
	// consuming the last question ends the session regardless of thresholds.
	var status attempt.Status
	if a.TurnCount >= len(upload.Questions) {
		status = attempt.EvaluateQuizExhausted(a, s.thresholds)
	} else {
		status = attempt.Evaluate(a, s.thresholds)
	}
	if status != a.Status {
		if err := a.Transition(status, s.now()); err != nil {
			return nil, err
		}
	}

	if err := s.store.AppendTurn(ctx, a, turn); err != nil {
		return nil, err
	}

	s.logTurn(a, "notes_quiz")

	res := &StepResult{
		Status:         a.Status,
		Feedback:       eval.Feedback,
		TotalQuestions: len(upload.Questions),
		SummaryReady:   a.Status.Terminal(),
	}
	if a.Status == attempt.StatusActive {
		res.NextPrompt = upload.Questions[a.TurnCount].Question
		res.QuestionNumber = a.TurnCount + 1
	}
	return res, nil
}

// OptOut ends the attempt at the student's request, short-circuiting all
// concept-based checks.
func (s *Service) OptOut(ctx context.Context, attemptID string) (attempt.Status, error) {
	release := s.locks.Acquire(attemptID)
	defer release()

	a, err := s.store.GetAttempt(ctx, attemptID)
	if err != nil {
		return "", err
	}
	if err := a.Transition(attempt.StatusOptedOut, s.now()); err != nil {
		return "", err
	}
	if err := s.store.UpdateAttempt(ctx, a); err != nil {
		return "", err
	}

	s.log.Info("attempt opted out", zap.String("attempt_id", a.ID), zap.Int("turns", a.TurnCount))
	return a.Status, nil
}

// GetAttempt returns the stored attempt.
func (s *Service) GetAttempt(ctx context.Context, attemptID string) (*attempt.Attempt, error) {
	return s.store.GetAttempt(ctx, attemptID)
}

// ListTurns returns the attempt's full turn ledger in sequence order.
func (s *Service) ListTurns(ctx context.Context, attemptID string) ([]attempt.Turn, error) {
	return s.store.ListTurns(ctx, attemptID)
}

// ListTopics returns all seeded topics.
func (s *Service) ListTopics(ctx context.Context) ([]topic.Topic, error) {
	return s.store.ListTopics(ctx)
}

// Stats returns the dashboard aggregate.
func (s *Service) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// ListRecentAttempts returns the newest attempts, for the dashboard.
func (s *Service) ListRecentAttempts(ctx context.Context, limit int) ([]attempt.Attempt, error) {
	return s.store.ListRecentAttempts(ctx, limit)
}

// loadActive fetches the attempt, rejects terminal attempts and mode
// mismatches. The lock must already be held.
func (s *Service) loadActive(ctx context.Context, attemptID string, want attempt.Mode, op string) (*attempt.Attempt, *topic.Topic, error) {
	a, err := s.store.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, nil, err
	}
	if a.Status.Terminal() {
		return nil, nil, &attempt.ErrTerminalAttempt{AttemptID: a.ID, Status: a.Status}
	}
	if a.Mode != want {
		return nil, nil, &ErrWrongMode{AttemptID: a.ID, Mode: a.Mode, Op: op}
	}

	t, err := s.store.GetTopic(ctx, a.TopicID)
	if err != nil {
		return nil, nil, err
	}
	return a, t, nil
}

// loadHistory renders prior turns into collaborator context and returns the
// prompt the student was answering (the previous turn's follow-up question).
func (s *Service) loadHistory(ctx context.Context, attemptID string) ([]judge.Exchange, string, error) {
	turns, err := s.store.ListTurns(ctx, attemptID)
	if err != nil {
		return nil, "", err
	}

	history := make([]judge.Exchange, 0, len(turns))
	for _, t := range turns {
		history = append(history, judge.Exchange{Prompt: t.Prompt, Response: t.Response})
	}

	prompt := "Tell me more about what you remember."
	if len(turns) > 0 {
		var last judge.Judgment
		if err := json.Unmarshal(turns[len(turns)-1].Judgment, &last); err == nil && last.FollowUpQuestion != "" {
			prompt = last.FollowUpQuestion
		}
	}
	return history, prompt, nil
}

func (s *Service) logTurn(a *attempt.Attempt, mode string) {
	s.log.Info("turn recorded",
		zap.String("attempt_id", a.ID),
		zap.String("mode", mode),
		zap.Int("seq", a.TurnCount),
		zap.String("status", string(a.Status)),
		zap.Int("missing", a.Missing.Size()),
		zap.Int("misconceptions", a.Misconceptions.Size()),
		zap.Int("correct_followups", a.CorrectFollowups))
}

func openingPrompt(t topic.Topic) string {
	return fmt.Sprintf("Tell me everything you remember about %s.", t.Name)
}

func claimSet(ms []judge.Misconception) concepts.Set {
	claims := make([]string, 0, len(ms))
	for _, m := range ms {
		claims = append(claims, m.Claim)
	}
	return concepts.FromList(claims)
}

func quizSize(gaps int) int {
	if gaps < quizMinQuestions {
		return quizMinQuestions
	}
	if gaps > quizMaxQuestions {
		return quizMaxQuestions
	}
	return gaps
}
