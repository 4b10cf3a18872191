package judge

import (
	"context"
	"fmt"
	"sync"

	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

// ScriptedAdapter is an Adapter with canned results, consumed FIFO per
// method. When a method's queue is empty it fails, so tests notice
// unexpected extra calls.
type ScriptedAdapter struct {
	mu sync.Mutex

	Judgments   []ScriptedResult[Judgment]
	Analyses    []ScriptedResult[NotesAnalysis]
	Quizzes     []ScriptedResult[[]QuizQuestion]
	Evaluations []ScriptedResult[AnswerEvaluation]
	Summaries   []ScriptedResult[Summary]

	calls int
}

// ScriptedResult is one canned outcome: a value or an error.
type ScriptedResult[T any] struct {
	Value T
	Err   error
}

func (s *ScriptedAdapter) JudgeBrainDump(_ context.Context, _ topic.Topic, _ string) (*Judgment, error) {
	return next(s, &s.Judgments, "JudgeBrainDump")
}

func (s *ScriptedAdapter) JudgeFollowUp(_ context.Context, _ topic.Topic, _ []Exchange, _ string, _ []string) (*Judgment, error) {
	return next(s, &s.Judgments, "JudgeFollowUp")
}

func (s *ScriptedAdapter) ExtractNotes(_ context.Context, _ topic.Topic, _ string) (*NotesAnalysis, error) {
	return next(s, &s.Analyses, "ExtractNotes")
}

func (s *ScriptedAdapter) GenerateQuiz(_ context.Context, _ topic.Topic, _ NotesAnalysis, _ int) ([]QuizQuestion, error) {
	qs, err := next(s, &s.Quizzes, "GenerateQuiz")
	if err != nil {
		return nil, err
	}
	return *qs, nil
}

func (s *ScriptedAdapter) EvaluateAnswer(_ context.Context, _ topic.Topic, _ QuizQuestion, _ string) (*AnswerEvaluation, error) {
	return next(s, &s.Evaluations, "EvaluateAnswer")
}

func (s *ScriptedAdapter) Summarize(_ context.Context, _ topic.Topic, _ SummaryInput) (*Summary, error) {
	return next(s, &s.Summaries, "Summarize")
}

// CallCount reports how many adapter calls have been made in total.
func (s *ScriptedAdapter) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func next[T any](s *ScriptedAdapter, queue *[]ScriptedResult[T], op string) (*T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++

	if len(*queue) == 0 {
		return nil, &ErrCollaborator{Op: op, Err: fmt.Errorf("scripted adapter: no result queued")}
	}
	r := (*queue)[0]
	*queue = (*queue)[1:]
	if r.Err != nil {
		return nil, r.Err
	}
	v := r.Value
	return &v, nil
}
