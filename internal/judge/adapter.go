package judge

import (
	"context"
	"encoding/json"

	"github.com/ChenMel27/adaptive-recall-engine/internal/llm"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

// Adapter is the orchestrator's view of the text-analysis collaborator.
// Implementations must be safe for concurrent use.
type Adapter interface {
	// JudgeBrainDump analyzes a student's initial free-recall writing.
	JudgeBrainDump(ctx context.Context, t topic.Topic, studentText string) (*Judgment, error)

	// JudgeFollowUp analyzes a follow-up answer in the context of the
	// conversation so far. openMisconceptions are the claims still flagged
	// on the attempt; the judgment's Corrected list may clear some of them.
	JudgeFollowUp(ctx context.Context, t topic.Topic, history []Exchange, studentResponse string, openMisconceptions []string) (*Judgment, error)

	// ExtractNotes maps uploaded note text onto the topic's expected concepts.
	ExtractNotes(ctx context.Context, t topic.Topic, notesText string) (*NotesAnalysis, error)

	// GenerateQuiz produces numQuestions short-answer questions targeting
	// the gaps found in the notes analysis.
	GenerateQuiz(ctx context.Context, t topic.Topic, analysis NotesAnalysis, numQuestions int) ([]QuizQuestion, error)

	// EvaluateAnswer grades one quiz answer.
	EvaluateAnswer(ctx context.Context, t topic.Topic, q QuizQuestion, studentAnswer string) (*AnswerEvaluation, error)

	// Summarize writes the end-of-session wrap-up.
	Summarize(ctx context.Context, t topic.Topic, in SummaryInput) (*Summary, error)
}

// maxResponseTokens caps every judging call. Judgments are small; a response
// that hits this limit is malformed, not truncated-but-usable.
const maxResponseTokens = 1500

// LLMAdapter implements Adapter on top of an llm.Provider.
type LLMAdapter struct {
	provider llm.Provider
}

// NewLLMAdapter creates an adapter backed by the given provider.
func NewLLMAdapter(provider llm.Provider) *LLMAdapter {
	return &LLMAdapter{provider: provider}
}

func (a *LLMAdapter) JudgeBrainDump(ctx context.Context, t topic.Topic, studentText string) (*Judgment, error) {
	return call[Judgment](ctx, a.provider, "brain-dump",
		brainDumpSystemPrompt, buildBrainDumpUserMessage(t, studentText), JudgmentSchema)
}

func (a *LLMAdapter) JudgeFollowUp(ctx context.Context, t topic.Topic, history []Exchange, studentResponse string, openMisconceptions []string) (*Judgment, error) {
	return call[Judgment](ctx, a.provider, "follow-up",
		followUpSystemPrompt, buildFollowUpUserMessage(t, history, studentResponse, openMisconceptions), JudgmentSchema)
}

func (a *LLMAdapter) ExtractNotes(ctx context.Context, t topic.Topic, notesText string) (*NotesAnalysis, error) {
	return call[NotesAnalysis](ctx, a.provider, "notes-extraction",
		notesSystemPrompt, buildNotesUserMessage(t, notesText), NotesAnalysisSchema)
}

func (a *LLMAdapter) GenerateQuiz(ctx context.Context, t topic.Topic, analysis NotesAnalysis, numQuestions int) ([]QuizQuestion, error) {
	type quizPayload struct {
		Questions []QuizQuestion `json:"questions"`
	}
	payload, err := call[quizPayload](ctx, a.provider, "quiz-generation",
		quizSystemPrompt, buildQuizUserMessage(t, analysis, numQuestions), QuizSchema)
	if err != nil {
		return nil, err
	}
	return payload.Questions, nil
}

func (a *LLMAdapter) EvaluateAnswer(ctx context.Context, t topic.Topic, q QuizQuestion, studentAnswer string) (*AnswerEvaluation, error) {
	return call[AnswerEvaluation](ctx, a.provider, "quiz-evaluation",
		evaluationSystemPrompt, buildEvaluationUserMessage(t, q, studentAnswer), EvaluationSchema)
}

func (a *LLMAdapter) Summarize(ctx context.Context, t topic.Topic, in SummaryInput) (*Summary, error) {
	return call[Summary](ctx, a.provider, "summary",
		summarySystemPrompt, buildSummaryUserMessage(t, in), SummarySchema)
}

func call[T any](ctx context.Context, p llm.Provider, purpose, system, user string, schema *llm.Schema) (*T, error) {
	ctx = llm.WithPurpose(ctx, purpose)

	resp, err := p.Generate(ctx, llm.Request{
		System:    system,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:    schema,
		MaxTokens: maxResponseTokens,
	})
	if err != nil {
		return nil, wrapErr(purpose, err)
	}

	var out T
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		// Schema validation already passed, so this is a shape drift between
		// the schema and the Go type.
		return nil, wrapErr(purpose, &llm.ErrInvalidResponse{Content: resp.Content, Err: err})
	}
	return &out, nil
}
