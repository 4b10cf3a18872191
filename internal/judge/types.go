// Package judge is the text-analysis collaborator: it turns raw student
// writing into structured judgments the orchestrator can merge into attempt
// state. All payloads are schema-validated; a malformed response is a
// collaborator failure, never a partial result.
package judge

// Misconception is a specific wrong belief paired with an age-appropriate
// correction.
type Misconception struct {
	Claim      string `json:"claim"`
	Correction string `json:"correction"`
}

// Judgment is the structured outcome of analyzing a brain dump or a
// follow-up answer.
type Judgment struct {
	Demonstrated []string        `json:"demonstrated_concepts"`
	Missing      []string        `json:"missing_concepts"`
	Misconceptions []Misconception `json:"misconceptions"`

	// Corrected names previously-flagged misconceptions this response has
	// explicitly cleared up. Only concepts listed here are unflagged;
	// silence leaves a misconception standing.
	Corrected []string `json:"corrected_misconceptions"`

	OverallFeedback  string `json:"overall_feedback"`
	FollowUpQuestion string `json:"follow_up_question"`

	// IsCorrect is nil for the ungraded initial brain dump.
	IsCorrect *bool `json:"is_correct"`
}

// NotesAnalysis is the concept breakdown extracted from uploaded notes.
type NotesAnalysis struct {
	Covered        []string        `json:"covered_concepts"`
	Missing        []string        `json:"missing_concepts"`
	Misconceptions []Misconception `json:"misconceptions"`
}

// QuizQuestion is one pre-generated short-answer question.
type QuizQuestion struct {
	Question      string `json:"question"`
	TargetConcept string `json:"target_concept"`
	Hint          string `json:"hint"`
}

// AnswerEvaluation grades a single quiz answer.
type AnswerEvaluation struct {
	IsCorrect           bool   `json:"is_correct"`
	Feedback            string `json:"feedback"`
	CorrectAnswer       string `json:"correct_answer"`
	ConceptDemonstrated bool   `json:"concept_demonstrated"`
}

// Summary is the end-of-session wrap-up shown to the student.
type Summary struct {
	SummaryText      string   `json:"summary_text"`
	WhatYouKnowWell  []string `json:"what_you_know_well"`
	WhatToReviewNext []string `json:"what_to_review_next"`
	ReflectionPrompt string   `json:"reflection_prompt"`
}

// SummaryInput is the attempt snapshot the summarizer works from.
type SummaryInput struct {
	Mode           string
	Status         string
	TurnCount      int
	Demonstrated   []string
	Missing        []string
	Misconceptions []string
}
