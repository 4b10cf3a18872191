package judge

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChenMel27/adaptive-recall-engine/internal/llm"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

func cellTopic() topic.Topic {
	return topic.Topic{
		ID:       "cells",
		Name:     "Cell Structure and Function",
		Standard: "S7L2",
		ExpectedConcepts: []string{
			"cell membrane", "nucleus", "mitochondria", "ribosome",
		},
		CommonMisconceptions: []string{
			"All cells have a cell wall",
		},
	}
}

func validJudgmentJSON() json.RawMessage {
	return json.RawMessage(`{
		"demonstrated_concepts": ["cell membrane", "mitochondria"],
		"missing_concepts": ["nucleus", "ribosome"],
		"misconceptions": [{"claim": "all cells have walls", "correction": "Only plant cells, fungi, and bacteria have cell walls."}],
		"corrected_misconceptions": [],
		"overall_feedback": "Nice start!",
		"follow_up_question": "What does the nucleus do?",
		"is_correct": null
	}`)
}

func TestJudgeBrainDumpParsesJudgment(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: validJudgmentJSON()})
	a := NewLLMAdapter(mock)

	j, err := a.JudgeBrainDump(context.Background(), cellTopic(), "cells have a membrane and mitochondria make energy")

	require.NoError(t, err)
	assert.Equal(t, []string{"cell membrane", "mitochondria"}, j.Demonstrated)
	assert.Equal(t, []string{"nucleus", "ribosome"}, j.Missing)
	require.Len(t, j.Misconceptions, 1)
	assert.Equal(t, "all cells have walls", j.Misconceptions[0].Claim)
	assert.Nil(t, j.IsCorrect)
	assert.Equal(t, "What does the nucleus do?", j.FollowUpQuestion)
}

func TestJudgeBrainDumpRejectsMalformedResponse(t *testing.T) {
	// Missing required fields: the mock validates against the request schema
	// exactly like a real provider wrapper would.
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"demonstrated_concepts": []}`)})
	a := NewLLMAdapter(mock)

	_, err := a.JudgeBrainDump(context.Background(), cellTopic(), "hi")

	var collab *ErrCollaborator
	require.ErrorAs(t, err, &collab)
	var invalid *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestAdapterWrapsProviderFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	a := NewLLMAdapter(mock)

	_, err := a.JudgeBrainDump(context.Background(), cellTopic(), "hi")

	var collab *ErrCollaborator
	require.ErrorAs(t, err, &collab)
	assert.Equal(t, "brain-dump", collab.Op)
}

func TestAdapterClassifiesDeadlineAsTimeout(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: context.DeadlineExceeded})
	a := NewLLMAdapter(mock)

	_, err := a.Summarize(context.Background(), cellTopic(), SummaryInput{})

	var timeout *ErrCollaboratorTimeout
	require.ErrorAs(t, err, &timeout)
	assert.Equal(t, "summary", timeout.Op)
}

func TestGenerateQuizUnwrapsQuestions(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{
		"questions": [
			{"question": "What does the nucleus do?", "target_concept": "nucleus", "hint": "Think about instructions."},
			{"question": "Where are proteins made?", "target_concept": "ribosome", "hint": "Tiny structures."},
			{"question": "Do all cells have walls?", "target_concept": "cell membrane", "hint": "Think about animal cells."}
		]
	}`)})
	a := NewLLMAdapter(mock)

	qs, err := a.GenerateQuiz(context.Background(), cellTopic(), NotesAnalysis{Missing: []string{"nucleus", "ribosome"}}, 3)

	require.NoError(t, err)
	require.Len(t, qs, 3)
	assert.Equal(t, "nucleus", qs[0].TargetConcept)
}

func TestBrainDumpPromptCarriesTopicContext(t *testing.T) {
	msg := buildBrainDumpUserMessage(cellTopic(), "my brain dump text")

	assert.Contains(t, msg, "Cell Structure and Function")
	assert.Contains(t, msg, "S7L2")
	assert.Contains(t, msg, "- cell membrane")
	assert.Contains(t, msg, "- All cells have a cell wall")
	assert.Contains(t, msg, "my brain dump text")
}

func TestFollowUpPromptRendersHistoryAndOpenMisconceptions(t *testing.T) {
	history := []Exchange{
		{Prompt: "Tell me everything you remember.", Response: "cells have membranes"},
		{Prompt: "What does the nucleus do?", Response: "it stores DNA"},
	}

	msg := buildFollowUpUserMessage(cellTopic(), history, "ribosomes make proteins", []string{"all cells have walls"})

	assert.Contains(t, msg, "Tutor: What does the nucleus do?")
	assert.Contains(t, msg, "Student: it stores DNA")
	assert.Contains(t, msg, "- all cells have walls")
	assert.Contains(t, msg, "ribosomes make proteins")
}

func TestNotesPromptTruncatesLongNotes(t *testing.T) {
	long := make([]byte, notesTruncateLimit*2)
	for i := range long {
		long[i] = 'a'
	}

	msg := buildNotesUserMessage(cellTopic(), string(long))

	assert.Less(t, len(msg), notesTruncateLimit+1000)
}

func TestScriptedAdapterConsumesFIFO(t *testing.T) {
	correct := true
	s := &ScriptedAdapter{
		Judgments: []ScriptedResult[Judgment]{
			{Value: Judgment{Demonstrated: []string{"nucleus"}, IsCorrect: &correct}},
		},
	}

	j, err := s.JudgeFollowUp(context.Background(), cellTopic(), nil, "answer", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"nucleus"}, j.Demonstrated)

	_, err = s.JudgeFollowUp(context.Background(), cellTopic(), nil, "answer", nil)
	var collab *ErrCollaborator
	require.ErrorAs(t, err, &collab)
	assert.Equal(t, 2, s.CallCount())
}
