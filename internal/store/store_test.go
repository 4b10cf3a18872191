package store

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/concepts"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

var testTime = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func seededStore(t *testing.T) *Memory {
	t.Helper()
	s := NewMemory()
	require.NoError(t, s.SeedTopics(context.Background(), topic.Catalog))
	return s
}

func newTestAttempt(t *testing.T, s Store) *attempt.Attempt {
	t.Helper()
	expected := concepts.FromList([]string{"cell membrane", "nucleus"})
	a := attempt.New("att-1", topic.Catalog[0].ID, "Jordan", attempt.ModeBrainDump, expected, testTime)
	require.NoError(t, s.CreateAttempt(context.Background(), a))
	return a
}

func TestSeedTopicsIdempotent(t *testing.T) {
	s := seededStore(t)
	require.NoError(t, s.SeedTopics(context.Background(), topic.Catalog))

	topics, err := s.ListTopics(context.Background())
	require.NoError(t, err)
	assert.Len(t, topics, len(topic.Catalog))
}

func TestGetTopicNotFound(t *testing.T) {
	s := seededStore(t)

	_, err := s.GetTopic(context.Background(), "no-such-topic")

	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "topic", notFound.Kind)
}

func TestAttemptRoundTrip(t *testing.T) {
	s := seededStore(t)
	a := newTestAttempt(t, s)

	got, err := s.GetAttempt(context.Background(), a.ID)

	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.Equal(t, attempt.StatusActive, got.Status)
	assert.True(t, got.Missing.Equal(concepts.FromList([]string{"cell membrane", "nucleus"})))
}

func TestAppendTurnPersistsAttemptAndTurnTogether(t *testing.T) {
	s := seededStore(t)
	a := newTestAttempt(t, s)

	a.MergeEvidence(concepts.FromList([]string{"cell membrane"}), a.Missing.Union(a.Demonstrated))
	turn, err := a.NewTurn("turn-1", "Tell me everything.", "membranes control entry",
		json.RawMessage(`{"ok":true}`), nil, testTime)
	require.NoError(t, err)

	require.NoError(t, s.AppendTurn(context.Background(), a, turn))

	got, err := s.GetAttempt(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TurnCount)
	assert.True(t, got.Demonstrated.Contains("cell membrane"))

	turns, err := s.ListTurns(context.Background(), a.ID)
	require.NoError(t, err)
	require.Len(t, turns, 1)
	assert.Equal(t, 1, turns[0].Seq)
	assert.JSONEq(t, `{"ok":true}`, string(turns[0].Judgment))
}

func TestAppendTurnRejectsSequenceGap(t *testing.T) {
	s := seededStore(t)
	a := newTestAttempt(t, s)

	// Turn numbered as if a previous one had already landed.
	turn := &attempt.Turn{ID: "turn-2", AttemptID: a.ID, Seq: 2, CreatedAt: testTime}
	a.TurnCount = 2

	err := s.AppendTurn(context.Background(), a, turn)

	var seq *attempt.ErrSequence
	require.ErrorAs(t, err, &seq)
	assert.Equal(t, 1, seq.Want)
	assert.Equal(t, 2, seq.Got)

	turns, _ := s.ListTurns(context.Background(), a.ID)
	assert.Empty(t, turns, "rejected turn must not be stored")
}

func TestNoteUploadRoundTrip(t *testing.T) {
	s := seededStore(t)
	a := newTestAttempt(t, s)

	upload := &NoteUpload{
		ID:        "upl-1",
		AttemptID: a.ID,
		Filename:  "cells.pdf",
		Text:      "the nucleus stores DNA",
		Analysis: judge.NotesAnalysis{
			Covered: []string{"nucleus"},
			Missing: []string{"cell membrane"},
		},
		Questions: []judge.QuizQuestion{
			{Question: "What does the membrane do?", TargetConcept: "cell membrane", Hint: "Think gates."},
		},
		CreatedAt: testTime,
	}
	a.SeedFromNotes(
		concepts.FromList([]string{"nucleus"}),
		concepts.FromList([]string{"cell membrane"}),
		concepts.Set{},
	)
	require.NoError(t, s.SaveNoteUpload(context.Background(), upload, a))

	got, err := s.GetNoteUpload(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, "cells.pdf", got.Filename)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, "cell membrane", got.Questions[0].TargetConcept)

	stored, err := s.GetAttempt(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, stored.ConceptsSeeded, "seeded state must persist with the upload")
	assert.True(t, stored.Missing.Equal(concepts.FromList([]string{"cell membrane"})))
}

func TestSaveNoteUploadUnknownAttempt(t *testing.T) {
	s := seededStore(t)
	expected := concepts.FromList([]string{"x"})
	ghost := attempt.New("no-such-attempt", topic.Catalog[0].ID, "Sam", attempt.ModeNotesQuiz, expected, testTime)

	err := s.SaveNoteUpload(context.Background(), &NoteUpload{ID: "upl-x", AttemptID: ghost.ID}, ghost)

	var notFound *ErrNotFound
	require.ErrorAs(t, err, &notFound)
	_, err = s.GetNoteUpload(context.Background(), ghost.ID)
	require.ErrorAs(t, err, &notFound, "failed save must not leave an upload behind")
}

func TestStatsCountsByStatusAndMode(t *testing.T) {
	s := seededStore(t)
	expected := concepts.FromList([]string{"x"})

	a1 := attempt.New("a1", topic.Catalog[0].ID, "P1", attempt.ModeBrainDump, expected, testTime)
	require.NoError(t, s.CreateAttempt(context.Background(), a1))
	require.NoError(t, a1.Transition(attempt.StatusMastery, testTime))
	require.NoError(t, s.UpdateAttempt(context.Background(), a1))

	a2 := attempt.New("a2", topic.Catalog[0].ID, "P2", attempt.ModeNotesQuiz, expected, testTime)
	require.NoError(t, s.CreateAttempt(context.Background(), a2))

	stats, err := s.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalAttempts)
	assert.Equal(t, int64(1), stats.MasteryCount)
	assert.Equal(t, int64(1), stats.ByStatus[attempt.StatusActive])
	assert.Equal(t, int64(1), stats.ByMode[attempt.ModeNotesQuiz])
}

func TestModelRoundTripThroughRecords(t *testing.T) {
	expected := concepts.FromList([]string{"cell membrane", "nucleus", "ribosome"})
	a := attempt.New("att-rt", "cells", "Sam", attempt.ModeBrainDump, expected, testTime)
	a.MergeEvidence(concepts.FromList([]string{"Nucleus"}), expected)

	rec, err := toAttemptRecord(a)
	require.NoError(t, err)
	back, err := rec.toDomain()
	require.NoError(t, err)

	assert.Equal(t, a.ID, back.ID)
	assert.True(t, back.Demonstrated.Contains("nucleus"))
	assert.True(t, back.Missing.Equal(a.Missing))
	assert.Equal(t, a.ConceptsSeeded, back.ConceptsSeeded)
}
