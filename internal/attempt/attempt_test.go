package attempt

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChenMel27/adaptive-recall-engine/internal/concepts"
)

var cellConcepts = concepts.FromList([]string{"cell membrane", "mitochondria", "nucleus", "ribosome"})

func boolPtr(b bool) *bool { return &b }

func TestNewBrainDumpStartsWithFullMissingSet(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeBrainDump, cellConcepts, time.Now())

	assert.Equal(t, StatusActive, a.Status)
	assert.True(t, a.ConceptsSeeded)
	assert.Equal(t, 4, a.Missing.Size())
	assert.Equal(t, 0, a.Demonstrated.Size())
	assert.Equal(t, 0, a.TurnCount)
}

func TestNewNotesQuizStartsUnseeded(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeNotesQuiz, cellConcepts, time.Now())

	assert.False(t, a.ConceptsSeeded)
	assert.Equal(t, 0, a.Missing.Size())
}

func TestNewTurnSequencesAndCounts(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeBrainDump, cellConcepts, time.Now())

	t1, err := a.NewTurn("turn1", "prompt", "response", json.RawMessage(`{}`), nil, time.Now())
	require.NoError(t, err)
	t2, err := a.NewTurn("turn2", "prompt", "response", json.RawMessage(`{}`), boolPtr(true), time.Now())
	require.NoError(t, err)
	t3, err := a.NewTurn("turn3", "prompt", "response", json.RawMessage(`{}`), boolPtr(false), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 1, t1.Seq)
	assert.Equal(t, 2, t2.Seq)
	assert.Equal(t, 3, t3.Seq)
	assert.Equal(t, 3, a.TurnCount)

	// Only the explicitly-correct turn counted.
	assert.Equal(t, 1, a.CorrectFollowups)
}

func TestNewTurnRejectedAfterTerminal(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeBrainDump, cellConcepts, time.Now())
	require.NoError(t, a.Transition(StatusOptedOut, time.Now()))

	_, err := a.NewTurn("turn1", "p", "r", nil, nil, time.Now())

	var terminal *ErrTerminalAttempt
	require.ErrorAs(t, err, &terminal)
	assert.Equal(t, StatusOptedOut, terminal.Status)
	assert.Equal(t, 0, a.TurnCount)
}

func TestMergeEvidenceRecomputesMissing(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeBrainDump, cellConcepts, time.Now())

	a.MergeEvidence(concepts.FromList([]string{"cell membrane", "mitochondria"}), cellConcepts)
	assert.Equal(t, []string{"nucleus", "ribosome"}, a.Missing.Values())

	// Demonstrated never shrinks, even if a later judgment omits a concept.
	a.MergeEvidence(concepts.FromList([]string{"nucleus"}), cellConcepts)
	assert.Equal(t, 3, a.Demonstrated.Size())
	assert.Equal(t, []string{"ribosome"}, a.Missing.Values())
}

func TestMergeMisconceptionsOnlyExplicitCorrectionClears(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeBrainDump, cellConcepts, time.Now())

	a.MergeMisconceptions(concepts.FromList([]string{"cells are flat", "cell wall is the membrane"}), concepts.Set{})
	assert.Equal(t, 2, a.Misconceptions.Size())

	// A later judgment that simply doesn't mention a misconception leaves it flagged.
	a.MergeMisconceptions(concepts.Set{}, concepts.Set{})
	assert.Equal(t, 2, a.Misconceptions.Size())

	// Explicit correction clears it.
	a.MergeMisconceptions(concepts.Set{}, concepts.FromList([]string{"cells are flat"}))
	assert.Equal(t, []string{"cell wall is the membrane"}, a.Misconceptions.Values())
}

func TestSeedFromNotes(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeNotesQuiz, cellConcepts, time.Now())

	a.SeedFromNotes(
		concepts.FromList([]string{"cell membrane"}),
		concepts.FromList([]string{"nucleus", "ribosome"}),
		concepts.FromList([]string{"cells are flat"}),
	)

	assert.True(t, a.ConceptsSeeded)
	assert.Equal(t, 1, a.Demonstrated.Size())
	assert.Equal(t, 2, a.Missing.Size())
	assert.Equal(t, 1, a.Misconceptions.Size())
}

func TestMergeQuizEvidenceShrinksSeededMissing(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeNotesQuiz, cellConcepts, time.Now())
	a.SeedFromNotes(concepts.Set{}, concepts.FromList([]string{"nucleus", "ribosome"}), concepts.Set{})

	a.MergeQuizEvidence(concepts.FromList([]string{"nucleus"}))

	assert.Equal(t, []string{"ribosome"}, a.Missing.Values())
	assert.True(t, a.Demonstrated.Contains("nucleus"))
}

func TestTransitionIsOneWay(t *testing.T) {
	a := New("a1", "t1", "Maya", ModeBrainDump, cellConcepts, time.Now())

	require.NoError(t, a.Transition(StatusMastery, time.Now()))
	err := a.Transition(StatusMaxTurns, time.Now())

	var terminal *ErrTerminalAttempt
	require.ErrorAs(t, err, &terminal)
	assert.Equal(t, StatusMastery, a.Status)
}
