package attempt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ChenMel27/adaptive-recall-engine/internal/concepts"
)

func seededAttempt(missing, misconceptions []string, correct, turns int) *Attempt {
	a := New("a1", "t1", "Student", ModeBrainDump, concepts.FromList(missing), time.Now())
	a.Misconceptions = concepts.FromList(misconceptions)
	a.CorrectFollowups = correct
	a.TurnCount = turns
	return a
}

func TestEvaluateTable(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		name    string
		attempt *Attempt
		want    Status
	}{
		{
			name:    "fresh attempt stays active",
			attempt: seededAttempt([]string{"a", "b", "c", "d"}, nil, 0, 0),
			want:    StatusActive,
		},
		{
			name:    "mastery at exact boundaries",
			attempt: seededAttempt([]string{"a", "b"}, nil, 2, 3),
			want:    StatusMastery,
		},
		{
			name:    "one missing concept too many",
			attempt: seededAttempt([]string{"a", "b", "c"}, nil, 2, 3),
			want:    StatusActive,
		},
		{
			name:    "open misconception blocks mastery",
			attempt: seededAttempt([]string{"a"}, []string{"wrong idea"}, 2, 3),
			want:    StatusActive,
		},
		{
			name:    "too few correct follow-ups",
			attempt: seededAttempt(nil, nil, 1, 3),
			want:    StatusActive,
		},
		{
			name:    "turn cap reached",
			attempt: seededAttempt([]string{"a", "b", "c", "d"}, nil, 0, 6),
			want:    StatusMaxTurns,
		},
		{
			name:    "mastery takes priority over turn cap",
			attempt: seededAttempt([]string{"a", "b"}, nil, 2, 6),
			want:    StatusMastery,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.attempt, th))
		})
	}
}

func TestEvaluateUnseededNeverMasters(t *testing.T) {
	// Quiz-mode attempt before notes processing: missing is unknown, and an
	// empty set must not be read as "nothing missing".
	a := New("a1", "t1", "Student", ModeNotesQuiz, concepts.Set{}, time.Now())
	a.CorrectFollowups = 5

	assert.Equal(t, StatusActive, Evaluate(a, DefaultThresholds()))
}

func TestEvaluateTerminalIsSticky(t *testing.T) {
	a := seededAttempt(nil, nil, 2, 3)
	a.Status = StatusOptedOut

	assert.Equal(t, StatusOptedOut, Evaluate(a, DefaultThresholds()))
}

func TestEvaluateCustomThresholds(t *testing.T) {
	th := Thresholds{MaxTurns: 2, MasteryMaxMissing: 0, MasteryMaxMisconceptions: 1, MasteryMinCorrect: 1}

	a := seededAttempt(nil, []string{"one wrong idea"}, 1, 1)
	assert.Equal(t, StatusMastery, Evaluate(a, th))

	a = seededAttempt([]string{"gap"}, nil, 1, 2)
	assert.Equal(t, StatusMaxTurns, Evaluate(a, th))
}

func TestEvaluateQuizExhausted(t *testing.T) {
	th := DefaultThresholds()

	// Questions ran out without mastery.
	a := seededAttempt([]string{"a", "b", "c"}, nil, 1, 4)
	assert.Equal(t, StatusQuizExhausted, EvaluateQuizExhausted(a, th))

	// Mastery still wins when both hold.
	a = seededAttempt([]string{"a"}, nil, 3, 4)
	assert.Equal(t, StatusMastery, EvaluateQuizExhausted(a, th))
}
