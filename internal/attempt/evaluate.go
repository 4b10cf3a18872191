package attempt

// Thresholds are the end-condition knobs. Passed explicitly so tests can
// exercise boundary values without touching process-wide configuration.
type Thresholds struct {
	// MaxTurns caps the session length.
	MaxTurns int `yaml:"max_turns"`

	// MasteryMaxMissing is the largest missing-concept count that still
	// counts as mastery.
	MasteryMaxMissing int `yaml:"mastery_max_missing"`

	// MasteryMaxMisconceptions is the largest open-misconception count
	// that still counts as mastery.
	MasteryMaxMisconceptions int `yaml:"mastery_max_misconceptions"`

	// MasteryMinCorrect is the number of correctly answered follow-ups
	// required for mastery.
	MasteryMinCorrect int `yaml:"mastery_min_correct"`
}

// DefaultThresholds returns the documented defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MaxTurns:                 6,
		MasteryMaxMissing:        2,
		MasteryMaxMisconceptions: 0,
		MasteryMinCorrect:        2,
	}
}

// Evaluate maps the attempt state to its status after a completed turn.
// Pure: no side effects, no I/O. Checks run in fixed priority order:
// mastery before the turn cap, so meeting both resolves to mastery.
//
// An attempt whose concept sets were never seeded (quiz mode before notes
// processing) can never reach mastery: unknown missing is not zero missing.
func Evaluate(a *Attempt, th Thresholds) Status {
	if a.Status.Terminal() {
		return a.Status
	}

	if a.ConceptsSeeded &&
		a.Missing.Size() <= th.MasteryMaxMissing &&
		a.Misconceptions.Size() <= th.MasteryMaxMisconceptions &&
		a.CorrectFollowups >= th.MasteryMinCorrect {
		return StatusMastery
	}

	if a.TurnCount >= th.MaxTurns {
		return StatusMaxTurns
	}

	return StatusActive
}

// EvaluateQuizExhausted resolves the status when the pre-generated question
// list runs out. Mastery still takes priority; otherwise the session ends
// as quiz_exhausted, a terminal outcome distinct from max_turns.
func EvaluateQuizExhausted(a *Attempt, th Thresholds) Status {
	s := Evaluate(a, th)
	if s == StatusActive {
		return StatusQuizExhausted
	}
	return s
}
