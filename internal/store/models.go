package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/concepts"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

type topicRecord struct {
	ID                   string `gorm:"primaryKey"`
	Name                 string
	Standard             string
	Description          string
	ExpectedConcepts     datatypes.JSON
	CommonMisconceptions datatypes.JSON
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (topicRecord) TableName() string { return "topics" }

type attemptRecord struct {
	ID               string `gorm:"primaryKey"`
	TopicID          string `gorm:"index"`
	StudentName      string
	Mode             string `gorm:"index"`
	Status           string `gorm:"index"`
	TurnCount        int
	CorrectFollowups int
	Demonstrated     datatypes.JSON
	Missing          datatypes.JSON
	Misconceptions   datatypes.JSON
	ConceptsSeeded   bool
	CreatedAt        time.Time `gorm:"index"`
	UpdatedAt        time.Time
}

func (attemptRecord) TableName() string { return "attempts" }

type turnRecord struct {
	ID        string `gorm:"primaryKey"`
	AttemptID string `gorm:"uniqueIndex:idx_turns_attempt_seq"`
	Seq       int    `gorm:"uniqueIndex:idx_turns_attempt_seq"`
	Prompt    string
	Response  string
	Judgment  datatypes.JSON
	IsCorrect *bool
	CreatedAt time.Time
}

func (turnRecord) TableName() string { return "turns" }

type noteUploadRecord struct {
	ID        string `gorm:"primaryKey"`
	AttemptID string `gorm:"uniqueIndex"`
	Filename  string
	Text      string
	Analysis  datatypes.JSON
	Questions datatypes.JSON
	CreatedAt time.Time
}

func (noteUploadRecord) TableName() string { return "note_uploads" }

func toTopicRecord(t topic.Topic, now time.Time) (*topicRecord, error) {
	expected, err := json.Marshal(t.ExpectedConcepts)
	if err != nil {
		return nil, fmt.Errorf("encoding expected concepts: %w", err)
	}
	misconceptions, err := json.Marshal(t.CommonMisconceptions)
	if err != nil {
		return nil, fmt.Errorf("encoding common misconceptions: %w", err)
	}
	return &topicRecord{
		ID:                   t.ID,
		Name:                 t.Name,
		Standard:             t.Standard,
		Description:          t.Description,
		ExpectedConcepts:     datatypes.JSON(expected),
		CommonMisconceptions: datatypes.JSON(misconceptions),
		UpdatedAt:            now,
	}, nil
}

func (r *topicRecord) toDomain() (*topic.Topic, error) {
	t := &topic.Topic{
		ID:          r.ID,
		Name:        r.Name,
		Standard:    r.Standard,
		Description: r.Description,
	}
	if err := json.Unmarshal(r.ExpectedConcepts, &t.ExpectedConcepts); err != nil {
		return nil, fmt.Errorf("decoding expected concepts for topic %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.CommonMisconceptions, &t.CommonMisconceptions); err != nil {
		return nil, fmt.Errorf("decoding common misconceptions for topic %s: %w", r.ID, err)
	}
	return t, nil
}

func toAttemptRecord(a *attempt.Attempt) (*attemptRecord, error) {
	demonstrated, err := json.Marshal(a.Demonstrated)
	if err != nil {
		return nil, fmt.Errorf("encoding demonstrated concepts: %w", err)
	}
	missing, err := json.Marshal(a.Missing)
	if err != nil {
		return nil, fmt.Errorf("encoding missing concepts: %w", err)
	}
	misconceptions, err := json.Marshal(a.Misconceptions)
	if err != nil {
		return nil, fmt.Errorf("encoding misconceptions: %w", err)
	}
	return &attemptRecord{
		ID:               a.ID,
		TopicID:          a.TopicID,
		StudentName:      a.StudentName,
		Mode:             string(a.Mode),
		Status:           string(a.Status),
		TurnCount:        a.TurnCount,
		CorrectFollowups: a.CorrectFollowups,
		Demonstrated:     datatypes.JSON(demonstrated),
		Missing:          datatypes.JSON(missing),
		Misconceptions:   datatypes.JSON(misconceptions),
		ConceptsSeeded:   a.ConceptsSeeded,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}, nil
}

func (r *attemptRecord) toDomain() (*attempt.Attempt, error) {
	a := &attempt.Attempt{
		ID:               r.ID,
		TopicID:          r.TopicID,
		StudentName:      r.StudentName,
		Mode:             attempt.Mode(r.Mode),
		Status:           attempt.Status(r.Status),
		TurnCount:        r.TurnCount,
		CorrectFollowups: r.CorrectFollowups,
		ConceptsSeeded:   r.ConceptsSeeded,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
	for _, f := range []struct {
		raw  datatypes.JSON
		dst  *concepts.Set
		name string
	}{
		{r.Demonstrated, &a.Demonstrated, "demonstrated"},
		{r.Missing, &a.Missing, "missing"},
		{r.Misconceptions, &a.Misconceptions, "misconceptions"},
	} {
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return nil, fmt.Errorf("decoding %s concepts for attempt %s: %w", f.name, r.ID, err)
		}
	}
	return a, nil
}

func toTurnRecord(t *attempt.Turn) *turnRecord {
	return &turnRecord{
		ID:        t.ID,
		AttemptID: t.AttemptID,
		Seq:       t.Seq,
		Prompt:    t.Prompt,
		Response:  t.Response,
		Judgment:  datatypes.JSON(t.Judgment),
		IsCorrect: t.IsCorrect,
		CreatedAt: t.CreatedAt,
	}
}

func (r *turnRecord) toDomain() attempt.Turn {
	return attempt.Turn{
		ID:        r.ID,
		AttemptID: r.AttemptID,
		Seq:       r.Seq,
		Prompt:    r.Prompt,
		Response:  r.Response,
		Judgment:  json.RawMessage(r.Judgment),
		IsCorrect: r.IsCorrect,
		CreatedAt: r.CreatedAt,
	}
}

func toNoteUploadRecord(u *NoteUpload) (*noteUploadRecord, error) {
	analysis, err := json.Marshal(u.Analysis)
	if err != nil {
		return nil, fmt.Errorf("encoding notes analysis: %w", err)
	}
	questions, err := json.Marshal(u.Questions)
	if err != nil {
		return nil, fmt.Errorf("encoding quiz questions: %w", err)
	}
	return &noteUploadRecord{
		ID:        u.ID,
		AttemptID: u.AttemptID,
		Filename:  u.Filename,
		Text:      u.Text,
		Analysis:  datatypes.JSON(analysis),
		Questions: datatypes.JSON(questions),
		CreatedAt: u.CreatedAt,
	}, nil
}

func (r *noteUploadRecord) toDomain() (*NoteUpload, error) {
	u := &NoteUpload{
		ID:        r.ID,
		AttemptID: r.AttemptID,
		Filename:  r.Filename,
		Text:      r.Text,
		CreatedAt: r.CreatedAt,
	}
	if err := json.Unmarshal(r.Analysis, &u.Analysis); err != nil {
		return nil, fmt.Errorf("decoding notes analysis for upload %s: %w", r.ID, err)
	}
	if err := json.Unmarshal(r.Questions, &u.Questions); err != nil {
		return nil, fmt.Errorf("decoding quiz questions for upload %s: %w", r.ID, err)
	}
	if u.Questions == nil {
		u.Questions = []judge.QuizQuestion{}
	}
	return u, nil
}
