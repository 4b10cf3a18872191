package store

import (
	"context"
	"sort"
	"sync"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/topic"
)

// Memory is an in-memory Store for tests and local development. It enforces
// the same sequence invariant as the database-backed implementation.
type Memory struct {
	mu       sync.RWMutex
	topics   map[string]topic.Topic
	attempts map[string]attempt.Attempt
	turns    map[string][]attempt.Turn
	uploads  map[string]NoteUpload
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		topics:   make(map[string]topic.Topic),
		attempts: make(map[string]attempt.Attempt),
		turns:    make(map[string][]attempt.Turn),
		uploads:  make(map[string]NoteUpload),
	}
}

func (m *Memory) SeedTopics(_ context.Context, topics []topic.Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range topics {
		m.topics[t.ID] = t
	}
	return nil
}

func (m *Memory) ListTopics(_ context.Context) ([]topic.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]topic.Topic, 0, len(m.topics))
	for _, t := range m.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Standard != out[j].Standard {
			return out[i].Standard < out[j].Standard
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *Memory) GetTopic(_ context.Context, id string) (*topic.Topic, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.topics[id]
	if !ok {
		return nil, &ErrNotFound{Kind: "topic", ID: id}
	}
	return &t, nil
}

func (m *Memory) CreateAttempt(_ context.Context, a *attempt.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts[a.ID] = *a
	return nil
}

func (m *Memory) GetAttempt(_ context.Context, id string) (*attempt.Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.attempts[id]
	if !ok {
		return nil, &ErrNotFound{Kind: "attempt", ID: id}
	}
	return &a, nil
}

func (m *Memory) UpdateAttempt(_ context.Context, a *attempt.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attempts[a.ID]; !ok {
		return &ErrNotFound{Kind: "attempt", ID: a.ID}
	}
	m.attempts[a.ID] = *a
	return nil
}

func (m *Memory) AppendTurn(_ context.Context, a *attempt.Attempt, turn *attempt.Turn) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.attempts[a.ID]
	if !ok {
		return &ErrNotFound{Kind: "attempt", ID: a.ID}
	}
	if stored.TurnCount != turn.Seq-1 {
		return &attempt.ErrSequence{AttemptID: a.ID, Want: stored.TurnCount + 1, Got: turn.Seq}
	}

	m.turns[a.ID] = append(m.turns[a.ID], *turn)
	m.attempts[a.ID] = *a
	return nil
}

func (m *Memory) ListTurns(_ context.Context, attemptID string) ([]attempt.Turn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	turns := make([]attempt.Turn, len(m.turns[attemptID]))
	copy(turns, m.turns[attemptID])
	return turns, nil
}

func (m *Memory) SaveNoteUpload(_ context.Context, upload *NoteUpload, a *attempt.Attempt) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attempts[a.ID]; !ok {
		return &ErrNotFound{Kind: "attempt", ID: a.ID}
	}
	m.uploads[upload.AttemptID] = *upload
	m.attempts[a.ID] = *a
	return nil
}

func (m *Memory) GetNoteUpload(_ context.Context, attemptID string) (*NoteUpload, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.uploads[attemptID]
	if !ok {
		return nil, &ErrNotFound{Kind: "note upload for attempt", ID: attemptID}
	}
	return &u, nil
}

func (m *Memory) ListRecentAttempts(_ context.Context, limit int) ([]attempt.Attempt, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]attempt.Attempt, 0, len(m.attempts))
	for _, a := range m.attempts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) Stats(_ context.Context) (*Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := &Stats{
		ByStatus: make(map[attempt.Status]int64),
		ByMode:   make(map[attempt.Mode]int64),
	}
	for _, a := range m.attempts {
		stats.TotalAttempts++
		stats.ByStatus[a.Status]++
		stats.ByMode[a.Mode]++
	}
	stats.MasteryCount = stats.ByStatus[attempt.StatusMastery]
	return stats, nil
}

var _ Store = (*Memory)(nil)
var _ Store = (*Gorm)(nil)
