package session

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ChenMel27/adaptive-recall-engine/internal/attempt"
	"github.com/ChenMel27/adaptive-recall-engine/internal/judge"
)

// GetSummary generates the end-of-session summary. It fails with
// *attempt.ErrNotTerminal while the attempt is active. Concurrent requests
// for the same attempt share one collaborator call; if that call fails, a
// deterministic fallback is built from the attempt state so a finished
// session always has a summary.
func (s *Service) GetSummary(ctx context.Context, attemptID string) (*judge.Summary, error) {
	a, err := s.store.GetAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if !a.Status.Terminal() {
		return nil, &attempt.ErrNotTerminal{AttemptID: a.ID}
	}

	t, err := s.store.GetTopic(ctx, a.TopicID)
	if err != nil {
		return nil, err
	}

	v, err, _ := s.summaries.Do(attemptID, func() (any, error) {
		in := judge.SummaryInput{
			Mode:           string(a.Mode),
			Status:         string(a.Status),
			TurnCount:      a.TurnCount,
			Demonstrated:   a.Demonstrated.Values(),
			Missing:        a.Missing.Values(),
			Misconceptions: a.Misconceptions.Values(),
		}

		sum, err := s.adapter.Summarize(ctx, *t, in)
		if err != nil {
			s.log.Warn("summary generation failed, using fallback",
				zap.String("attempt_id", a.ID), zap.Error(err))
			return fallbackSummary(a, t.Name), nil
		}
		return sum, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*judge.Summary), nil
}

// fallbackSummary is deterministic and built purely from attempt state.
func fallbackSummary(a *attempt.Attempt, topicName string) *judge.Summary {
	known := a.Demonstrated.Values()
	review := a.Missing.Union(a.Misconceptions).Values()

	var b strings.Builder
	b.WriteString(fmt.Sprintf("You worked through %d turns on %s. ", a.TurnCount, topicName))
	switch a.Status {
	case attempt.StatusMastery:
		b.WriteString("You showed a strong grasp of this topic. Great work!")
	case attempt.StatusOptedOut:
		b.WriteString("You chose to stop here, and that is okay. Every bit of practice counts.")
	default:
		b.WriteString("You made real progress, and there are a few ideas left to revisit.")
	}
	if len(known) > 0 {
		b.WriteString(fmt.Sprintf(" You showed understanding of %d concepts.", len(known)))
	}

	return &judge.Summary{
		SummaryText:      b.String(),
		WhatYouKnowWell:  known,
		WhatToReviewNext: review,
		ReflectionPrompt: fmt.Sprintf("What surprised you most while thinking about %s?", topicName),
	}
}
