// Package topic defines the static reference data a session is run against:
// a biology topic aligned to a Georgia Standard, its expected concepts, and
// the misconceptions commonly seen for it.
package topic

import "github.com/ChenMel27/adaptive-recall-engine/internal/concepts"

// Topic is immutable reference data, seeded once and read-only afterwards.
type Topic struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Standard    string `json:"standard"`
	Description string `json:"description"`

	// ExpectedConcepts is what a student should know for this topic.
	ExpectedConcepts []string `json:"expected_concepts"`

	// CommonMisconceptions are known wrong beliefs the judge watches for.
	CommonMisconceptions []string `json:"common_misconceptions"`
}

// Expected returns the expected concepts as a normalized set.
func (t *Topic) Expected() concepts.Set {
	return concepts.FromList(t.ExpectedConcepts)
}
