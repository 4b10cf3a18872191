// Package concepts provides the normalized concept-identifier set used to
// track what a student has demonstrated, what is still missing, and which
// misconceptions are in play.
package concepts

import (
	"encoding/json"
	"sort"
	"strings"
)

// Set is an immutable, deduplicated collection of concept identifiers.
// Identifiers are normalized on entry: lowercased, inner whitespace collapsed,
// outer whitespace trimmed. Empty identifiers are dropped.
//
// The zero value is an empty set and is safe to use.
type Set struct {
	members map[string]struct{}
}

// Normalize canonicalizes a concept identifier. Returns "" for identifiers
// that are empty or whitespace-only.
func Normalize(id string) string {
	return strings.ToLower(strings.Join(strings.Fields(id), " "))
}

// FromList builds a Set from raw identifiers, normalizing and deduplicating.
func FromList(ids []string) Set {
	members := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		n := Normalize(id)
		if n == "" {
			continue
		}
		members[n] = struct{}{}
	}
	return Set{members: members}
}

// Union returns a new Set containing members of both sets.
func (s Set) Union(other Set) Set {
	members := make(map[string]struct{}, len(s.members)+len(other.members))
	for m := range s.members {
		members[m] = struct{}{}
	}
	for m := range other.members {
		members[m] = struct{}{}
	}
	return Set{members: members}
}

// Difference returns a new Set with members of s that are not in other.
func (s Set) Difference(other Set) Set {
	members := make(map[string]struct{}, len(s.members))
	for m := range s.members {
		if _, ok := other.members[m]; !ok {
			members[m] = struct{}{}
		}
	}
	return Set{members: members}
}

// Contains reports whether the set holds the given identifier.
// The identifier is normalized before the membership test.
func (s Set) Contains(id string) bool {
	_, ok := s.members[Normalize(id)]
	return ok
}

// Size returns the number of members.
func (s Set) Size() int {
	return len(s.members)
}

// Values returns the members in sorted order.
func (s Set) Values() []string {
	out := make([]string, 0, len(s.members))
	for m := range s.members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Equal reports whether both sets have identical membership.
func (s Set) Equal(other Set) bool {
	if len(s.members) != len(other.members) {
		return false
	}
	for m := range s.members {
		if _, ok := other.members[m]; !ok {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the set as a sorted JSON array of strings.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

// UnmarshalJSON decodes a JSON array of strings, normalizing members.
func (s *Set) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = FromList(ids)
	return nil
}
