package concepts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromListNormalizesAndDedupes(t *testing.T) {
	s := FromList([]string{
		"Cell Membrane",
		"cell membrane",
		"  cell   membrane  ",
		"Mitochondria",
	})

	assert.Equal(t, 2, s.Size())
	assert.True(t, s.Contains("cell membrane"))
	assert.True(t, s.Contains("CELL MEMBRANE"))
	assert.True(t, s.Contains("mitochondria"))
}

func TestFromListDropsEmptyIdentifiers(t *testing.T) {
	s := FromList([]string{"", "   ", "\t\n", "nucleus"})
	assert.Equal(t, 1, s.Size())
	assert.Equal(t, []string{"nucleus"}, s.Values())
}

func TestUnion(t *testing.T) {
	a := FromList([]string{"cell membrane", "nucleus"})
	b := FromList([]string{"nucleus", "ribosome"})

	u := a.Union(b)
	assert.Equal(t, []string{"cell membrane", "nucleus", "ribosome"}, u.Values())

	// Operands are unchanged.
	assert.Equal(t, 2, a.Size())
	assert.Equal(t, 2, b.Size())
}

func TestDifference(t *testing.T) {
	expected := FromList([]string{"cell membrane", "mitochondria", "nucleus", "ribosome"})
	demonstrated := FromList([]string{"cell membrane", "mitochondria"})

	missing := expected.Difference(demonstrated)
	assert.Equal(t, []string{"nucleus", "ribosome"}, missing.Values())
}

func TestDifferenceWithSelfIsEmpty(t *testing.T) {
	s := FromList([]string{"a", "b"})
	assert.Equal(t, 0, s.Difference(s).Size())
}

func TestZeroValueIsEmpty(t *testing.T) {
	var s Set
	assert.Equal(t, 0, s.Size())
	assert.False(t, s.Contains("anything"))
	assert.Empty(t, s.Values())
	assert.Equal(t, 1, s.Union(FromList([]string{"x"})).Size())
}

func TestEqual(t *testing.T) {
	a := FromList([]string{"x", "y"})
	b := FromList([]string{"Y", "X"})
	c := FromList([]string{"x"})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestJSONRoundTrip(t *testing.T) {
	s := FromList([]string{"Ribosomes make proteins", "nucleus contains DNA"})

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["nucleus contains dna","ribosomes make proteins"]`, string(data))

	var back Set
	require.NoError(t, json.Unmarshal(data, &back))
	assert.True(t, s.Equal(back))
}
