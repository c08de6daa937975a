package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRosterValidate(t *testing.T) {
	assert.ErrorIs(t, Roster{}.Validate(), ErrEmptyRoster)

	dup := Roster{{Name: "Ana Alves"}, {Name: "Bruno Braga"}, {Name: "Ana Alves"}}
	assert.ErrorIs(t, dup.Validate(), ErrDuplicateRoster)

	assert.NoError(t, testRoster().Validate())
}

// TestMatchRosterEntry covers the fuzzy lookup policy: case-insensitive
// substring containment, first match in roster order. Event summaries carry
// first names only, so this is what resolves them back to full entries.
func TestMatchRosterEntry(t *testing.T) {
	roster := testRoster()

	tests := []struct {
		name          string
		member        string
		expectedIndex int
	}{
		{"Full name", "Carol Chen", 2},
		{"First name only", "Dmitri", 3},
		{"Case insensitive", "elena", 4},
		{"Substring of surname", "Obi", 6},
		{"First match wins on shared substring", "an", 0}, // "Ana Alves" before "Farid Khan"
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i, err := MatchRosterEntry(roster, tt.member)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedIndex, i)
		})
	}

	_, err := MatchRosterEntry(roster, "Zoe")
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

// TestNextAssignee verifies the wraparound arithmetic that drives the whole
// rotation: index (i + 1 + offset) mod len(roster).
func TestNextAssignee(t *testing.T) {
	roster := testRoster()

	tests := []struct {
		name     string
		current  string
		offset   int
		expected string
	}{
		{"Simple successor", "Bruno", 0, "Carol Chen"},
		{"Offset skips ahead", "Bruno", 3, "Farid Khan"},
		{"Offset wraps past the end", "Bruno", 5, "Ana Alves"},
		{"Last member hands over to the first", "Grace", 0, "Ana Alves"},
		{"Offset of a full cycle lands back on the successor", "Bruno", 7, "Carol Chen"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextAssignee(roster, tt.current, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, next.Name)
		})
	}
}

func TestNextAssignee_Errors(t *testing.T) {
	_, err := NextAssignee(Roster{}, "Ana", 0)
	assert.ErrorIs(t, err, ErrEmptyRoster)

	_, err = NextAssignee(testRoster(), "Zoe", 0)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}
