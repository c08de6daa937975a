package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tartampluch/go-teamroles/internal/engine"
)

// TestSortAndDedupe verifies the two properties the rotation engine needs
// from a roster: deterministic alphabetical order and no duplicate names.
func TestSortAndDedupe(t *testing.T) {
	input := engine.Roster{
		{Name: "Carol Chen", ID: "U003"},
		{Name: "Ana Alves", ID: "U001"},
		{Name: "Bruno Braga", ID: "U002"},
		{Name: "Ana Alves", ID: "U009"},
	}

	result := sortAndDedupe(input)

	expected := engine.Roster{
		{Name: "Ana Alves", ID: "U001"},
		{Name: "Bruno Braga", ID: "U002"},
		{Name: "Carol Chen", ID: "U003"},
	}
	assert.Equal(t, expected, result, "sorted by name, duplicates dropped keeping the first occurrence")
}

func TestSortAndDedupe_Empty(t *testing.T) {
	assert.Empty(t, sortAndDedupe(nil))
}
