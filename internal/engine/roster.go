package engine

import (
	"fmt"
	"strings"
)

// RosterEntry is one member of a role's eligible pool.
type RosterEntry struct {
	Name string
	ID   string
}

// Roster is an ordered sequence of members. Order is significant: it
// defines the rotation order. Providers return it alphabetical by display
// name by convention, but the engine only relies on the ordering being
// stable within a run.
type Roster []RosterEntry

// Validate checks the roster is non-empty and free of duplicate names.
func (r Roster) Validate() error {
	if len(r) == 0 {
		return ErrEmptyRoster
	}
	seen := make(map[string]struct{}, len(r))
	for _, entry := range r {
		if _, dup := seen[entry.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateRoster, entry.Name)
		}
		seen[entry.Name] = struct{}{}
	}
	return nil
}

// MatchRosterEntry locates the roster index of a member by case-insensitive
// substring containment, first match in roster order.
//
// This is a deliberately fuzzy policy: event summaries carry first names
// only, so "Jo" must match "Joanna Smith". The flip side is that a first
// name that is a prefix of another member's name ("Jo" vs "John") resolves
// to whichever appears first in roster order. Keep roster names distinct
// enough that first names are unambiguous.
func MatchRosterEntry(roster Roster, member string) (int, error) {
	needle := strings.ToLower(member)
	for i, entry := range roster {
		if strings.Contains(strings.ToLower(entry.Name), needle) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrMemberNotFound, member)
}

// NextAssignee returns the member who takes over after the one matching
// current. The result index is (i + 1 + offset) mod len(roster), so the
// wraparound is total: any non-negative offset lands on a valid entry.
// Offsets above zero are used when generating events in bulk.
func NextAssignee(roster Roster, current string, offset int) (RosterEntry, error) {
	if err := roster.Validate(); err != nil {
		return RosterEntry{}, err
	}
	i, err := MatchRosterEntry(roster, current)
	if err != nil {
		return RosterEntry{}, err
	}
	return roster[(i+1+offset)%len(roster)], nil
}
