package state

import (
	"errors"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
)

// Slot is one persisted role assignment: a display name and the member's
// Slack ID.
type Slot struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// StewardState holds the two overlapping support-steward slots. The
// incoming steward becomes current at the next handover.
type StewardState struct {
	Incoming Slot `json:"incoming"`
	Current  Slot `json:"current"`
}

// TeamRoles is the whole persisted record. It is read as a fallback source
// of truth when the calendar has no usable history, and rewritten whole
// (never patched field-by-field) at the end of an advance operation.
type TeamRoles struct {
	StandupManager     Slot         `json:"standup_manager"`
	MeetingFacilitator Slot         `json:"meeting_facilitator"`
	SupportSteward     StewardState `json:"support_steward"`
}

// ErrUnknownRole mirrors the engine sentinel for role IDs the state file
// has no record for.
var ErrUnknownRole = errors.New(config.ErrUnknownRole)

// Current returns the member recorded as currently serving in the role.
func (t *TeamRoles) Current(roleID string) (Slot, error) {
	switch roleID {
	case config.RoleMeetingFacilitator:
		return t.MeetingFacilitator, nil
	case config.RoleSupportSteward:
		return t.SupportSteward.Current, nil
	}
	return Slot{}, ErrUnknownRole
}

// Advance records a new assignee for the role. Single-slot roles are simply
// overwritten. For the steward role the incoming member is promoted to
// current before the new assignee takes the incoming slot, mirroring the
// buddy-handover window on the calendar.
//
// Only the assignee's first name is persisted; that is what event summaries
// carry, and the roster matcher resolves it back to a full entry.
func (t *TeamRoles) Advance(roleID string, next engine.RosterEntry) error {
	slot := Slot{Name: engine.FirstName(next.Name), ID: next.ID}

	switch roleID {
	case config.RoleMeetingFacilitator:
		t.MeetingFacilitator = slot
		return nil
	case config.RoleSupportSteward:
		t.SupportSteward.Current = t.SupportSteward.Incoming
		t.SupportSteward.Incoming = slot
		return nil
	}
	return ErrUnknownRole
}

// BackfillManagerID fills in the standup manager's Slack ID from the roster
// when the record only carries a name. Managers are looked up with the same
// fuzzy policy as everyone else.
func (t *TeamRoles) BackfillManagerID(roster engine.Roster) error {
	if t.StandupManager.ID != "" {
		return nil
	}
	i, err := engine.MatchRosterEntry(roster, t.StandupManager.Name)
	if err != nil {
		return err
	}
	t.StandupManager.ID = roster[i].ID
	return nil
}
