package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// NextOccupancy computes the date range of the next role term, given the
// end date of a reference term. offset is an integer multiple of the role's
// transfer frequency, used when generating terms in bulk; offset 0 yields a
// term that begins exactly when the reference term ends (end dates are
// exclusive, so consecutive terms share their boundary date).
func NextOccupancy(role RoleDefinition, refEnd time.Time, offset int) (Occupancy, error) {
	if err := role.Validate(); err != nil {
		return Occupancy{}, err
	}

	switch role.Unit {
	case UnitMonths:
		// Month-based terms are aligned to whole calendar months: the
		// start is truncated to the 1st regardless of the reference
		// day-of-month, and the end is a whole number of months later.
		start := monthFirst(refEnd, role.Frequency*offset)
		return Occupancy{Start: start, End: start.AddDate(0, role.Period, 0)}, nil
	case UnitDays:
		start := refEnd.AddDate(0, 0, role.Frequency*offset)
		return Occupancy{Start: start, End: start.AddDate(0, 0, role.Period)}, nil
	}

	return Occupancy{}, fmt.Errorf("%s: %q (%s)", config.ErrBadCadenceUnit, role.Unit, role.ID)
}

// monthFirst adds n months to t and truncates to the 1st of the resulting
// month. The day component is discarded before the addition so that
// time.Date's normalization cannot spill a short month into the next one.
func monthFirst(t time.Time, n int) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
}

// NextMonthStart returns the 1st of the month after t.
func NextMonthStart(t time.Time) time.Time {
	return monthFirst(t, 1)
}

// LastOccupancy extracts the end date and assignee of the most recent term
// from a role's ordered event history (ascending by start date).
//
// For overlapping roles the last listed event belongs to an incoming
// occupant whose term has not effectively begun, so the true reference term
// is role.Lookup events back from the end.
func LastOccupancy(events []RoleEvent, role RoleDefinition) (time.Time, string, error) {
	idx := len(events) - role.Lookup
	if idx < 0 || len(events) == 0 {
		return time.Time{}, "", fmt.Errorf("%w: %s", ErrEmptyHistory, role.ID)
	}

	event := events[idx]
	slog.Debug(config.MsgLastEvent,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyRole, role.ID,
		config.LogKeyEnd, event.End.Format(config.DateFormat),
		config.LogKeyMember, event.Assignee(),
	)
	return event.End, event.Assignee(), nil
}

// FirstOccupancy is the mirror of LastOccupancy over the front of the list:
// it returns the end date and assignee of the term that is current at read
// time. Overlapping roles skip the event of the occupant who is finishing
// their handover window (events[0]) to reach the true incumbent.
func FirstOccupancy(events []RoleEvent, role RoleDefinition) (time.Time, string, error) {
	idx := role.Lookup - 1
	if idx >= len(events) {
		return time.Time{}, "", fmt.Errorf("%w: %s", ErrEmptyHistory, role.ID)
	}

	event := events[idx]
	slog.Debug(config.MsgFirstEvent,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyRole, role.ID,
		config.LogKeyEnd, event.End.Format(config.DateFormat),
		config.LogKeyMember, event.Assignee(),
	)
	return event.End, event.Assignee(), nil
}

// NextFromCalendar reads the member who serves next directly from the
// upcoming-events list, without any roster arithmetic. The second return is
// false when the history is too short to contain a "next" event; callers
// fall back onto roster iteration in that case rather than failing.
func NextFromCalendar(events []RoleEvent, role RoleDefinition) (string, bool) {
	if role.Lookup >= len(events) {
		return "", false
	}
	return events[role.Lookup].Assignee(), true
}

// NextEvent composes the next term's event descriptor from an explicit
// reference point: the end date of the reference term and the member
// serving in it. offset shifts both the dates and the roster index, so
// calling with offset 0..n-1 yields the next n terms in order.
func NextEvent(role RoleDefinition, roster Roster, refEnd time.Time, current string, offset int) (RoleEvent, error) {
	next, err := NextAssignee(roster, current, offset)
	if err != nil {
		return RoleEvent{}, err
	}

	occ, err := NextOccupancy(role, refEnd, offset)
	if err != nil {
		return RoleEvent{}, err
	}

	event := RoleEvent{
		Summary: role.Summary(next.Name),
		Start:   occ.Start,
		End:     occ.End,
	}
	return event, event.Validate()
}

// PlanRotation generates the next count terms for a role, in ascending
// start-date order, from a single reference term. The computation is pure:
// identical inputs always produce identical plans.
func PlanRotation(role RoleDefinition, roster Roster, refEnd time.Time, current string, count int) ([]RoleEvent, error) {
	events := make([]RoleEvent, 0, count)
	for i := 0; i < count; i++ {
		event, err := NextEvent(role, roster, refEnd, current, i)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

// AdjustReferenceDate snaps a date forward to the steward handover weekday
// (Wednesday). A date already on a Wednesday is left untouched.
func AdjustReferenceDate(ref time.Time) time.Time {
	weekday := isoWeekday(ref)
	switch {
	case weekday < config.StewardHandoverWeekday:
		ref = ref.AddDate(0, 0, config.StewardHandoverWeekday-weekday)
	case weekday > config.StewardHandoverWeekday:
		ref = ref.AddDate(0, 0, 7+(config.StewardHandoverWeekday-weekday))
	}
	return ref
}

// isoWeekday maps time.Weekday (Sunday=0) onto ISO numbering (Monday=1,
// Sunday=7).
func isoWeekday(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

// DefaultReferenceDate picks a starting point for bulk generation when the
// calendar holds no history: the 1st of next month for month-based roles,
// the next handover Wednesday for day-based ones.
func DefaultReferenceDate(role RoleDefinition, now time.Time) time.Time {
	if role.Unit == UnitMonths {
		return monthFirst(now, 1)
	}
	return AdjustReferenceDate(now)
}
