package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// RoleEvent is one occupancy interval for a role, as stored on the calendar.
// Start and End are all-day dates; End is exclusive, so consecutive
// occupancies of a non-overlapping role share a boundary date.
type RoleEvent struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
}

// Assignee extracts the team member's name from the event summary by
// splitting on the last colon and trimming whitespace. The summary wire
// format is "<Role Title>: <FirstName>".
func (e RoleEvent) Assignee() string {
	idx := strings.LastIndex(e.Summary, config.SummarySeparator)
	if idx < 0 {
		return strings.TrimSpace(e.Summary)
	}
	return strings.TrimSpace(e.Summary[idx+len(config.SummarySeparator):])
}

// Validate enforces the startDate < endDate invariant.
func (e RoleEvent) Validate() error {
	if !e.Start.Before(e.End) {
		return fmt.Errorf("%s: %s", config.ErrEventOrder, e.Summary)
	}
	return nil
}

// String renders the event the way the CLI prints it for confirmation.
func (e RoleEvent) String() string {
	return fmt.Sprintf("%s -> %s : %s",
		e.Start.Format(config.DateFormat),
		e.End.Format(config.DateFormat),
		e.Summary,
	)
}

// Occupancy is a computed date range for a role term before it becomes an
// event. Start is inclusive, End exclusive.
type Occupancy struct {
	Start time.Time
	End   time.Time
}
