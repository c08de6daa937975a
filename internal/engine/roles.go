package engine

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// CadenceUnit selects the date arithmetic used when projecting a role's
// next occupancy.
type CadenceUnit string

const (
	// UnitMonths marks calendar-month aligned roles: occupancies start on
	// the 1st of a month and span whole months.
	UnitMonths CadenceUnit = "months"
	// UnitDays marks day-granularity roles with no truncation.
	UnitDays CadenceUnit = "days"
)

// RoleDefinition is the static cadence configuration for one rotating role.
type RoleDefinition struct {
	ID            string      `yaml:"id"`
	Unit          CadenceUnit `yaml:"unit"`
	Frequency     int         `yaml:"frequency"`
	Period        int         `yaml:"period"`
	EventsPerYear int         `yaml:"n_events"`

	// Lookup is the index into the upcoming-events list at which the
	// "next" occupant is found, and equally how many events back from
	// the end the "current" occupant sits. Overlapping roles carry a
	// value greater than 1 because the most recent event belongs to an
	// incoming occupant, not the current one.
	Lookup int `yaml:"index"`
}

var titleCaser = cases.Title(language.English)

// Title renders the role ID as it appears in event summaries:
// hyphens become spaces and each word is title-cased,
// e.g. "support-steward" -> "Support Steward".
func (d RoleDefinition) Title() string {
	return titleCaser.String(strings.ReplaceAll(d.ID, "-", " "))
}

// Overlapping reports whether consecutive occupancies of this role share
// time, which changes how history is interpreted.
func (d RoleDefinition) Overlapping() bool {
	return d.Lookup > 1
}

// Summary composes the event summary wire format for an assignee.
// Only the assignee's first name goes on the wire.
func (d RoleDefinition) Summary(member string) string {
	return fmt.Sprintf(config.FormatEventSummary, d.Title(), FirstName(member))
}

// Validate checks the invariants every cadence must satisfy.
func (d RoleDefinition) Validate() error {
	if d.Frequency <= 0 || d.Period <= 0 {
		return fmt.Errorf("%w: %s", ErrBadCadence, d.ID)
	}
	switch d.Unit {
	case UnitMonths, UnitDays:
	default:
		return fmt.Errorf("%s: %q (%s)", config.ErrBadCadenceUnit, d.Unit, d.ID)
	}
	return nil
}

// FirstName returns the leading whitespace-separated segment of a full name.
func FirstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Catalog maps role IDs to their cadence definitions.
type Catalog map[string]RoleDefinition

// DefaultCatalog returns the built-in role cycle table.
func DefaultCatalog() Catalog {
	return Catalog{
		config.RoleMeetingFacilitator: {
			ID:            config.RoleMeetingFacilitator,
			Unit:          UnitMonths,
			Frequency:     config.FacilitatorFrequencyMonths,
			Period:        config.FacilitatorPeriodMonths,
			EventsPerYear: config.FacilitatorEventsPerYear,
			Lookup:        config.FacilitatorLookup,
		},
		config.RoleSupportSteward: {
			ID:            config.RoleSupportSteward,
			Unit:          UnitDays,
			Frequency:     config.StewardFrequencyDays,
			Period:        config.StewardPeriodDays,
			EventsPerYear: config.StewardEventsPerYear,
			Lookup:        config.StewardLookup,
		},
	}
}

// Lookup resolves a role ID against the catalog.
func (c Catalog) Lookup(id string) (RoleDefinition, error) {
	role, ok := c[id]
	if !ok {
		return RoleDefinition{}, fmt.Errorf("%w: %s", ErrUnknownRole, id)
	}
	return role, nil
}

// IDs returns the catalog's role IDs in a stable (sorted) order.
func (c Catalog) IDs() []string {
	ids := make([]string, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
