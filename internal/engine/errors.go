package engine

import (
	"errors"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// Sentinel errors for the rotation engine. Callers distinguish them with
// errors.Is; all of them abort the current invocation.
var (
	// ErrEmptyHistory is returned when an operation needed calendar
	// history and none was found for the role.
	ErrEmptyHistory = errors.New(config.ErrEmptyHistory)

	// ErrMemberNotFound is returned when an incumbent's name cannot be
	// matched against the roster. Picking a wrong person silently has
	// real-world scheduling consequences, so this is always fatal.
	ErrMemberNotFound = errors.New(config.ErrMemberNotFound)

	// ErrUnknownRole is returned for role IDs absent from the catalog.
	ErrUnknownRole = errors.New(config.ErrUnknownRole)

	// ErrEmptyRoster is returned for rosters with no entries.
	ErrEmptyRoster = errors.New(config.ErrEmptyRoster)

	// ErrDuplicateRoster is returned when two roster entries share a
	// display name, which would make rotation order ambiguous.
	ErrDuplicateRoster = errors.New(config.ErrDuplicateRoster)

	// ErrBadCadence is returned for non-positive frequency or period.
	ErrBadCadence = errors.New(config.ErrBadCadence)
)
