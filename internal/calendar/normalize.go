package calendar

import (
	"errors"
	"fmt"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// normalizeEventTime collapses the Calendar API's two event-time variants
// (all-day Date vs. timed DateTime) into a plain date at the store
// boundary, so the engine only ever sees dates. Timed events are truncated
// to the calendar date they fall on.
func normalizeEventTime(t *gcal.EventDateTime) (time.Time, error) {
	if t == nil {
		return time.Time{}, errors.New(config.ErrDateParse)
	}

	if t.Date != "" {
		parsed, err := time.Parse(config.DateFormat, t.Date)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
		}
		return parsed, nil
	}

	if t.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, t.DateTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
		}
		y, m, d := parsed.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, errors.New(config.ErrDateParse)
}
