package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
)

// Store is the event-store contract the workflows depend on. ListUpcoming
// returns events for one role, ascending by start date. Create and Delete
// mutate single events; bulk workflows call them in plan order so that the
// history stays consistent for the next run.
type Store interface {
	ListUpcoming(ctx context.Context, role engine.RoleDefinition, from time.Time, maxResults int) ([]engine.RoleEvent, error)
	Create(ctx context.Context, event engine.RoleEvent) error
	Delete(ctx context.Context, eventID string) error
}

// GoogleStore implements Store against the Google Calendar API using a
// service account.
type GoogleStore struct {
	svc        *gcal.Service
	calendarID string
}

// NewGoogleStore authenticates against the Calendar API with the service
// account credentials file at credsPath.
func NewGoogleStore(ctx context.Context, credsPath, calendarID string) (*GoogleStore, error) {
	svc, err := gcal.NewService(ctx,
		option.WithCredentialsFile(credsPath),
		option.WithScopes(gcal.CalendarScope),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCalendarList, err)
	}
	return &GoogleStore{svc: svc, calendarID: calendarID}, nil
}

// ListUpcoming pulls upcoming events ordered by start time and filters them
// to the ones whose summary carries the role's title. Events the API hands
// back without a usable date pair are skipped with a warning rather than
// aborting the listing.
func (s *GoogleStore) ListUpcoming(ctx context.Context, role engine.RoleDefinition, from time.Time, maxResults int) ([]engine.RoleEvent, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyRole, role.ID,
	)
	log.Info(config.MsgPullingEvents, config.LogKeyDate, from.Format(config.DateFormat))

	result, err := s.svc.Events.List(s.calendarID).
		TimeMin(from.UTC().Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(int64(maxResults)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCalendarList, err)
	}

	title := role.Title()
	var events []engine.RoleEvent
	for _, item := range result.Items {
		if !strings.Contains(item.Summary, title) {
			continue
		}

		start, err := normalizeEventTime(item.Start)
		if err != nil {
			log.Warn(config.ErrDateParse, config.LogKeyError, err)
			continue
		}
		end, err := normalizeEventTime(item.End)
		if err != nil {
			log.Warn(config.ErrDateParse, config.LogKeyError, err)
			continue
		}

		events = append(events, engine.RoleEvent{
			ID:      item.Id,
			Summary: item.Summary,
			Start:   start,
			End:     end,
		})
	}
	return events, nil
}

// Create posts one all-day event. The body is the minimum the Calendar API
// needs: a summary plus start and end dates stamped Etc/UTC.
func (s *GoogleStore) Create(ctx context.Context, event engine.RoleEvent) error {
	body := &gcal.Event{
		Summary: event.Summary,
		Start: &gcal.EventDateTime{
			Date:     event.Start.Format(config.DateFormat),
			TimeZone: config.EventTimeZone,
		},
		End: &gcal.EventDateTime{
			Date:     event.End.Format(config.DateFormat),
			TimeZone: config.EventTimeZone,
		},
	}

	if _, err := s.svc.Events.Insert(s.calendarID, body).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCalendarCreate, err)
	}
	return nil
}

// Delete removes one event by ID.
func (s *GoogleStore) Delete(ctx context.Context, eventID string) error {
	if err := s.svc.Events.Delete(s.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrCalendarDelete, err)
	}
	return nil
}
