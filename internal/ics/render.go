package ics

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
)

// Render encodes a set of role events as an iCalendar document. It is used
// by the export command and as the body of the HTTP feed, so subscribers
// can preview a rotation without touching the shared calendar.
func Render(events []engine.RoleEvent, now time.Time) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, e := range events {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, uid(e))
		event.Props.SetText(config.PropSummary, e.Summary)

		startProp := ical.NewProp(config.PropDTStart)
		startProp.SetDate(e.Start)
		event.Props.Set(startProp)

		endProp := ical.NewProp(config.PropDTEnd)
		endProp.SetDate(e.End)
		event.Props.Set(endProp)

		event.Props.Set(dtStampProp)
		cal.Children = append(cal.Children, event.Component)
	}

	// An eventless VCALENDAR still has to be well-formed for subscribing
	// clients, and the encoder refuses to produce one.
	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// uid derives a stable identifier from the event's summary and start date,
// so re-exports do not duplicate events in subscribing clients.
func uid(e engine.RoleEvent) string {
	input := fmt.Sprintf(config.FormatHashInput,
		e.Summary,
		e.Start.Format(config.DateFormat),
		config.UIDSalt,
	)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID,
		fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		config.ICalDomain,
	)
}
