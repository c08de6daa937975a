package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-teamroles/internal/engine"
)

func sampleEvents() []engine.RoleEvent {
	return []engine.RoleEvent{
		{
			Summary: "Meeting Facilitator: Ana",
			Start:   time.Date(2022, 10, 1, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2022, 11, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Summary: "Meeting Facilitator: Bruno",
			Start:   time.Date(2022, 11, 1, 0, 0, 0, 0, time.UTC),
			End:     time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestRender(t *testing.T) {
	now := time.Date(2022, 9, 15, 12, 0, 0, 0, time.UTC)

	data, err := Render(sampleEvents(), now)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "END:VCALENDAR")
	assert.Contains(t, ics, "PRODID:")
	assert.Contains(t, ics, "X-WR-CALNAME:Team Roles")

	assert.Contains(t, ics, "SUMMARY:Meeting Facilitator: Ana")
	assert.Contains(t, ics, "SUMMARY:Meeting Facilitator: Bruno")

	// All-day events carry DATE values, not timestamps.
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20221001")
	assert.Contains(t, ics, "DTEND;VALUE=DATE:20221101")

	assert.Equal(t, 2, strings.Count(ics, "BEGIN:VEVENT"))
}

// TestRender_StableUIDs: identical events must keep their UID across
// re-exports, or subscribing clients duplicate them on every refresh.
func TestRender_StableUIDs(t *testing.T) {
	first, err := Render(sampleEvents(), time.Date(2022, 9, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	second, err := Render(sampleEvents(), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, extractUIDs(string(first)), extractUIDs(string(second)))

	uids := extractUIDs(string(first))
	require.Len(t, uids, 2)
	assert.NotEqual(t, uids[0], uids[1], "distinct events need distinct UIDs")
}

func TestRender_Empty(t *testing.T) {
	data, err := Render(nil, time.Now())
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "END:VCALENDAR")
	assert.NotContains(t, ics, "BEGIN:VEVENT")
}

func extractUIDs(ics string) []string {
	var uids []string
	for _, line := range strings.Split(ics, "\r\n") {
		if strings.HasPrefix(line, "UID:") {
			uids = append(uids, line)
		}
	}
	return uids
}
