package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-teamroles/internal/config"
)

func TestLoadSettings(t *testing.T) {
	t.Setenv(config.EnvUsergroup, "support-team")
	t.Setenv(config.EnvCalendarID, "cal-id@group.calendar.google.com")
	t.Setenv(config.EnvStatePath, "/tmp/roles.json")
	t.Setenv(config.EnvCI, "true")

	settings, err := config.LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "support-team", settings.Usergroup)
	assert.Equal(t, "cal-id@group.calendar.google.com", settings.CalendarID)
	assert.Equal(t, "/tmp/roles.json", settings.StatePath)
	assert.True(t, settings.CI)
}

func TestLoadSettings_StatePathDefault(t *testing.T) {
	// t.Setenv registers the restore; the variable must be absent for the
	// default to apply.
	t.Setenv(config.EnvStatePath, "placeholder")
	require.NoError(t, os.Unsetenv(config.EnvStatePath))

	settings, err := config.LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, config.DefaultStatePath, settings.StatePath)
}

func TestRequire(t *testing.T) {
	settings := config.Settings{Usergroup: "support-team"}

	assert.NoError(t, settings.Require(config.EnvUsergroup))

	err := settings.Require(config.EnvUsergroup, config.EnvCalendarID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.EnvCalendarID, "the error should name the missing variable")
}
