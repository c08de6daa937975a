package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Settings holds the runtime configuration read from the environment.
// Commands validate only the fields they actually need via Require, so a
// pure-computation command (e.g. export) can run without any tokens set.
type Settings struct {
	Usergroup    string `env:"USERGROUP_NAME"`
	CalendarID   string `env:"CALENDAR_ID"`
	SlackToken   string `env:"SLACK_BOT_TOKEN"`
	GeekbotToken string `env:"GEEKBOT_API_TOKEN"`
	GoogleCreds  string `env:"GOOGLE_APPLICATION_CREDENTIALS"`
	StatePath    string `env:"TEAM_ROLES_PATH" envDefault:"team-roles.json"`
	CatalogPath  string `env:"ROLES_CATALOG_PATH"`
	CI           bool   `env:"CI"`
}

// LoadSettings parses the process environment into a Settings value.
func LoadSettings() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigMissing, err)
	}
	return s, nil
}

// Require returns an error naming the first environment variable from the
// given list whose value is empty. Checked before any I/O is attempted.
func (s Settings) Require(names ...string) error {
	values := map[string]string{
		EnvUsergroup:   s.Usergroup,
		EnvCalendarID:  s.CalendarID,
		EnvGoogleCreds: s.GoogleCreds,
		EnvStatePath:   s.StatePath,
	}
	for _, name := range names {
		if values[name] == "" {
			return fmt.Errorf("%s: %s", ErrConfigMissing, name)
		}
	}
	return nil
}
