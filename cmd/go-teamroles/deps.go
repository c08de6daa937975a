package main

import (
	"context"

	"github.com/tartampluch/go-teamroles/internal/calendar"
	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
	"github.com/tartampluch/go-teamroles/internal/roster"
	"github.com/tartampluch/go-teamroles/internal/secrets"
	"github.com/tartampluch/go-teamroles/internal/standup"
	"github.com/tartampluch/go-teamroles/internal/state"
)

// deps bundles the collaborators a command may need. Adapters are built on
// demand so that a command only pays for (and only validates) what it uses.
type deps struct {
	settings config.Settings
	catalog  engine.Catalog
	clock    engine.Clock
}

// newDeps loads settings and the role catalog. Both are cheap and local, so
// every command starts here.
func newDeps() (*deps, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}

	catalog, err := engine.LoadCatalog(settings.CatalogPath)
	if err != nil {
		return nil, err
	}

	return &deps{
		settings: settings,
		catalog:  catalog,
		clock:    engine.RealClock{},
	}, nil
}

// rosterProvider builds the Slack-backed roster provider.
func (d *deps) rosterProvider() (roster.Provider, error) {
	if err := d.settings.Require(config.EnvUsergroup); err != nil {
		return nil, err
	}
	token, err := secrets.Resolve(d.settings.SlackToken, config.KeyringSlackToken)
	if err != nil {
		return nil, err
	}
	return roster.NewSlackProvider(token), nil
}

// eventStore builds the Google Calendar event store.
func (d *deps) eventStore(ctx context.Context) (calendar.Store, error) {
	if err := d.settings.Require(config.EnvCalendarID, config.EnvGoogleCreds); err != nil {
		return nil, err
	}
	return calendar.NewGoogleStore(ctx, d.settings.GoogleCreds, d.settings.CalendarID)
}

// stateStore returns the team-roles.json store.
func (d *deps) stateStore() *state.Store {
	return state.NewStore(d.settings.StatePath)
}

// geekbot builds the standup API client.
func (d *deps) geekbot() (*standup.Client, error) {
	token, err := secrets.Resolve(d.settings.GeekbotToken, config.KeyringGeekbotToken)
	if err != nil {
		return nil, err
	}
	return standup.NewClient(token), nil
}

// skipConfirm reports whether prompts should be bypassed: either the user
// passed --yes or the run is a scheduled CI job with nobody at the
// keyboard.
func (d *deps) skipConfirm(yes bool) bool {
	return yes || d.settings.CI
}
