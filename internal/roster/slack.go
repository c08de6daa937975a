package roster

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"

	"github.com/slack-go/slack"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
)

// Provider is the roster contract the workflows depend on: an ordered,
// deduplicated member list for a role's eligible pool. Order must be
// deterministic within a run; the Slack implementation sorts alphabetically
// by display name, which is the rotation order the team expects.
type Provider interface {
	ListMembers(ctx context.Context, usergroup string) (engine.Roster, error)
}

// SlackProvider resolves a Slack usergroup (colloquially a "team") into a
// roster of display names and user IDs.
type SlackProvider struct {
	client *slack.Client
}

// NewSlackProvider builds a provider around a bot-token API client.
func NewSlackProvider(token string) *SlackProvider {
	return &SlackProvider{
		client: slack.New(token, slack.OptionHTTPClient(&http.Client{Timeout: config.HTTPTimeout})),
	}
}

// ListMembers fetches the usergroup's members and maps each user ID to a
// display name, preferring the normalized display name and falling back to
// the normalized real name.
func (p *SlackProvider) ListMembers(ctx context.Context, usergroup string) (engine.Roster, error) {
	log := slog.With(
		config.LogKeyComponent, config.CompRoster,
		config.LogKeyUsergroup, usergroup,
	)

	groups, err := p.client.GetUserGroupsContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRosterFetch, err)
	}

	groupID := ""
	for _, group := range groups {
		if group.Handle == usergroup {
			groupID = group.ID
			break
		}
	}
	if groupID == "" {
		return nil, fmt.Errorf("%s: %s", config.ErrUsergroupLookup, usergroup)
	}

	userIDs, err := p.client.GetUserGroupMembersContext(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRosterFetch, err)
	}

	users, err := p.client.GetUsersInfoContext(ctx, userIDs...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrRosterFetch, err)
	}

	var roster engine.Roster
	for _, user := range *users {
		name := user.Profile.DisplayNameNormalized
		if name == "" {
			name = user.Profile.RealNameNormalized
		}
		roster = append(roster, engine.RosterEntry{Name: name, ID: user.ID})
	}

	roster = sortAndDedupe(roster)
	log.Info(config.MsgRosterFetched, config.LogKeyCount, len(roster))
	return roster, roster.Validate()
}

// sortAndDedupe orders the roster alphabetically by display name and drops
// entries whose name repeats, keeping the first occurrence. The rotation
// engine requires both properties.
func sortAndDedupe(roster engine.Roster) engine.Roster {
	sort.SliceStable(roster, func(i, j int) bool {
		return roster[i].Name < roster[j].Name
	})

	seen := make(map[string]struct{}, len(roster))
	deduped := roster[:0]
	for _, entry := range roster {
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		deduped = append(deduped, entry)
	}
	return deduped
}
