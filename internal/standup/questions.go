package standup

import (
	"fmt"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
	"github.com/tartampluch/go-teamroles/internal/state"
)

// Question templates. The %s is the assignee's first name; the steward
// question additionally names the buddy still serving the overlap window.
const (
	questionFacilitator = "%s - it is your turn to facilitate this month's team meeting! " +
		"You can check the team calendar for when this month's meeting is scheduled.\n\n" +
		"Reply 'ok' to this message to acknowledge your role. " +
		"Or if you are not able to fulfil this role at this time, please arrange cover with another member of the team. " +
		"If you have already swapped with someone, please tag them in your response.\n\n" +
		"Here are some actions the meeting facilitator is expected to take:\n" +
		":white_check_mark: Collect and add agenda items to the meeting notes\n" +
		":white_check_mark: Facilitate the meeting\n" +
		":white_check_mark: Open up any follow-up issues or discussions and link to the notes\n" +
		":white_check_mark: Transfer notes into the team documentation"

	questionSteward = "%s - it is your turn to be the support steward! " +
		"Please make sure to watch for any incoming tickets.\n\n" +
		"Reply 'ok' to this message to acknowledge your role. " +
		"Or if you are going to be away for a large part of your rotation, please arrange cover with another member of the team. " +
		"If you have already swapped with someone, please tag them in your response.\n\n" +
		"Your support steward buddy is: %s"
)

// FacilitatorDefinition builds the standup that hands the meeting
// facilitator role to the member currently recorded in the state file.
func FacilitatorDefinition(roles *state.TeamRoles) Definition {
	return Definition{
		Name:     config.StandupNameFacilitator,
		Day:      config.StandupDayFacilitator,
		Channel:  config.StandupChannelFacilitator,
		UserIDs:  participants(roles.MeetingFacilitator, roles.StandupManager),
		Question: fmt.Sprintf(questionFacilitator, engine.FirstName(roles.MeetingFacilitator.Name)),
	}
}

// StewardDefinition builds the standup that onboards the incoming support
// steward, naming the current steward as their buddy.
func StewardDefinition(roles *state.TeamRoles) Definition {
	return Definition{
		Name:    config.StandupNameSteward,
		Day:     config.StandupDaySteward,
		Channel: config.StandupChannelSteward,
		UserIDs: participants(roles.SupportSteward.Incoming, roles.StandupManager),
		Question: fmt.Sprintf(questionSteward,
			engine.FirstName(roles.SupportSteward.Incoming.Name),
			engine.FirstName(roles.SupportSteward.Current.Name),
		),
	}
}

// participants lists the assignee plus the standup manager, collapsing the
// two when the manager is taking the role themselves.
func participants(assignee, manager state.Slot) []string {
	if assignee.ID == manager.ID {
		return []string{assignee.ID}
	}
	return []string{assignee.ID, manager.ID}
}
