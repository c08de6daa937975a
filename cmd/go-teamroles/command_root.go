package main

import (
	"github.com/spf13/cobra"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// newRootCommand assembles the CLI. Workflows live in their own files; each
// subcommand wires its dependencies lazily so that pure-computation
// commands run without credentials.
func newRootCommand() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "go-teamroles",
		Short: "Rotate team roles through calendar events and a persisted roster",
		Long: `go-teamroles automates the rotation of team roles (meeting facilitator,
support steward) by generating calendar events, advancing a round-robin
roster persisted in team-roles.json, and keeping the handover standups in
sync.

Configuration is read from the environment (USERGROUP_NAME, CALENDAR_ID,
GOOGLE_APPLICATION_CREDENTIALS, SLACK_BOT_TOKEN, GEEKBOT_API_TOKEN,
TEAM_ROLES_PATH, ROLES_CATALOG_PATH). Tokens left unset in the environment
are looked up in the OS keyring instead.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debugMode)
			logStartupInfo()
		},
	}

	cmd.PersistentFlags().BoolVar(&debugMode, config.FlagDebug, false, config.FlagDescDebug)

	cmd.AddCommand(
		newRosterCommand(),
		newEventsCommand(),
		newRolesCommand(),
		newStandupCommand(),
		newServeCommand(),
		newVersionCommand(),
	)

	return cmd
}
