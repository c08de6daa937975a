package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/standup"
)

// newStandupCommand wires the Geekbot sync.
func newStandupCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standup",
		Short: "Keep the handover standups in sync with the role state",
	}

	cmd.AddCommand(newStandupSyncCommand())
	return cmd
}

func newStandupSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync ROLE",
		Short: "Create or update a role's handover standup in Geekbot",
		Long: `Read the role state file and make the matching Geekbot standup ask the
new assignee to acknowledge their turn. The standup is created when it does
not exist yet; an existing one keeps its manually edited schedule and only
has its participants and question replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}

			record, err := d.stateStore().Read()
			if err != nil {
				return err
			}

			var def standup.Definition
			switch args[0] {
			case config.RoleMeetingFacilitator:
				def = standup.FacilitatorDefinition(record)
			case config.RoleSupportSteward:
				def = standup.StewardDefinition(record)
			default:
				return fmt.Errorf("%s: %s", config.ErrUnknownRole, args[0])
			}

			client, err := d.geekbot()
			if err != nil {
				return err
			}
			return client.Sync(cmd.Context(), def)
		},
	}
	return cmd
}
