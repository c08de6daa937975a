package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
	"github.com/tartampluch/go-teamroles/internal/state"
)

// newRolesCommand groups the state-file workflows.
func newRolesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Advance and seed the persisted role state",
	}

	cmd.AddCommand(
		newRolesUpdateCommand(),
		newRolesSetCommand(),
	)
	return cmd
}

func newRolesUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update ROLE",
		Short: "Advance a role's state file entry to the next assignee",
		Long: `Work out who serves in the role next and rewrite team-roles.json
accordingly. The next assignee is read from the calendar when enough
upcoming events exist; otherwise the rotation is computed from the roster
and the state file's current occupant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := newDeps()
			if err != nil {
				return err
			}
			role, err := d.catalog.Lookup(args[0])
			if err != nil {
				return err
			}

			// The state file must already exist: update advances a
			// record, it does not invent one. Seed with "roles set".
			stateStore := d.stateStore()
			record, err := stateStore.Read()
			if err != nil {
				return err
			}

			members, err := fetchRoster(ctx, d)
			if err != nil {
				return err
			}
			eventStore, err := d.eventStore(ctx)
			if err != nil {
				return err
			}

			events, err := eventStore.ListUpcoming(ctx, role, d.clock.Now(), config.MaxListResults)
			if err != nil {
				return err
			}

			nextName, ok := engine.NextFromCalendar(events, role)
			if ok {
				slog.Info(config.MsgNextFromCal,
					config.LogKeyRole, role.ID,
					config.LogKeyMember, nextName,
				)
			} else {
				// Not enough history on the calendar to read the next
				// occupant directly: rotate from the incumbent instead.
				// The incumbent comes from the calendar when it holds
				// anything at all, from the state file otherwise.
				slog.Warn(config.MsgNextFallback, config.LogKeyRole, role.ID)
				_, current, err := engine.FirstOccupancy(events, role)
				if err != nil {
					if !errors.Is(err, engine.ErrEmptyHistory) {
						return err
					}
					slot, err := record.Current(role.ID)
					if err != nil {
						return err
					}
					current = slot.Name
				}
				next, err := engine.NextAssignee(members, current, 0)
				if err != nil {
					return err
				}
				nextName = next.Name
			}

			// Resolve the (possibly first-name-only) assignee back to
			// a full roster entry so the state file carries the ID.
			i, err := engine.MatchRosterEntry(members, nextName)
			if err != nil {
				return err
			}

			slog.Info(config.MsgUpdatingRole,
				config.LogKeyRole, role.ID,
				config.LogKeyMember, members[i].Name,
			)
			if err := record.Advance(role.ID, members[i]); err != nil {
				return err
			}

			if record.StandupManager.ID == "" {
				slog.Info(config.MsgManagerBackfill,
					config.LogKeyMember, record.StandupManager.Name,
				)
				if err := record.BackfillManagerID(members); err != nil {
					return err
				}
			}

			return stateStore.Write(record)
		},
	}
	return cmd
}

func newRolesSetCommand() *cobra.Command {
	var (
		manager         string
		facilitator     string
		stewardCurrent  string
		stewardIncoming string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Seed or overwrite the role state file",
		Long: `Write team-roles.json from explicit assignments. Names are resolved
against the roster so each slot also carries the member's Slack ID. Slots
whose flag is omitted keep their previous value when the file already
exists.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := newDeps()
			if err != nil {
				return err
			}

			stateStore := d.stateStore()
			record, err := stateStore.Read()
			if err != nil {
				// Seeding a fresh file is the point of this command.
				record = &state.TeamRoles{}
			}

			members, err := fetchRoster(ctx, d)
			if err != nil {
				return err
			}

			assign := func(slot *state.Slot, name string) error {
				if name == "" {
					return nil
				}
				i, err := engine.MatchRosterEntry(members, name)
				if err != nil {
					return err
				}
				*slot = state.Slot{Name: engine.FirstName(members[i].Name), ID: members[i].ID}
				return nil
			}

			if err := assign(&record.StandupManager, manager); err != nil {
				return err
			}
			if err := assign(&record.MeetingFacilitator, facilitator); err != nil {
				return err
			}
			if err := assign(&record.SupportSteward.Current, stewardCurrent); err != nil {
				return err
			}
			if err := assign(&record.SupportSteward.Incoming, stewardIncoming); err != nil {
				return err
			}

			if err := stateStore.Write(record); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", stateStore.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&manager, "manager", "", "Standup manager")
	cmd.Flags().StringVar(&facilitator, "facilitator", "", "Current meeting facilitator")
	cmd.Flags().StringVar(&stewardCurrent, "steward-current", "", "Current support steward")
	cmd.Flags().StringVar(&stewardIncoming, "steward-incoming", "", "Incoming support steward")
	return cmd
}
