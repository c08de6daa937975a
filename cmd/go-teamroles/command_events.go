package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-teamroles/internal/calendar"
	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
	"github.com/tartampluch/go-teamroles/internal/ics"
)

// newEventsCommand groups the calendar-mutating workflows.
func newEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Generate, create, export and delete role events",
	}

	cmd.AddCommand(
		newEventsBulkCreateCommand(),
		newEventsNextCommand(),
		newEventsDeleteCommand(),
		newEventsExportCommand(),
	)
	return cmd
}

func newEventsBulkCreateCommand() *cobra.Command {
	var (
		count  int
		date   string
		member string
		yes    bool
	)

	cmd := &cobra.Command{
		Use:   "bulk-create ROLE",
		Short: "Create a series of role events in the calendar",
		Long: `Generate the next batch of events for a role and create them in the
calendar after confirmation. The series is appended to the last event found
in the calendar; with --date and --member it starts from an explicit
reference instead; with neither and an empty calendar, the incumbent is read
from the role state file and the start date is computed.`,
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

			store, err := d.eventStore(ctx)
			if err != nil {
				return err
			}

			plan, err := resolvePlan(ctx, d, store, role, count, date, member)
			if err != nil {
				return err
			}

			for _, event := range plan {
				fmt.Fprintln(cmd.OutOrStdout(), event)
			}

			if !d.skipConfirm(yes) && !confirm(cmd, "Create these events?") {
				slog.Info(config.MsgAborted)
				return nil
			}

			// Events must be created in plan (ascending start-date)
			// order so the next run reads a consistent history.
			for _, event := range plan {
				slog.Info(config.MsgCreatingEvent,
					config.LogKeyRole, role.ID,
					config.LogKeyStart, event.Start.Format(config.DateFormat),
				)
				if err := store.Create(ctx, event); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, config.FlagCount, "n", 0,
		"Number of events to create (defaults to one year's worth for the role)")
	cmd.Flags().StringVarP(&date, config.FlagDate, "d", "",
		"Reference date (YYYY-MM-DD) to begin creating events from; mutually inclusive with --member")
	cmd.Flags().StringVarP(&member, config.FlagMember, "m", "",
		"Team member currently serving in the role; mutually inclusive with --date")
	cmd.Flags().BoolVar(&yes, config.FlagYes, false, config.FlagDescYes)

	return cmd
}

func newEventsNextCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "next ROLE",
		Short: "Create the next event in a role's series",
		Args:  cobra.ExactArgs(1),
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

			store, err := d.eventStore(ctx)
			if err != nil {
				return err
			}
			members, err := fetchRoster(ctx, d)
			if err != nil {
				return err
			}

			events, err := store.ListUpcoming(ctx, role, d.clock.Now(), config.MaxListResults)
			if err != nil {
				return err
			}

			// A pure history query: an empty calendar is fatal here,
			// there is nothing meaningful to append to.
			refEnd, current, err := engine.LastOccupancy(events, role)
			if err != nil {
				return err
			}

			slog.Info(config.MsgGeneratingMeta, config.LogKeyRole, role.ID)
			event, err := engine.NextEvent(role, members, refEnd, current, 0)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), event)

			if !d.skipConfirm(yes) && !confirm(cmd, "Create the above event?") {
				slog.Info(config.MsgAborted)
				return nil
			}

			slog.Info(config.MsgCreatingEvent,
				config.LogKeyRole, role.ID,
				config.LogKeyStart, event.Start.Format(config.DateFormat),
			)
			return store.Create(ctx, event)
		},
	}

	cmd.Flags().BoolVar(&yes, config.FlagYes, false, config.FlagDescYes)
	return cmd
}

func newEventsDeleteCommand() *cobra.Command {
	var (
		date string
		yes  bool
	)

	cmd := &cobra.Command{
		Use:   "delete ROLE",
		Short: "Delete all upcoming events for a role",
		Args:  cobra.ExactArgs(1),
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

			ref := engine.NextMonthStart(d.clock.Now())
			if date != "" {
				ref, err = parseDate(date)
				if err != nil {
					return err
				}
			}

			store, err := d.eventStore(ctx)
			if err != nil {
				return err
			}

			events, err := store.ListUpcoming(ctx, role, ref, config.MaxListResults)
			if err != nil {
				return err
			}
			if len(events) == 0 {
				slog.Info(config.MsgNoEvents, config.LogKeyRole, role.ID)
				return nil
			}

			slog.Info(config.MsgEventsFound,
				config.LogKeyRole, role.ID,
				config.LogKeyCount, len(events),
			)
			for _, event := range events {
				fmt.Fprintln(cmd.OutOrStdout(), event)
			}

			if !d.skipConfirm(yes) && !confirm(cmd, "Delete all these events?") {
				slog.Info(config.MsgAborted)
				return nil
			}

			for _, event := range events {
				slog.Info(config.MsgDeletingEvent,
					config.LogKeyRole, role.ID,
					config.LogKeyStart, event.Start.Format(config.DateFormat),
				)
				if err := store.Delete(ctx, event.ID); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, config.FlagDate, "d", "",
		"Reference date (YYYY-MM-DD) to delete events from (defaults to the 1st of next month)")
	cmd.Flags().BoolVar(&yes, config.FlagYes, false, config.FlagDescYes)
	return cmd
}

func newEventsExportCommand() *cobra.Command {
	var (
		count  int
		date   string
		member string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export ROLE",
		Short: "Write a role's next events to an ICS file without touching the calendar",
		Args:  cobra.ExactArgs(1),
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

			// The calendar is only consulted when no explicit
			// reference was given.
			var store calendar.Store
			if date == "" {
				if store, err = d.eventStore(ctx); err != nil {
					return err
				}
			}

			plan, err := resolvePlan(ctx, d, store, role, count, date, member)
			if err != nil {
				return err
			}

			data, err := ics.Render(plan, d.clock.Now())
			if err != nil {
				return err
			}

			if output == "" {
				output = role.ID + ".ics"
			}
			if err := os.WriteFile(output, data, config.FilePermShared); err != nil {
				return err
			}

			slog.Info(config.MsgExported,
				config.LogKeyRole, role.ID,
				config.LogKeyFile, output,
				config.LogKeyCount, len(plan),
			)
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, config.FlagCount, "n", 0,
		"Number of events to export (defaults to one year's worth for the role)")
	cmd.Flags().StringVarP(&date, config.FlagDate, "d", "",
		"Reference date (YYYY-MM-DD); mutually inclusive with --member")
	cmd.Flags().StringVarP(&member, config.FlagMember, "m", "",
		"Team member currently serving in the role; mutually inclusive with --date")
	cmd.Flags().StringVarP(&output, config.FlagOutput, "o", "",
		"Output file (defaults to ROLE.ics)")
	return cmd
}

// resolvePlan computes the next batch of events for a role from the best
// available reference point, in precedence order: explicit --date/--member,
// then the calendar's last event, then the role state file plus a computed
// default date.
func resolvePlan(ctx context.Context, d *deps, store calendar.Store, role engine.RoleDefinition, count int, date, member string) ([]engine.RoleEvent, error) {
	if (date == "") != (member == "") {
		return nil, errors.New(config.ErrMutuallyIncl)
	}
	if count <= 0 {
		count = role.EventsPerYear
	}

	members, err := fetchRoster(ctx, d)
	if err != nil {
		return nil, err
	}

	if date != "" {
		ref, err := parseDate(date)
		if err != nil {
			return nil, err
		}
		if role.Unit == engine.UnitDays {
			ref = engine.AdjustReferenceDate(ref)
			slog.Info(config.MsgAdjustedRefDate,
				config.LogKeyRole, role.ID,
				config.LogKeyDate, ref.Format(config.DateFormat),
			)
		}
		return engine.PlanRotation(role, members, ref, member, count)
	}

	events, err := store.ListUpcoming(ctx, role, d.clock.Now(), config.MaxListResults)
	if err != nil {
		return nil, err
	}

	if len(events) > 0 {
		refEnd, current, err := engine.LastOccupancy(events, role)
		if err == nil {
			return engine.PlanRotation(role, members, refEnd, current, count)
		}
		if !errors.Is(err, engine.ErrEmptyHistory) {
			return nil, err
		}
	}

	// Fallback chain: incumbent from the state file, reference date
	// computed from today.
	slog.Warn(config.MsgStateFallback, config.LogKeyRole, role.ID)
	record, err := d.stateStore().Read()
	if err != nil {
		return nil, err
	}
	slot, err := record.Current(role.ID)
	if err != nil {
		return nil, err
	}

	ref := engine.DefaultReferenceDate(role, d.clock.Now())
	slog.Warn(config.MsgDefaultRefDate,
		config.LogKeyRole, role.ID,
		config.LogKeyDate, ref.Format(config.DateFormat),
		config.LogKeyMember, slot.Name,
	)
	return engine.PlanRotation(role, members, ref, slot.Name, count)
}

// fetchRoster pulls the role's eligible pool from Slack.
func fetchRoster(ctx context.Context, d *deps) (engine.Roster, error) {
	provider, err := d.rosterProvider()
	if err != nil {
		return nil, err
	}
	return provider.ListMembers(ctx, d.settings.Usergroup)
}

// parseDate parses a YYYY-MM-DD command-line argument.
func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(config.DateFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	return parsed, nil
}
