package main

import (
	"github.com/spf13/cobra"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/engine"
	"github.com/tartampluch/go-teamroles/internal/ics"
	"github.com/tartampluch/go-teamroles/internal/server"
)

// newServeCommand runs the local ICS feed.
func newServeCommand() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upcoming role schedule as an ICS feed over localhost HTTP",
		Long: `Pull the upcoming events for every role in the catalog, render them as a
single iCalendar document and serve it on localhost until interrupted.
Calendar apps can subscribe to the feed URL instead of the shared calendar.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d, err := newDeps()
			if err != nil {
				return err
			}

			store, err := d.eventStore(ctx)
			if err != nil {
				return err
			}

			now := d.clock.Now()
			var events []engine.RoleEvent
			for _, id := range d.catalog.IDs() {
				role := d.catalog[id]
				upcoming, err := store.ListUpcoming(ctx, role, now, config.MaxListResults)
				if err != nil {
					return err
				}
				events = append(events, upcoming...)
			}

			data, err := ics.Render(events, now)
			if err != nil {
				return err
			}

			feed := server.NewFeedServer(port)
			feed.Update(data)
			return feed.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, config.DefaultPort, "Port to listen on")
	return cmd
}
