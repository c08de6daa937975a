package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRosterCommand exposes the roster as commands.
func newRosterCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "Inspect the rotation roster",
	}

	cmd.AddCommand(newRosterListCommand())
	return cmd
}

func newRosterListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the usergroup members in rotation order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := newDeps()
			if err != nil {
				return err
			}

			members, err := fetchRoster(cmd.Context(), d)
			if err != nil {
				return err
			}

			for _, entry := range members {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", entry.ID, entry.Name)
			}
			return nil
		},
	}
	return cmd
}
