package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/tartampluch/go-teamroles/internal/config"
)

// newVersionCommand prints build information.
func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), config.MsgVersionOutput,
				config.AppName, config.Version, runtime.GOOS, runtime.GOARCH)
		},
	}
}
