package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the CLI entry point.
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reactotron",
		Short: "Reactotron client for Go applications",
		Long: `Reactotron connects Go applications to a reactotron inspection server.

The connect command dials a server from the terminal and streams commands
in both directions. Applications embed the client library directly for
plugins, timers, and custom commands.`,
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.AddCommand(newConnectCommand())

	return rootCmd
}
