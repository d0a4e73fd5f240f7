// Package root wires up the lmscene command tree.
package root

import (
	"github.com/spf13/cobra"

	"github.com/hi2p-perim/lightmetrica-tools/cmd/lmscene/resolve"
	"github.com/hi2p-perim/lightmetrica-tools/cmd/lmscene/sweep"
	"github.com/hi2p-perim/lightmetrica-tools/cmd/lmscene/version"
)

// NewRootCmd creates the root command with all subcommands attached.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lmscene",
		Short: "Resolve templated scene files and dispatch them to the renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(resolve.Cmd)
	cmd.AddCommand(sweep.Cmd)
	cmd.AddCommand(version.Cmd)

	return cmd
}

// Execute runs the root command with the provided arguments.
func Execute(args []string) error {
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	return cmd.Execute()
}
