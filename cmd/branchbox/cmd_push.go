package main

import (
	"github.com/spf13/cobra"
)

func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push [session]",
		Short: "Commit outstanding changes and push the session branch",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPush,
	}
}

func runPush(cmd *cobra.Command, args []string) error {
	m, cleanup, err := newSessionManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name, err := resolveSessionName(m, args)
	if err != nil {
		return err
	}
	return m.Push(cmd.Context(), name, cmd.OutOrStdout())
}
