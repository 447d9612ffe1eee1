package main

import (
	"github.com/spf13/cobra"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell [session]",
		Short: "Open a shell inside a session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShell,
	}
}

func runShell(cmd *cobra.Command, args []string) error {
	m, cleanup, err := newSessionManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name, err := resolveSessionName(m, args)
	if err != nil {
		return err
	}
	return m.ExecInteractive(cmd.Context(), name, []string{"bash"})
}
