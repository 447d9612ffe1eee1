package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm [session]",
		Aliases: []string{"remove"},
		Short:   "Remove a session and its container",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runRm,
	}
	cmd.Flags().BoolP("force", "f", false, "Remove without confirmation")
	return cmd
}

func runRm(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	m, cleanup, err := newSessionManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name, err := resolveSessionName(m, args)
	if err != nil {
		return err
	}

	if !force {
		// Unpushed work in the container goes with it.
		yes, err := promptConfirm(fmt.Sprintf("Remove session %s and discard its workspace?", name))
		if err != nil {
			return err
		}
		if !yes {
			return nil
		}
	}

	if err := m.Remove(cmd.Context(), name); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Session %s removed\n", name)
	return nil
}
