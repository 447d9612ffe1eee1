package main

import (
	"github.com/spf13/cobra"
)

func newClaudeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "claude [session] [-- <claude args...>]",
		Short:              "Run claude inside a session",
		DisableFlagParsing: true,
		RunE:               runClaude,
	}
	return cmd
}

func runClaude(cmd *cobra.Command, args []string) error {
	// Everything after -- is forwarded to claude verbatim.
	var sessionArgs, extra []string
	for i, a := range args {
		if a == "--" {
			extra = args[i+1:]
			break
		}
		sessionArgs = append(sessionArgs, a)
	}

	m, cleanup, err := newSessionManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name, err := resolveSessionName(m, sessionArgs)
	if err != nil {
		return err
	}
	return m.ExecInteractive(cmd.Context(), name, append([]string{"claude"}, extra...))
}
