package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newGitCmd() *cobra.Command {
	return &cobra.Command{
		Use:                "git [session] -- <git args...>",
		Short:              "Run a git command inside a session's workspace",
		DisableFlagParsing: true,
		RunE:               runGit,
	}
}

func runGit(cmd *cobra.Command, args []string) error {
	var sessionArgs, gitArgs []string
	sep := -1
	for i, a := range args {
		if a == "--" {
			sep = i
			break
		}
	}
	if sep >= 0 {
		sessionArgs = args[:sep]
		gitArgs = args[sep+1:]
	} else {
		// Without a separator everything is the git command line and the
		// session comes from the current directory.
		gitArgs = args
	}
	if len(gitArgs) == 0 {
		return fmt.Errorf("usage: branchbox git [session] -- <git args...>")
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

	res, err := m.Exec(cmd.Context(), name, append([]string{"git"}, gitArgs...))
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), res.Output)
	if !res.Ok() {
		return fmt.Errorf("git %s exited %d", strings.Join(gitArgs, " "), res.ExitCode)
	}
	return nil
}
