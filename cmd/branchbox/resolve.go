package main

import (
	"fmt"
	"os"

	"github.com/brausepulver/branchbox/internal/git"
	"github.com/brausepulver/branchbox/internal/identity"
	"github.com/brausepulver/branchbox/internal/session"
)

// resolveSessionName turns an optional positional argument into a session
// container name. With an argument, "repo.branch" shorthand and full
// container names are accepted; registered sessions win ambiguous splits.
// Without one, the session is inferred from the git repository and branch
// of the current directory.
func resolveSessionName(m *session.Manager, args []string) (string, error) {
	if len(args) > 0 {
		id, err := identity.ParseCompound(args[0], m.Identities())
		if err != nil {
			return "", err
		}
		return id.Name(), nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if !git.IsRepo(cwd) {
		return "", fmt.Errorf("not inside a git repository; pass a session name")
	}
	branch, err := git.CurrentBranch(cwd)
	if err != nil {
		return "", err
	}
	if branch == "" {
		return "", fmt.Errorf("detached HEAD; pass a session name")
	}

	id, err := identity.Resolve(cwd, branch)
	if err != nil {
		return "", err
	}
	return id.Name(), nil
}
