package main

import (
	"fmt"
	"strings"

	"github.com/brausepulver/branchbox/internal/session"
	"github.com/spf13/cobra"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <repo-url-or-path> [branch]",
		Short: "Create a session for a repository branch",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runCreate,
	}
	cmd.Flags().Bool("no-start", false, "Provision the session but leave it stopped")
	cmd.Flags().BoolP("interactive", "i", false, "Prompt for the branch name")
	cmd.Flags().Bool("code", false, "Open VS Code attached to the session")
	cmd.Flags().Bool("claude", false, "Start claude inside the session")
	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	noStart, _ := cmd.Flags().GetBool("no-start")
	interactive, _ := cmd.Flags().GetBool("interactive")
	openCode, _ := cmd.Flags().GetBool("code")
	openClaude, _ := cmd.Flags().GetBool("claude")

	sourceRef := args[0]
	branch := ""
	if len(args) > 1 {
		branch = args[1]
	}

	if interactive && branch == "" {
		b, err := promptInput("Branch (empty for the default branch)", "feature/my-change", validBranchName)
		if err != nil {
			return err
		}
		branch = strings.TrimSpace(b)
	}

	m, cleanup, err := newSessionManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	sess, err := m.Create(cmd.Context(), session.CreateOpts{
		SourceRef: sourceRef,
		Branch:    branch,
		Start:     !noStart,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session %s is %s (branch %s)\n", sess.Name(), sess.State, sess.Branch)

	if openCode {
		if err := openVSCode(sess.Name(), m.RepoDir()); err != nil {
			return err
		}
	}
	if openClaude {
		return m.ExecInteractive(cmd.Context(), sess.Name(), []string{"claude"})
	}
	return nil
}

func validBranchName(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.ContainsAny(s, " ~^:?*[\\") || strings.HasSuffix(s, "/") || strings.Contains(s, "..") {
		return fmt.Errorf("invalid branch name %q", s)
	}
	return nil
}
