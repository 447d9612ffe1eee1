package session

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// Push commits the workspace's outstanding changes and pushes the session
// branch to origin. Push is the only operation that writes upstream; a
// rejected push surfaces as ErrBranchConflict instead of forcing.
func (m *Manager) Push(ctx context.Context, name string, out io.Writer) error {
	if _, err := m.EnsureRunning(ctx, name); err != nil {
		return err
	}
	repoDir := m.cfg.RepoDir()

	branch, err := m.execOutput(ctx, name, repoDir, "git", "branch", "--show-current")
	if err != nil {
		return fmt.Errorf("session %s: reading current branch: %w", name, err)
	}
	branch = strings.TrimSpace(branch)
	if branch == "" {
		return fmt.Errorf("session %s: workspace is on a detached HEAD", name)
	}

	if err := m.execAs(ctx, name, m.cfg.User, repoDir, "git", "add", "."); err != nil {
		return fmt.Errorf("session %s: staging changes: %w", name, err)
	}

	status, err := m.execOutput(ctx, name, repoDir, "git", "status", "--porcelain")
	if err != nil {
		return fmt.Errorf("session %s: checking status: %w", name, err)
	}

	if strings.TrimSpace(status) != "" {
		msg := fmt.Sprintf("Commit from branchbox session %s", name)
		if err := m.execAs(ctx, name, m.cfg.User, repoDir, "git", "commit", "-m", msg); err != nil {
			return fmt.Errorf("session %s: committing: %w", name, err)
		}
		fmt.Fprintf(out, "Committed outstanding changes\n")
	} else {
		fmt.Fprintf(out, "No changes to commit\n")
	}

	if err := m.execAs(ctx, name, m.cfg.User, repoDir, "git", "push", "origin", branch); err != nil {
		if isRejectedPush(err) {
			return fmt.Errorf("%w: push of %s rejected, pull or rebase inside the session first: %v", ErrBranchConflict, branch, err)
		}
		return fmt.Errorf("session %s: pushing %s: %w", name, branch, err)
	}

	fmt.Fprintf(out, "Pushed %s to origin\n", branch)
	return nil
}

func isRejectedPush(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "rejected") || strings.Contains(msg, "non-fast-forward")
}
