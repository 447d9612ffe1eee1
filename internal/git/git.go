package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CurrentBranch returns the checked-out branch of a host repository, or
// empty string for a detached HEAD.
func CurrentBranch(repoDir string) (string, error) {
	out, err := output(repoDir, "symbolic-ref", "--short", "HEAD")
	if err != nil {
		// Detached HEAD: symbolic-ref fails.
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// BranchExists checks if a local branch exists in the host repository.
func BranchExists(repoDir, branch string) (bool, error) {
	err := run(repoDir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	if err != nil {
		if isExitError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// RemoteBranchExists checks whether a branch exists on a remote repository
// without cloning it.
func RemoteBranchExists(url, branch string) (bool, error) {
	out, err := output(".", "ls-remote", "--heads", url, "refs/heads/"+branch)
	if err != nil {
		return false, fmt.Errorf("ls-remote %s: %w", url, err)
	}
	return strings.TrimSpace(out) != "", nil
}

// DefaultBranch detects the default branch of a remote repository using
// git ls-remote --symref. Returns an error if the branch cannot be detected.
func DefaultBranch(url string) (string, error) {
	out, err := output(".", "ls-remote", "--symref", url, "HEAD")
	if err != nil {
		return "", fmt.Errorf("ls-remote %s: %w", url, err)
	}
	// Expected output line: "ref: refs/heads/main\tHEAD"
	for _, line := range strings.Split(out, "\n") {
		parts := strings.Fields(line)
		if len(parts) >= 2 && parts[0] == "ref:" && strings.HasPrefix(parts[1], "refs/heads/") {
			return strings.TrimPrefix(parts[1], "refs/heads/"), nil
		}
	}
	return "", fmt.Errorf("default branch not found for %s", url)
}

// IsRepo returns true if dir is inside a git repository.
func IsRepo(dir string) bool {
	return run(dir, "rev-parse", "--git-dir") == nil
}

// IsDirty returns true if the working tree has uncommitted changes.
func IsDirty(repoDir string) (bool, error) {
	out, err := output(repoDir, "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// HeadCommit returns the full SHA of HEAD.
func HeadCommit(repoDir string) (string, error) {
	out, err := output(repoDir, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// RemoteURL returns the origin remote URL of a host repository, or empty
// string if no origin remote is configured.
func RemoteURL(repoDir string) (string, error) {
	out, err := output(repoDir, "remote", "get-url", "origin")
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(out), nil
}

// IsInstalled returns true if git is available on the system PATH.
func IsInstalled() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// run executes a git command in the given directory, discarding stdout.
// Stderr is captured and included in the error message on failure.
func run(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// output executes a git command and returns its stdout.
func output(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, stderr.String())
	}
	return stdout.String(), nil
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
