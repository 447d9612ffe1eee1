// Package source models where a session's repository comes from: a local
// path on the host or a remote URL. The distinction is resolved once, here;
// the rest of the pipeline switches on the closed Kind variant instead of
// inspecting the raw reference again.
package source

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/brausepulver/branchbox/internal/git"
	"github.com/brausepulver/branchbox/internal/identity"
)

// ErrUnavailable is returned when a repository source cannot be reached or
// read: missing local path, not a git repository, unreachable remote.
var ErrUnavailable = errors.New("source unavailable")

// Kind distinguishes local path sources from remote URL sources.
type Kind string

const (
	Local  Kind = "local"
	Remote Kind = "remote"
)

// Source is a resolved repository reference.
type Source struct {
	Kind Kind
	// Ref is the absolute path for Local sources or the URL for Remote ones.
	Ref string
	// Name is the short repository name derived from Ref.
	Name string
}

// IsRemoteRef reports whether ref looks like a remote repository URL.
func IsRemoteRef(ref string) bool {
	if strings.Contains(ref, "://") {
		return true
	}
	// SSH scp-like syntax: git@host:org/repo.git
	return strings.HasPrefix(ref, "git@")
}

// Parse classifies a repository reference. Local paths are resolved to
// absolute form and must point at an existing git repository.
func Parse(ref string) (Source, error) {
	name := identity.RepoName(ref)
	if name == "" {
		return Source{}, fmt.Errorf("%w: cannot derive repository name from %q", identity.ErrInvalidIdentity, ref)
	}

	if IsRemoteRef(ref) {
		return Source{Kind: Remote, Ref: ref, Name: name}, nil
	}

	abs, err := filepath.Abs(ref)
	if err != nil {
		return Source{}, fmt.Errorf("%w: resolving path %q: %v", ErrUnavailable, ref, err)
	}
	if !git.IsRepo(abs) {
		return Source{}, fmt.Errorf("%w: %s is not a git repository", ErrUnavailable, abs)
	}
	return Source{Kind: Local, Ref: abs, Name: name}, nil
}

// ResolutionMode says whether materialization checks out an existing branch
// or creates a new one from a base ref.
type ResolutionMode string

const (
	CheckoutExisting ResolutionMode = "checkout"
	CreateNew        ResolutionMode = "create"
)

// BranchResolution is the reconciled branch plan for a session: which branch
// the workspace ends up on, and where a new branch starts from.
type BranchResolution struct {
	Mode   ResolutionMode
	Branch string
	// From is the base ref for CreateNew; empty for CheckoutExisting.
	From string
}

// ResolveBranch reconciles the requested branch against the source's known
// branches. An empty branch selects the source's base branch: the remote
// default branch, or the branch currently checked out on the host copy.
func ResolveBranch(s Source, branch string) (BranchResolution, error) {
	base, err := baseBranch(s)
	if err != nil {
		return BranchResolution{}, err
	}

	if branch == "" || branch == base {
		return BranchResolution{Mode: CheckoutExisting, Branch: base}, nil
	}

	exists, err := branchExists(s, branch)
	if err != nil {
		return BranchResolution{}, err
	}
	if exists {
		return BranchResolution{Mode: CheckoutExisting, Branch: branch}, nil
	}
	return BranchResolution{Mode: CreateNew, Branch: branch, From: base}, nil
}

func baseBranch(s Source) (string, error) {
	switch s.Kind {
	case Remote:
		b, err := git.DefaultBranch(s.Ref)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return b, nil
	default:
		b, err := git.CurrentBranch(s.Ref)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if b == "" {
			// Detached HEAD on the host copy: branch from wherever HEAD is.
			return "HEAD", nil
		}
		return b, nil
	}
}

func branchExists(s Source, branch string) (bool, error) {
	var exists bool
	var err error
	if s.Kind == Remote {
		exists, err = git.RemoteBranchExists(s.Ref, branch)
	} else {
		exists, err = git.BranchExists(s.Ref, branch)
	}
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return exists, nil
}
