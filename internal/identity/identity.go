// Package identity derives canonical session names from a repository
// reference and branch. The derived name doubles as the container name and
// the registry lookup key, so it must be deterministic and container-safe.
package identity

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// Prefix namespaces every container this tool manages.
const Prefix = "branchbox-"

// Separator joins the repo and branch components of a session name.
// Sanitization never emits a '.', so splitting on it is unambiguous.
const Separator = "."

// ErrInvalidIdentity is returned when a source or branch normalizes to an
// empty name component.
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the canonical (repository, branch) key for a session.
type Identity struct {
	Repo   string
	Branch string
}

// Name returns the full container name for this identity.
func (id Identity) Name() string {
	return Prefix + id.Repo + Separator + id.Branch
}

// Short returns the "repo.branch" shorthand without the tool prefix.
func (id Identity) Short() string {
	return id.Repo + Separator + id.Branch
}

// Resolve derives an Identity from a repository reference (URL or path) and
// a branch name. Both components are sanitized for use in container names.
func Resolve(sourceRef, branch string) (Identity, error) {
	repo := Sanitize(RepoName(sourceRef))
	if repo == "" {
		return Identity{}, fmt.Errorf("%w: cannot derive repository name from %q", ErrInvalidIdentity, sourceRef)
	}
	b := Sanitize(branch)
	if b == "" {
		return Identity{}, fmt.Errorf("%w: branch %q normalizes to an empty name", ErrInvalidIdentity, branch)
	}
	return Identity{Repo: repo, Branch: b}, nil
}

// RepoName extracts the short repository name from a URL or filesystem path.
// Handles SSH (git@host:org/repo.git), scheme URLs, and plain paths.
func RepoName(ref string) string {
	ref = strings.TrimRight(ref, "/")

	// SSH scp-like syntax: everything after the last colon.
	if idx := strings.LastIndex(ref, ":"); idx != -1 && !strings.Contains(ref, "://") {
		ref = ref[idx+1:]
	}

	name := path.Base(strings.ReplaceAll(ref, "\\", "/"))
	name = strings.TrimSuffix(name, ".git")
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// Sanitize normalizes a name component for use in a container name:
// lowercased, with characters outside [a-z0-9-] replaced by hyphens,
// hyphen runs collapsed, and leading/trailing hyphens stripped.
func Sanitize(s string) string {
	s = strings.ToLower(s)

	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}

	out := b.String()
	for strings.Contains(out, "--") {
		out = strings.ReplaceAll(out, "--", "-")
	}
	return strings.Trim(out, "-")
}

// ParseCompound splits a "repo.branch" (or "repo-branch") shorthand into its
// components. known lists the identities currently in the registry; an exact
// match against a known identity wins, preferring the longest repo component
// when several match. Without a registry match the text is split on the last
// separator occurrence.
func ParseCompound(text string, known []Identity) (Identity, error) {
	text = strings.TrimPrefix(text, Prefix)

	var best Identity
	found := false
	for _, id := range known {
		if text == id.Short() || text == id.Repo+"-"+id.Branch {
			if !found || len(id.Repo) > len(best.Repo) {
				best = id
				found = true
			}
		}
	}
	if found {
		return best, nil
	}

	sep := strings.LastIndex(text, Separator)
	if sep <= 0 || sep == len(text)-1 {
		return Identity{}, fmt.Errorf("%w: %q is not in repo.branch form", ErrInvalidIdentity, text)
	}
	return Identity{Repo: text[:sep], Branch: text[sep+1:]}, nil
}
