// Package session implements the session lifecycle: provisioning a
// container for a (repository, branch) identity, idempotent re-attach,
// start/stop/remove, and command execution inside the workspace.
package session

import (
	"errors"
	"time"

	"github.com/brausepulver/branchbox/internal/identity"
	"github.com/brausepulver/branchbox/internal/registry"
	"github.com/brausepulver/branchbox/internal/source"
)

var (
	// ErrNotFound is returned for operations on an unknown session.
	ErrNotFound = errors.New("session not found")
	// ErrProvisioningFailed wraps any failure between container allocation
	// and registry commit. The partial container is rolled back first.
	ErrProvisioningFailed = errors.New("provisioning failed")
	// ErrBranchConflict is returned when the workspace branch cannot be
	// checked out or pushed without diverging from existing state.
	ErrBranchConflict = errors.New("branch conflict")
)

// State is a session's lifecycle state as reported to the user.
type State string

const (
	StateReady   State = "ready"
	StateRunning State = "running"
	StateStopped State = "stopped"
	// StateMissing means the registry knows the session but the container
	// is gone from the engine.
	StateMissing State = "missing"
)

// Session pairs one (repository, branch) identity with one container.
// The container reference never changes over the session's lifetime.
type Session struct {
	Identity    identity.Identity
	Source      source.Source
	Branch      string
	ContainerID string
	State       State
	CreatedAt   time.Time
}

// Name returns the session's container name.
func (s *Session) Name() string { return s.Identity.Name() }

func toRecord(s *Session) *registry.Record {
	return &registry.Record{
		Name:        s.Name(),
		Repo:        s.Identity.Repo,
		Branch:      s.Branch,
		SourceRef:   s.Source.Ref,
		SourceKind:  string(s.Source.Kind),
		ContainerID: s.ContainerID,
		State:       string(s.State),
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func fromRecord(rec *registry.Record) *Session {
	created, _ := time.Parse(time.RFC3339, rec.CreatedAt)
	return &Session{
		Identity:    identity.Identity{Repo: rec.Repo, Branch: identity.Sanitize(rec.Branch)},
		Source:      source.Source{Kind: source.Kind(rec.SourceKind), Ref: rec.SourceRef, Name: rec.Repo},
		Branch:      rec.Branch,
		ContainerID: rec.ContainerID,
		State:       State(rec.State),
		CreatedAt:   created,
	}
}
