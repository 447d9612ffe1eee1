// Package engine defines the container engine boundary. Session code
// depends only on the Engine interface; the Docker implementation and the
// in-memory fake used in tests both satisfy it.
package engine

import (
	"context"
	"errors"
)

// ErrNotFound is returned when an operation targets a container the engine
// does not know about.
var ErrNotFound = errors.New("container not found")

// ErrUnavailable is returned when the engine daemon cannot be reached.
var ErrUnavailable = errors.New("container engine unavailable")

// Status is the engine-reported container state.
type Status string

const (
	StatusCreated Status = "created"
	StatusRunning Status = "running"
	StatusStopped Status = "stopped"
	StatusMissing Status = "missing"
)

// Mount is a declarative bind mount between host and container.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

// CreateSpec describes a container to create.
type CreateSpec struct {
	Name    string
	Image   string
	WorkDir string
	Env     []string
	Labels  map[string]string
	Mounts  []Mount
}

// ExecSpec describes a command to run inside a container.
type ExecSpec struct {
	Cmd     []string
	WorkDir string
	User    string
	Env     []string
}

// ExecResult carries the outcome of a non-interactive exec.
type ExecResult struct {
	ExitCode int
	Output   string
}

// Ok reports whether the command exited successfully.
func (r ExecResult) Ok() bool { return r.ExitCode == 0 }

// Engine is the capability set the session layer needs from a container
// runtime. Containers are addressed by name; names are unique per engine.
type Engine interface {
	// Ping checks that the engine daemon is reachable.
	Ping(ctx context.Context) error

	// EnsureImage makes the image available locally, pulling if necessary.
	EnsureImage(ctx context.Context, image string) error

	// Create creates a container without starting it and returns its ID.
	Create(ctx context.Context, spec CreateSpec) (string, error)

	Start(ctx context.Context, name string) error
	Stop(ctx context.Context, name string) error
	Remove(ctx context.Context, name string) error

	// Status inspects a container. A vanished container yields
	// StatusMissing together with ErrNotFound.
	Status(ctx context.Context, name string) (Status, error)

	// Exec runs a command to completion, capturing combined output.
	Exec(ctx context.Context, name string, spec ExecSpec) (ExecResult, error)

	// ExecInteractive runs a command attached to the caller's terminal.
	ExecInteractive(ctx context.Context, name string, spec ExecSpec) error
}
