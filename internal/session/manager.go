package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/brausepulver/branchbox/internal/config"
	"github.com/brausepulver/branchbox/internal/engine"
	"github.com/brausepulver/branchbox/internal/identity"
	"github.com/brausepulver/branchbox/internal/mounts"
	"github.com/brausepulver/branchbox/internal/registry"
	"github.com/brausepulver/branchbox/internal/source"
	"github.com/brausepulver/branchbox/internal/ui"
)

// Label keys recorded on session containers, mirroring registry metadata so
// engine-side state can be matched back to sessions.
const (
	LabelRepo   = "branchbox.repo"
	LabelBranch = "branchbox.branch"
	LabelSource = "branchbox.source"
)

// Manager drives sessions through their lifecycle. All lifecycle
// transitions for one identity are mutually exclusive; operations on
// different identities proceed independently.
type Manager struct {
	engine engine.Engine
	store  *registry.Store
	cfg    *config.Config
	out    io.Writer

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager wires a Manager from its collaborators. Progress output goes
// to out.
func NewManager(eng engine.Engine, store *registry.Store, cfg *config.Config, out io.Writer) *Manager {
	if out == nil {
		out = io.Discard
	}
	return &Manager{
		engine: eng,
		store:  store,
		cfg:    cfg,
		out:    out,
		locks:  make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex serializing operations on one identity.
func (m *Manager) lockFor(name string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[name]
	if !ok {
		l = &sync.Mutex{}
		m.locks[name] = l
	}
	return l
}

// CreateOpts configures session creation.
type CreateOpts struct {
	// SourceRef is a repository URL or local path.
	SourceRef string
	// Branch is the requested workspace branch; empty defers to the
	// source's base branch.
	Branch string
	// Start leaves the container running after provisioning. When false
	// the session ends up ready but stopped.
	Start bool
}

// Create provisions a session for (source, branch), or re-attaches to the
// existing one. Creating the same identity twice never yields two
// containers: concurrent calls serialize per identity, and a registry hit
// with a live container short-circuits into a start.
func (m *Manager) Create(ctx context.Context, opts CreateOpts) (*Session, error) {
	src, err := source.Parse(opts.SourceRef)
	if err != nil {
		return nil, err
	}

	res, err := source.ResolveBranch(src, opts.Branch)
	if err != nil {
		return nil, err
	}

	id, err := identity.Resolve(src.Ref, res.Branch)
	if err != nil {
		return nil, err
	}
	name := id.Name()

	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if rec, err := m.store.Get(name); err == nil {
		if rec.SourceRef != src.Ref {
			return nil, fmt.Errorf("%w: %s already belongs to source %s", identity.ErrInvalidIdentity, name, rec.SourceRef)
		}
		// Sanitization can fold distinct branch names (feature/x and
		// feature-x) into the same identity; never hand out the wrong
		// branch's workspace.
		if rec.Branch != res.Branch {
			return nil, fmt.Errorf("%w: %s already tracks branch %s, not %s", identity.ErrInvalidIdentity, name, rec.Branch, res.Branch)
		}

		status, statusErr := m.engine.Status(ctx, name)
		if statusErr == nil {
			return m.reattach(ctx, rec, status, opts.Start)
		}
		if !errors.Is(statusErr, engine.ErrNotFound) {
			return nil, statusErr
		}
		// Registry entry without a container: a stale record from an
		// externally removed container. Prune and provision fresh.
		fmt.Fprintf(m.out, "Session %s has no container, re-provisioning\n", name)
		if err := m.store.Delete(name); err != nil {
			return nil, err
		}
	}

	return m.provision(ctx, id, src, res, opts.Start)
}

// reattach implements the idempotent create path for a live session.
func (m *Manager) reattach(ctx context.Context, rec *registry.Record, status engine.Status, start bool) (*Session, error) {
	sess := fromRecord(rec)
	sess.State = stateFor(status)

	fmt.Fprintf(m.out, "Session %s already exists\n", sess.Name())
	if start && sess.State != StateRunning {
		if err := m.engine.Start(ctx, sess.Name()); err != nil {
			return nil, err
		}
		sess.State = StateRunning
	}

	if string(sess.State) != rec.State {
		rec.State = string(sess.State)
		if err := m.store.Upsert(rec); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

// provision builds a new session container. Any failure after container
// allocation destroys the container again; the registry is only written
// once the session is fully usable.
func (m *Manager) provision(ctx context.Context, id identity.Identity, src source.Source, res source.BranchResolution, start bool) (*Session, error) {
	name := id.Name()
	fail := func(stage string, err error) (*Session, error) {
		return nil, fmt.Errorf("%w: session %s: %s: %v", ErrProvisioningFailed, name, stage, err)
	}

	fmt.Fprintf(m.out, "Creating session %s\n", name)
	steps := ui.NewSteps(m.out, 4)

	steps.Start("Preparing image %s", m.cfg.Image)
	if err := m.engine.EnsureImage(ctx, m.cfg.Image); err != nil {
		return fail("image", err)
	}

	planOpts := mounts.Options{ContainerHome: m.cfg.ContainerHome}
	if src.Kind == source.Local {
		planOpts.LocalRepoPath = src.Ref
	}
	planned, err := mounts.Plan(planOpts)
	if err != nil {
		return fail("mount planning", err)
	}

	spec := engine.CreateSpec{
		Name:    name,
		Image:   m.cfg.Image,
		WorkDir: m.cfg.WorkspaceDir,
		Env:     m.passthroughEnv(),
		Labels: map[string]string{
			LabelRepo:   id.Repo,
			LabelBranch: res.Branch,
			LabelSource: src.Ref,
		},
	}
	for _, pm := range planned {
		spec.Mounts = append(spec.Mounts, engine.Mount{Source: pm.Source, Target: pm.Target, ReadOnly: pm.ReadOnly})
	}

	steps.Start("Creating container %s", name)
	containerID, err := m.engine.Create(ctx, spec)
	if err != nil {
		return fail("engine create", err)
	}

	if err := m.engine.Start(ctx, name); err != nil {
		m.rollback(name)
		return fail("engine start", err)
	}

	if err := m.materialize(ctx, name, src, res, steps); err != nil {
		m.rollback(name)
		return nil, fmt.Errorf("%w: session %s: materialization: %v", ErrProvisioningFailed, name, err)
	}

	state := StateRunning
	if !start {
		if err := m.engine.Stop(ctx, name); err != nil {
			m.rollback(name)
			return fail("engine stop", err)
		}
		state = StateReady
	}

	sess := &Session{
		Identity:    id,
		Source:      src,
		Branch:      res.Branch,
		ContainerID: containerID,
		State:       state,
		CreatedAt:   time.Now(),
	}

	// Commit point: only now does the session become visible.
	if err := m.store.Upsert(toRecord(sess)); err != nil {
		m.rollback(name)
		return fail("registry commit", err)
	}

	return sess, nil
}

// rollback destroys a partially provisioned container. It runs on a fresh
// context so cancellation of the create still cleans up.
func (m *Manager) rollback(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.engine.Remove(ctx, name); err != nil {
		fmt.Fprintf(m.out, "Warning: could not remove partial container %s: %v\n", name, err)
	}
}

func (m *Manager) passthroughEnv() []string {
	var env []string
	for _, key := range m.cfg.EnvPassthrough {
		if v := os.Getenv(key); v != "" {
			env = append(env, key+"="+v)
		}
	}
	return env
}

// Get returns the session for a name, with its lifecycle state reconciled
// against the live engine. Discrepancies are healed in the registry.
func (m *Manager) Get(ctx context.Context, name string) (*Session, error) {
	rec, err := m.store.Get(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return m.reconcile(ctx, rec)
}

// List returns all sessions, reconciled against the engine.
func (m *Manager) List(ctx context.Context) ([]*Session, error) {
	recs := m.store.List()
	out := make([]*Session, 0, len(recs))
	for _, rec := range recs {
		sess, err := m.reconcile(ctx, rec)
		if err != nil {
			return nil, err
		}
		out = append(out, sess)
	}
	return out, nil
}

// Identities lists the known session identities, for compound-name lookup.
func (m *Manager) Identities() []identity.Identity {
	recs := m.store.List()
	out := make([]identity.Identity, 0, len(recs))
	for _, rec := range recs {
		out = append(out, fromRecord(rec).Identity)
	}
	return out
}

func (m *Manager) reconcile(ctx context.Context, rec *registry.Record) (*Session, error) {
	sess := fromRecord(rec)

	status, err := m.engine.Status(ctx, sess.Name())
	switch {
	case err == nil:
		sess.State = stateFor(status)
	case errors.Is(err, engine.ErrNotFound):
		sess.State = StateMissing
	default:
		return nil, err
	}

	if string(sess.State) != rec.State {
		rec.State = string(sess.State)
		if err := m.store.Upsert(rec); err != nil {
			return nil, err
		}
	}
	return sess, nil
}

func stateFor(status engine.Status) State {
	switch status {
	case engine.StatusRunning:
		return StateRunning
	case engine.StatusCreated:
		return StateReady
	case engine.StatusMissing:
		return StateMissing
	default:
		return StateStopped
	}
}

// Start transitions a session to running.
func (m *Manager) Start(ctx context.Context, name string) error {
	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.Get(ctx, name)
	if err != nil {
		return err
	}
	if sess.State == StateRunning {
		return nil
	}
	if err := m.engine.Start(ctx, name); err != nil {
		return err
	}
	return m.heal(name, StateRunning)
}

// Stop transitions a session to stopped.
func (m *Manager) Stop(ctx context.Context, name string) error {
	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.Get(ctx, name)
	if err != nil {
		return err
	}
	if sess.State != StateRunning {
		return nil
	}
	if err := m.engine.Stop(ctx, name); err != nil {
		return err
	}
	return m.heal(name, StateStopped)
}

// Remove destroys the session's container and deletes its registry entry.
// Terminal: a later create for the same identity provisions from scratch.
func (m *Manager) Remove(ctx context.Context, name string) error {
	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	if _, err := m.store.Get(name); err != nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := m.engine.Remove(ctx, name); err != nil {
		return err
	}
	return m.store.Delete(name)
}

func (m *Manager) heal(name string, state State) error {
	rec, err := m.store.Get(name)
	if err != nil {
		return nil // session vanished, nothing to heal
	}
	if rec.State == string(state) {
		return nil
	}
	rec.State = string(state)
	return m.store.Upsert(rec)
}

// EnsureRunning starts the session's container if it is not running.
// Used by the exec paths so a stopped session transparently resumes.
func (m *Manager) EnsureRunning(ctx context.Context, name string) (*Session, error) {
	lock := m.lockFor(name)
	lock.Lock()
	defer lock.Unlock()

	sess, err := m.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	switch sess.State {
	case StateRunning:
		return sess, nil
	case StateMissing:
		return nil, fmt.Errorf("%w: container for %s is gone", ErrNotFound, name)
	}

	fmt.Fprintf(m.out, "Starting session %s\n", name)
	if err := m.engine.Start(ctx, name); err != nil {
		return nil, err
	}
	if err := m.heal(name, StateRunning); err != nil {
		return nil, err
	}
	sess.State = StateRunning
	return sess, nil
}

// RepoDir returns the workspace repository path inside session containers.
func (m *Manager) RepoDir() string { return m.cfg.RepoDir() }

// Exec runs a command inside the session's workspace, starting the session
// first if needed. Lifecycle state is not otherwise touched.
func (m *Manager) Exec(ctx context.Context, name string, cmd []string) (engine.ExecResult, error) {
	if _, err := m.EnsureRunning(ctx, name); err != nil {
		return engine.ExecResult{}, err
	}
	return m.engine.Exec(ctx, name, engine.ExecSpec{
		Cmd:     cmd,
		WorkDir: m.cfg.RepoDir(),
		User:    m.cfg.User,
	})
}

// ExecInteractive runs a command attached to the caller's terminal inside
// the session's workspace.
func (m *Manager) ExecInteractive(ctx context.Context, name string, cmd []string) error {
	if _, err := m.EnsureRunning(ctx, name); err != nil {
		return err
	}
	return m.engine.ExecInteractive(ctx, name, engine.ExecSpec{
		Cmd:     cmd,
		WorkDir: m.cfg.RepoDir(),
		User:    m.cfg.User,
	})
}
