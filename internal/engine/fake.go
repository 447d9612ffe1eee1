package engine

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// ExecCall records one Exec invocation against the fake.
type ExecCall struct {
	Container string
	Spec      ExecSpec
}

// Fake is an in-memory Engine for tests. Exec behavior is scripted through
// ExecHook; every call is recorded for assertions.
type Fake struct {
	mu         sync.Mutex
	containers map[string]*fakeContainer

	// CreateErr, when set, fails every Create call.
	CreateErr error
	// CreateDelay widens the provisioning window for concurrency tests.
	CreateDelay time.Duration
	// ExecHook, when set, decides the result of non-interactive execs.
	// The default is success with empty output.
	ExecHook func(container string, spec ExecSpec) (ExecResult, error)

	CreateCalls int
	Execs       []ExecCall
	Interactive []ExecCall
}

type fakeContainer struct {
	id     string
	spec   CreateSpec
	status Status
}

// NewFake returns an empty fake engine.
func NewFake() *Fake {
	return &Fake{containers: make(map[string]*fakeContainer)}
}

func (f *Fake) Ping(context.Context) error { return nil }

func (f *Fake) EnsureImage(context.Context, string) error { return nil }

func (f *Fake) Create(ctx context.Context, spec CreateSpec) (string, error) {
	if f.CreateDelay > 0 {
		select {
		case <-time.After(f.CreateDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.CreateCalls++
	if f.CreateErr != nil {
		return "", f.CreateErr
	}
	if _, exists := f.containers[spec.Name]; exists {
		return "", fmt.Errorf("container name %s already in use", spec.Name)
	}

	id := fmt.Sprintf("fake-%s-%d", spec.Name, f.CreateCalls)
	f.containers[spec.Name] = &fakeContainer{id: id, spec: spec, status: StatusCreated}
	return id, nil
}

func (f *Fake) Start(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	c.status = StatusRunning
	return nil
}

func (f *Fake) Stop(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	c.status = StatusStopped
	return nil
}

func (f *Fake) Remove(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.containers, name)
	return nil
}

func (f *Fake) Status(_ context.Context, name string) (Status, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[name]
	if !ok {
		return StatusMissing, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return c.status, nil
}

func (f *Fake) Exec(_ context.Context, name string, spec ExecSpec) (ExecResult, error) {
	f.mu.Lock()
	c, ok := f.containers[name]
	if ok && c.status != StatusRunning {
		f.mu.Unlock()
		return ExecResult{}, fmt.Errorf("container %s is not running", name)
	}
	f.Execs = append(f.Execs, ExecCall{Container: name, Spec: spec})
	hook := f.ExecHook
	f.mu.Unlock()

	if !ok {
		return ExecResult{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if hook != nil {
		return hook(name, spec)
	}
	return ExecResult{ExitCode: 0}, nil
}

func (f *Fake) ExecInteractive(_ context.Context, name string, spec ExecSpec) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.containers[name]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	f.Interactive = append(f.Interactive, ExecCall{Container: name, Spec: spec})
	return nil
}

// ContainerSpec returns the CreateSpec a container was created with.
func (f *Fake) ContainerSpec(name string) (CreateSpec, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[name]
	if !ok {
		return CreateSpec{}, false
	}
	return c.spec, true
}

// ContainerID returns the engine ID assigned to a container.
func (f *Fake) ContainerID(name string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.containers[name]
	if !ok {
		return "", false
	}
	return c.id, true
}

// SetStatus overrides a container's status, simulating state changes made
// outside this tool.
func (f *Fake) SetStatus(name string, status Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.containers[name]; ok {
		c.status = status
	}
}

// Len reports the number of live containers.
func (f *Fake) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.containers)
}

// ExecCommands flattens recorded exec command lines for assertions.
func (f *Fake) ExecCommands() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]string, 0, len(f.Execs))
	for _, c := range f.Execs {
		out = append(out, c.Spec.Cmd)
	}
	return out
}
