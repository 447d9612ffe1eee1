package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/docker/pkg/stdcopy"
)

// Docker implements Engine against the Docker daemon.
type Docker struct {
	cli *client.Client
}

// NewDocker connects to the Docker daemon using the standard environment
// configuration (DOCKER_HOST etc.).
func NewDocker() (*Docker, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return &Docker{cli: cli}, nil
}

// Close releases the underlying client connection.
func (d *Docker) Close() error {
	return d.cli.Close()
}

func (d *Docker) Ping(ctx context.Context) error {
	if _, err := d.cli.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (d *Docker) EnsureImage(ctx context.Context, ref string) error {
	_, _, err := d.cli.ImageInspectWithRaw(ctx, ref)
	if err == nil {
		return nil
	}
	if !errdefs.IsNotFound(err) {
		return fmt.Errorf("inspecting image %s: %w", ref, err)
	}

	rc, err := d.cli.ImagePull(ctx, ref, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("pulling image %s: %w", ref, err)
	}
	defer rc.Close()
	// The pull only completes once the response stream is drained.
	if _, err := io.Copy(io.Discard, rc); err != nil {
		return fmt.Errorf("pulling image %s: %w", ref, err)
	}
	return nil
}

func (d *Docker) Create(ctx context.Context, spec CreateSpec) (string, error) {
	mounts := make([]mount.Mount, 0, len(spec.Mounts))
	for _, m := range spec.Mounts {
		mounts = append(mounts, mount.Mount{
			Type:     mount.TypeBind,
			Source:   m.Source,
			Target:   m.Target,
			ReadOnly: m.ReadOnly,
		})
	}

	cfg := &container.Config{
		Image:      spec.Image,
		WorkingDir: spec.WorkDir,
		Env:        spec.Env,
		Labels:     spec.Labels,
		Tty:        true,
		OpenStdin:  true,
	}
	hostCfg := &container.HostConfig{Mounts: mounts}

	resp, err := d.cli.ContainerCreate(ctx, cfg, hostCfg, nil, nil, spec.Name)
	if err != nil {
		return "", fmt.Errorf("creating container %s: %w", spec.Name, err)
	}
	return resp.ID, nil
}

func (d *Docker) Start(ctx context.Context, name string) error {
	if err := d.cli.ContainerStart(ctx, name, container.StartOptions{}); err != nil {
		return d.wrap(name, err)
	}
	return nil
}

func (d *Docker) Stop(ctx context.Context, name string) error {
	if err := d.cli.ContainerStop(ctx, name, container.StopOptions{}); err != nil {
		return d.wrap(name, err)
	}
	return nil
}

func (d *Docker) Remove(ctx context.Context, name string) error {
	err := d.cli.ContainerRemove(ctx, name, container.RemoveOptions{Force: true})
	if err != nil && !errdefs.IsNotFound(err) {
		return fmt.Errorf("removing container %s: %w", name, err)
	}
	return nil
}

func (d *Docker) Status(ctx context.Context, name string) (Status, error) {
	info, err := d.cli.ContainerInspect(ctx, name)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return StatusMissing, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return StatusMissing, fmt.Errorf("inspecting container %s: %w", name, err)
	}

	switch info.State.Status {
	case "running", "restarting":
		return StatusRunning, nil
	case "created":
		return StatusCreated, nil
	default: // exited, paused, dead, removing
		return StatusStopped, nil
	}
}

func (d *Docker) Exec(ctx context.Context, name string, spec ExecSpec) (ExecResult, error) {
	execResp, err := d.cli.ContainerExecCreate(ctx, name, container.ExecOptions{
		Cmd:          spec.Cmd,
		WorkingDir:   spec.WorkDir,
		User:         spec.User,
		Env:          spec.Env,
		AttachStdout: true,
		AttachStderr: true,
	})
	if err != nil {
		return ExecResult{}, d.wrap(name, err)
	}

	attach, err := d.cli.ContainerExecAttach(ctx, execResp.ID, container.ExecAttachOptions{})
	if err != nil {
		return ExecResult{}, fmt.Errorf("attaching to exec in %s: %w", name, err)
	}
	defer attach.Close()

	var buf bytes.Buffer
	if _, err := stdcopy.StdCopy(&buf, &buf, attach.Reader); err != nil {
		return ExecResult{}, fmt.Errorf("reading exec output from %s: %w", name, err)
	}

	inspect, err := d.cli.ContainerExecInspect(ctx, execResp.ID)
	if err != nil {
		return ExecResult{}, fmt.Errorf("inspecting exec in %s: %w", name, err)
	}

	return ExecResult{ExitCode: inspect.ExitCode, Output: buf.String()}, nil
}

// ExecInteractive allocates a TTY by delegating to the docker CLI; the SDK's
// hijacked connection does not handle terminal resizing or raw mode.
func (d *Docker) ExecInteractive(ctx context.Context, name string, spec ExecSpec) error {
	args := []string{"exec", "-it"}
	if spec.WorkDir != "" {
		args = append(args, "-w", spec.WorkDir)
	}
	if spec.User != "" {
		args = append(args, "-u", spec.User)
	}
	for _, e := range spec.Env {
		args = append(args, "-e", e)
	}
	args = append(args, name)
	args = append(args, spec.Cmd...)

	cmd := exec.CommandContext(ctx, "docker", args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func (d *Docker) wrap(name string, err error) error {
	if errdefs.IsNotFound(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return err
}
