package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/brausepulver/branchbox/internal/engine"
	"github.com/brausepulver/branchbox/internal/git"
	"github.com/brausepulver/branchbox/internal/mounts"
	"github.com/brausepulver/branchbox/internal/source"
	"github.com/brausepulver/branchbox/internal/ui"
)

// installers maps dependency manifests to the command that installs them.
// Checked in order; every match runs.
var installers = []struct {
	file string
	cmd  string
}{
	{"requirements.txt", "pip install -r requirements.txt"},
	{"pyproject.toml", "uv sync"},
	{"package-lock.json", "npm ci"},
	{"yarn.lock", "yarn install --immutable"},
	{"pnpm-lock.yaml", "pnpm install --frozen-lockfile"},
}

// materialize populates the container workspace with a working copy of the
// repository at the resolved branch. This is the only point where
// repository content enters the session.
func (m *Manager) materialize(ctx context.Context, name string, src source.Source, res source.BranchResolution, steps *ui.Steps) error {
	repoDir := m.cfg.RepoDir()

	steps.Start("Cloning repository")
	switch src.Kind {
	case source.Local:
		// The staging mount is owned by the host user; without this the
		// clone fails git's dubious-ownership check.
		if err := m.execAs(ctx, name, "root", "", "git", "config", "--system", "--add", "safe.directory", mounts.HostRepoTarget); err != nil {
			return err
		}
		if err := m.execAs(ctx, name, m.cfg.User, "", "git", "clone", mounts.HostRepoTarget, repoDir); err != nil {
			return fmt.Errorf("%w: %v", source.ErrUnavailable, err)
		}
		// Point origin at the host repo's real upstream so push targets
		// the remote, never the read-only staging mount.
		if upstream, err := git.RemoteURL(src.Ref); err == nil && upstream != "" {
			if err := m.execAs(ctx, name, m.cfg.User, repoDir, "git", "remote", "set-url", "origin", upstream); err != nil {
				return err
			}
		}
	default:
		args := []string{"git", "clone"}
		if m.cfg.Shallow {
			args = append(args, "--depth", "1")
			// --depth implies --single-branch; an existing non-default
			// branch has to be named or the later checkout finds nothing.
			if res.Mode == source.CheckoutExisting {
				args = append(args, "--branch", res.Branch)
			}
		}
		args = append(args, src.Ref, repoDir)
		if err := m.execAs(ctx, name, m.cfg.User, "", args...); err != nil {
			return fmt.Errorf("%w: %v", source.ErrUnavailable, err)
		}
	}

	if err := m.applyResolution(ctx, name, repoDir, res, steps); err != nil {
		return err
	}

	return m.installDependencies(ctx, name, repoDir, steps)
}

// applyResolution puts the workspace on the resolved branch. The clone is
// already on the source's base branch, so CreateNew branches from HEAD and
// CheckoutExisting switches via the clone's remote tracking refs.
func (m *Manager) applyResolution(ctx context.Context, name, repoDir string, res source.BranchResolution, steps *ui.Steps) error {
	var err error
	switch res.Mode {
	case source.CreateNew:
		steps.Log("creating branch %s from %s", res.Branch, res.From)
		err = m.execAs(ctx, name, m.cfg.User, repoDir, "git", "checkout", "-b", res.Branch)
	default:
		current, currErr := m.execOutput(ctx, name, repoDir, "git", "branch", "--show-current")
		if currErr != nil {
			return currErr
		}
		if strings.TrimSpace(current) == res.Branch {
			return nil
		}
		steps.Log("checking out branch %s", res.Branch)
		err = m.execAs(ctx, name, m.cfg.User, repoDir, "git", "checkout", res.Branch)
	}
	if err != nil {
		return fmt.Errorf("%w: branch %s: %v", ErrBranchConflict, res.Branch, err)
	}
	return nil
}

// installDependencies detects common dependency manifests in the workspace
// and runs the matching installers.
func (m *Manager) installDependencies(ctx context.Context, name, repoDir string, steps *ui.Steps) error {
	steps.Start("Installing dependencies")
	for _, inst := range installers {
		probe, err := m.engine.Exec(ctx, name, engine.ExecSpec{
			Cmd:  []string{"test", "-f", repoDir + "/" + inst.file},
			User: m.cfg.User,
		})
		if err != nil {
			return err
		}
		if !probe.Ok() {
			continue
		}

		steps.Log("found %s, running %s", inst.file, inst.cmd)
		if err := m.execAs(ctx, name, m.cfg.User, repoDir, "bash", "-lc", inst.cmd); err != nil {
			return fmt.Errorf("installing dependencies via %s: %w", inst.file, err)
		}
	}
	return nil
}

// execAs runs a command inside the container and fails on non-zero exit,
// including the captured output in the error.
func (m *Manager) execAs(ctx context.Context, name, user, workDir string, cmd ...string) error {
	res, err := m.engine.Exec(ctx, name, engine.ExecSpec{Cmd: cmd, User: user, WorkDir: workDir})
	if err != nil {
		return err
	}
	if !res.Ok() {
		return fmt.Errorf("%s exited %d: %s", strings.Join(cmd, " "), res.ExitCode, strings.TrimSpace(res.Output))
	}
	return nil
}

// execOutput runs a command as the workspace user and returns its output.
func (m *Manager) execOutput(ctx context.Context, name, workDir string, cmd ...string) (string, error) {
	res, err := m.engine.Exec(ctx, name, engine.ExecSpec{Cmd: cmd, User: m.cfg.User, WorkDir: workDir})
	if err != nil {
		return "", err
	}
	if !res.Ok() {
		return "", fmt.Errorf("%s exited %d: %s", strings.Join(cmd, " "), res.ExitCode, strings.TrimSpace(res.Output))
	}
	return res.Output, nil
}
