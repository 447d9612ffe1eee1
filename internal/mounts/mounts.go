// Package mounts computes the bind mounts a session container needs.
// Credentials reach the container only through these mounts; their contents
// are never copied into images, config files, or the session registry.
package mounts

import (
	"os"
	"path/filepath"
)

// HostRepoTarget is where a local source repository is staged inside the
// container. The staging mount is read-only; the workspace copy is cloned
// from it so the host tree is never written to.
const HostRepoTarget = "/host-repo"

// Mount is one planned bind mount.
type Mount struct {
	Source   string
	Target   string
	ReadOnly bool
}

// Options configures mount planning.
type Options struct {
	// HomeDir is the host home directory holding credentials. Empty means
	// the current user's home.
	HomeDir string
	// ContainerHome is the home directory of the container user.
	ContainerHome string
	// LocalRepoPath, when set, stages a local source repository read-only
	// at HostRepoTarget.
	LocalRepoPath string
}

// Plan enumerates the mounts for a session: SSH keys (ro), git identity
// config (ro), the claude config directory (rw, it persists session state),
// and the local repository staging mount for local sources. Missing optional
// credential paths are skipped.
func Plan(opts Options) ([]Mount, error) {
	home := opts.HomeDir
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		home = h
	}

	var out []Mount
	add := func(hostPath, target string, readOnly bool) {
		if _, err := os.Stat(hostPath); err != nil {
			return
		}
		out = append(out, Mount{Source: hostPath, Target: target, ReadOnly: readOnly})
	}

	add(filepath.Join(home, ".ssh"), filepath.Join(opts.ContainerHome, ".ssh"), true)
	add(filepath.Join(home, ".gitconfig"), filepath.Join(opts.ContainerHome, ".gitconfig"), true)
	add(filepath.Join(home, ".claude"), filepath.Join(opts.ContainerHome, ".claude"), false)

	if opts.LocalRepoPath != "" {
		out = append(out, Mount{Source: opts.LocalRepoPath, Target: HostRepoTarget, ReadOnly: true})
	}

	return out, nil
}
