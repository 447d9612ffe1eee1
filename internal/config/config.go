// Package config loads the optional config.yaml from the data directory.
// A missing file yields the defaults; partial files override field by field.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the tunable settings for session containers.
type Config struct {
	// Image is the container image sessions run on.
	Image string `yaml:"image,omitempty"`
	// WorkspaceDir is the directory inside the container holding the
	// repository working copy.
	WorkspaceDir string `yaml:"workspace_dir,omitempty"`
	// User is the container user commands run as.
	User string `yaml:"user,omitempty"`
	// ContainerHome is the home directory of User, the target for
	// credential mounts.
	ContainerHome string `yaml:"container_home,omitempty"`
	// Shallow clones remote repositories with --depth 1.
	Shallow bool `yaml:"shallow,omitempty"`
	// EnvPassthrough lists host environment variables forwarded into
	// session containers when set.
	EnvPassthrough []string `yaml:"env_passthrough,omitempty"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Image:          "branchbox-base:latest",
		WorkspaceDir:   "/workspace",
		User:           "developer",
		ContainerHome:  "/home/developer",
		EnvPassthrough: []string{"ANTHROPIC_API_KEY"},
	}
}

// Load reads config.yaml from dataDir. The file is optional.
func Load(dataDir string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dataDir, "config.yaml")) //nolint:gosec // path is under the data dir
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var overrides Config
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	cfg.merge(&overrides)
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.Image != "" {
		c.Image = o.Image
	}
	if o.WorkspaceDir != "" {
		c.WorkspaceDir = o.WorkspaceDir
	}
	if o.User != "" {
		c.User = o.User
	}
	if o.ContainerHome != "" {
		c.ContainerHome = o.ContainerHome
	}
	if o.Shallow {
		c.Shallow = true
	}
	if len(o.EnvPassthrough) > 0 {
		c.EnvPassthrough = o.EnvPassthrough
	}
}

// RepoDir returns the workspace path of the repository working copy.
func (c *Config) RepoDir() string {
	return c.WorkspaceDir + "/repo"
}

// DefaultDataDir returns ~/.branchbox.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".branchbox"), nil
}
