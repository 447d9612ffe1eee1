package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_missingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Image != "branchbox-base:latest" {
		t.Errorf("Image = %q, want default", cfg.Image)
	}
	if cfg.WorkspaceDir != "/workspace" {
		t.Errorf("WorkspaceDir = %q, want /workspace", cfg.WorkspaceDir)
	}
	if cfg.RepoDir() != "/workspace/repo" {
		t.Errorf("RepoDir() = %q, want /workspace/repo", cfg.RepoDir())
	}
}

func TestLoad_overrides(t *testing.T) {
	dir := t.TempDir()
	data := []byte("image: ubuntu:24.04\nshallow: true\nenv_passthrough: [FOO, BAR]\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), data, 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Image != "ubuntu:24.04" {
		t.Errorf("Image = %q, want override", cfg.Image)
	}
	if !cfg.Shallow {
		t.Error("Shallow = false, want true")
	}
	if len(cfg.EnvPassthrough) != 2 || cfg.EnvPassthrough[0] != "FOO" {
		t.Errorf("EnvPassthrough = %v, want [FOO BAR]", cfg.EnvPassthrough)
	}
	// Unset fields keep their defaults.
	if cfg.User != "developer" {
		t.Errorf("User = %q, want default developer", cfg.User)
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(":::bad"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(dir); err == nil {
		t.Error("Load() should fail on invalid YAML")
	}
}
