package mounts

import (
	"os"
	"path/filepath"
	"testing"
)

func setupHome(t *testing.T, entries ...string) string {
	t.Helper()
	home := t.TempDir()
	for _, e := range entries {
		p := filepath.Join(home, e)
		if filepath.Ext(e) == "" && e != ".gitconfig" {
			if err := os.MkdirAll(p, 0700); err != nil {
				t.Fatal(err)
			}
		} else {
			if err := os.WriteFile(p, []byte("x\n"), 0600); err != nil {
				t.Fatal(err)
			}
		}
	}
	return home
}

func TestPlan_allCredentialsPresent(t *testing.T) {
	home := setupHome(t, ".ssh", ".gitconfig", ".claude")

	got, err := Plan(Options{HomeDir: home, ContainerHome: "/home/developer"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}

	want := []Mount{
		{Source: filepath.Join(home, ".ssh"), Target: "/home/developer/.ssh", ReadOnly: true},
		{Source: filepath.Join(home, ".gitconfig"), Target: "/home/developer/.gitconfig", ReadOnly: true},
		{Source: filepath.Join(home, ".claude"), Target: "/home/developer/.claude", ReadOnly: false},
	}
	if len(got) != len(want) {
		t.Fatalf("Plan() returned %d mounts, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("mount[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestPlan_missingCredentialsSkipped(t *testing.T) {
	home := setupHome(t, ".gitconfig")

	got, err := Plan(Options{HomeDir: home, ContainerHome: "/home/developer"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Plan() returned %d mounts, want 1: %+v", len(got), got)
	}
	if got[0].Target != "/home/developer/.gitconfig" || !got[0].ReadOnly {
		t.Errorf("unexpected mount: %+v", got[0])
	}
}

func TestPlan_localRepoStaging(t *testing.T) {
	home := setupHome(t)
	repo := t.TempDir()

	got, err := Plan(Options{HomeDir: home, ContainerHome: "/home/developer", LocalRepoPath: repo})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Plan() returned %d mounts, want 1: %+v", len(got), got)
	}
	m := got[0]
	if m.Source != repo || m.Target != HostRepoTarget || !m.ReadOnly {
		t.Errorf("staging mount = %+v, want read-only %s -> %s", m, repo, HostRepoTarget)
	}
}

func TestPlan_claudeDirReadWrite(t *testing.T) {
	home := setupHome(t, ".claude")

	got, err := Plan(Options{HomeDir: home, ContainerHome: "/home/developer"})
	if err != nil {
		t.Fatalf("Plan() error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Plan() returned %d mounts, want 1: %+v", len(got), got)
	}
	if got[0].ReadOnly {
		t.Error("claude config mount should be read-write")
	}
}
