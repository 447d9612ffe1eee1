package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/brausepulver/branchbox/internal/testutil"
)

func TestRunRm_force(t *testing.T) {
	fake := withFakeEngine(t)
	work := testutil.CreateWorkRepo(t)
	dataDir := t.TempDir()

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--data-dir", dataDir, "create", work, "feature"})
	if err := root.Execute(); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var buf bytes.Buffer
	root2 := newRootCmd()
	root2.SetOut(&buf)
	root2.SetArgs([]string{"--data-dir", dataDir, "rm", "--force", "work.feature"})
	if err := root2.Execute(); err != nil {
		t.Fatalf("rm failed: %v", err)
	}

	if fake.Len() != 0 {
		t.Errorf("engine has %d containers after rm, want 0", fake.Len())
	}
	if !strings.Contains(buf.String(), "removed") {
		t.Errorf("output %q does not confirm removal", buf.String())
	}
}

func TestRunRm_nonInteractiveNeedsForce(t *testing.T) {
	fake := withFakeEngine(t)
	work := testutil.CreateWorkRepo(t)
	dataDir := t.TempDir()

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--data-dir", dataDir, "create", work, "feature"})
	if err := root.Execute(); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// Test stdin is not a terminal, so the confirmation cannot be asked.
	root2 := newRootCmd()
	root2.SetOut(io.Discard)
	root2.SetErr(io.Discard)
	root2.SetArgs([]string{"--data-dir", dataDir, "rm", "work.feature"})
	err := root2.Execute()
	if err == nil {
		t.Fatal("rm without --force should fail when stdin is not a TTY")
	}
	if !strings.Contains(err.Error(), "--force") {
		t.Errorf("error %q does not point at --force", err)
	}
	if fake.Len() != 1 {
		t.Errorf("engine has %d containers, want 1 (nothing removed)", fake.Len())
	}
}

func TestRunRm_unknownSession(t *testing.T) {
	withFakeEngine(t)
	dataDir := t.TempDir()

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"--data-dir", dataDir, "rm", "--force", "ghost.main"})
	if err := root.Execute(); err == nil {
		t.Fatal("rm should fail for an unknown session")
	}
}
