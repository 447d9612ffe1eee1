package main

import (
	"context"
	"io"
	"testing"

	"github.com/brausepulver/branchbox/internal/engine"
	"github.com/brausepulver/branchbox/internal/testutil"
)

func TestRunStartStop(t *testing.T) {
	fake := withFakeEngine(t)
	work := testutil.CreateWorkRepo(t)
	dataDir := t.TempDir()

	run := func(args ...string) error {
		root := newRootCmd()
		root.SetOut(io.Discard)
		root.SetArgs(append([]string{"--data-dir", dataDir}, args...))
		return root.Execute()
	}

	if err := run("create", work, "feature"); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := run("stop", "work.feature"); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	status, err := fake.Status(context.Background(), "branchbox-work.feature")
	if err != nil {
		t.Fatal(err)
	}
	if status != engine.StatusStopped {
		t.Errorf("status = %q after stop, want stopped", status)
	}

	if err := run("start", "work.feature"); err != nil {
		t.Fatalf("start failed: %v", err)
	}
	status, err = fake.Status(context.Background(), "branchbox-work.feature")
	if err != nil {
		t.Fatal(err)
	}
	if status != engine.StatusRunning {
		t.Errorf("status = %q after start, want running", status)
	}
}

func TestRunStart_fullContainerName(t *testing.T) {
	withFakeEngine(t)
	work := testutil.CreateWorkRepo(t)
	dataDir := t.TempDir()

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--data-dir", dataDir, "create", work, "feature"})
	if err := root.Execute(); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// The branchbox- prefix is accepted too.
	root2 := newRootCmd()
	root2.SetOut(io.Discard)
	root2.SetArgs([]string{"--data-dir", dataDir, "start", "branchbox-work.feature"})
	if err := root2.Execute(); err != nil {
		t.Fatalf("start with full name failed: %v", err)
	}
}
