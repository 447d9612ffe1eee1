package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/brausepulver/branchbox/internal/engine"
	"github.com/brausepulver/branchbox/internal/testutil"
	"github.com/spf13/cobra"
)

// gitRoot builds a root command with the data-dir flag pre-set. The git
// subcommand disables flag parsing, so --data-dir cannot travel in args.
func gitRoot(t *testing.T, dataDir string) *cobra.Command {
	t.Helper()
	root := newRootCmd()
	if err := root.PersistentFlags().Set("data-dir", dataDir); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestRunGit_passthrough(t *testing.T) {
	fake := withFakeEngine(t)
	work := testutil.CreateWorkRepo(t)
	dataDir := t.TempDir()

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--data-dir", dataDir, "create", work, "feature"})
	if err := root.Execute(); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	fake.ExecHook = func(_ string, spec engine.ExecSpec) (engine.ExecResult, error) {
		if strings.Join(spec.Cmd, " ") == "git log --oneline" {
			return engine.ExecResult{Output: "abc1234 initial commit\n"}, nil
		}
		return engine.ExecResult{ExitCode: 0}, nil
	}

	var buf bytes.Buffer
	root2 := gitRoot(t, dataDir)
	root2.SetOut(&buf)
	root2.SetArgs([]string{"git", "work.feature", "--", "log", "--oneline"})
	if err := root2.Execute(); err != nil {
		t.Fatalf("git failed: %v", err)
	}

	if !strings.Contains(buf.String(), "abc1234") {
		t.Errorf("output %q missing git output", buf.String())
	}

	last := fake.Execs[len(fake.Execs)-1]
	if strings.Join(last.Spec.Cmd, " ") != "git log --oneline" {
		t.Errorf("last exec = %v, want git log --oneline", last.Spec.Cmd)
	}
}

func TestRunGit_nonZeroExit(t *testing.T) {
	fake := withFakeEngine(t)
	work := testutil.CreateWorkRepo(t)
	dataDir := t.TempDir()

	root := newRootCmd()
	root.SetOut(io.Discard)
	root.SetArgs([]string{"--data-dir", dataDir, "create", work, "feature"})
	if err := root.Execute(); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	fake.ExecHook = func(_ string, spec engine.ExecSpec) (engine.ExecResult, error) {
		return engine.ExecResult{ExitCode: 128, Output: "fatal: bad revision\n"}, nil
	}

	root2 := gitRoot(t, dataDir)
	root2.SetOut(io.Discard)
	root2.SetErr(io.Discard)
	root2.SetArgs([]string{"git", "work.feature", "--", "show", "nope"})
	if err := root2.Execute(); err == nil {
		t.Fatal("git should propagate a non-zero exit")
	}
}

func TestRunGit_noCommand(t *testing.T) {
	withFakeEngine(t)

	root := gitRoot(t, t.TempDir())
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"git", "work.feature", "--"})
	if err := root.Execute(); err == nil {
		t.Fatal("git without a command should fail")
	}
}
