package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/brausepulver/branchbox/internal/git"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose environment for common issues",
		RunE:  runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	ok := true

	// Check git.
	fmt.Fprint(out, "Checking git... ")
	if !git.IsInstalled() {
		fmt.Fprintln(out, "NOT FOUND")
		fmt.Fprintln(out, "  git is required. Install it from https://git-scm.com/")
		ok = false
	} else {
		gitPath, _ := exec.LookPath("git")
		fmt.Fprintf(out, "found at %s\n", gitPath)
	}

	// Check the container engine.
	fmt.Fprint(out, "Checking container engine... ")
	eng, err := newEngine()
	if err != nil {
		fmt.Fprintf(out, "FAILED (%v)\n", err)
		ok = false
	} else {
		if pingErr := eng.Ping(cmd.Context()); pingErr != nil {
			fmt.Fprintf(out, "FAILED (%v)\n", pingErr)
			fmt.Fprintln(out, "  Is the Docker daemon running?")
			ok = false
		} else {
			fmt.Fprintln(out, "OK")
		}
		if c, cok := eng.(interface{ Close() error }); cok {
			_ = c.Close()
		}
	}

	// Check the data directory.
	fmt.Fprint(out, "Checking data directory... ")
	dir, err := dataDir(cmd)
	if err != nil {
		fmt.Fprintf(out, "FAILED (%v)\n", err)
		ok = false
	} else if werr := checkWritable(dir); werr != nil {
		fmt.Fprintf(out, "NOT WRITABLE (%v)\n", werr)
		ok = false
	} else {
		fmt.Fprintf(out, "%s\n", dir)
	}

	// Check VS Code integration. Optional, so never fails the run.
	fmt.Fprint(out, "Checking code command... ")
	if codePath, err := exec.LookPath("code"); err != nil {
		fmt.Fprintln(out, "not found (the code subcommand will not work)")
	} else {
		fmt.Fprintf(out, "found at %s\n", codePath)
	}

	if ok {
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	probe := filepath.Join(dir, ".doctor-probe")
	if err := os.WriteFile(probe, nil, 0o600); err != nil {
		return err
	}
	return os.Remove(probe)
}
