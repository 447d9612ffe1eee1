package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRunDoctor(t *testing.T) {
	withFakeEngine(t)
	dataDir := t.TempDir()

	var buf bytes.Buffer
	root := newRootCmd()
	root.SetOut(&buf)
	root.SetArgs([]string{"--data-dir", dataDir, "doctor"})
	if err := root.Execute(); err != nil {
		t.Fatalf("doctor failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Checking git", "Checking container engine", "OK", dataDir, "All checks passed"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}
