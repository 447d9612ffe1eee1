package main

import (
	"strings"
	"testing"

	"github.com/brausepulver/branchbox/internal/engine"
)

// withFakeEngine replaces the engine constructor with an in-memory fake for
// the duration of a test. Git inside the fake containers reports the given
// branch as current.
func withFakeEngine(t *testing.T) *engine.Fake {
	t.Helper()
	fake := engine.NewFake()
	fake.ExecHook = func(_ string, spec engine.ExecSpec) (engine.ExecResult, error) {
		if strings.Join(spec.Cmd, " ") == "git branch --show-current" {
			return engine.ExecResult{Output: "main\n"}, nil
		}
		if len(spec.Cmd) == 3 && spec.Cmd[0] == "test" {
			return engine.ExecResult{ExitCode: 1}, nil
		}
		return engine.ExecResult{ExitCode: 0}, nil
	}

	prev := newEngine
	newEngine = func() (engine.Engine, error) { return fake, nil }
	t.Cleanup(func() { newEngine = prev })
	return fake
}
