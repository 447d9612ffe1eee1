package main

import (
	"os"
	"path/filepath"

	"github.com/brausepulver/branchbox/internal/config"
	"github.com/brausepulver/branchbox/internal/engine"
	"github.com/brausepulver/branchbox/internal/registry"
	"github.com/brausepulver/branchbox/internal/session"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "branchbox",
		Short:   "Isolated container workspaces per repository branch",
		Version: version,
	}

	cmd.PersistentFlags().String("data-dir", "", "Data directory (default ~/.branchbox)")

	cmd.AddCommand(
		newCreateCmd(),
		newLsCmd(),
		newStartCmd(),
		newStopCmd(),
		newRmCmd(),
		newShellCmd(),
		newClaudeCmd(),
		newCodeCmd(),
		newGitCmd(),
		newPushCmd(),
		newDoctorCmd(),
	)

	return cmd
}

// newEngine is swapped in tests to avoid requiring a container runtime.
var newEngine = func() (engine.Engine, error) {
	return engine.NewDocker()
}

func dataDir(cmd *cobra.Command) (string, error) {
	dir, _ := cmd.Root().PersistentFlags().GetString("data-dir")
	if dir != "" {
		return dir, nil
	}
	return config.DefaultDataDir()
}

// newSessionManager wires a Manager for a command invocation. The returned
// cleanup releases the engine connection.
func newSessionManager(cmd *cobra.Command) (*session.Manager, func(), error) {
	dir, err := dataDir(cmd)
	if err != nil {
		return nil, nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(dir)
	if err != nil {
		return nil, nil, err
	}

	store, err := registry.Open(filepath.Join(dir, "sessions.yaml"))
	if err != nil {
		return nil, nil, err
	}

	eng, err := newEngine()
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if c, ok := eng.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}
	return session.NewManager(eng, store, cfg, cmd.OutOrStdout()), cleanup, nil
}
