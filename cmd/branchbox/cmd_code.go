package main

import (
	"encoding/hex"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

func newCodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "code [session]",
		Short: "Open VS Code attached to a session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCode,
	}
}

func runCode(cmd *cobra.Command, args []string) error {
	m, cleanup, err := newSessionManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	name, err := resolveSessionName(m, args)
	if err != nil {
		return err
	}
	if _, err := m.EnsureRunning(cmd.Context(), name); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Opening VS Code attached to %s\n", name)
	return openVSCode(name, m.RepoDir())
}

// openVSCode launches VS Code attached to the named container, opening the
// workspace folder. The attached-container authority is the hex-encoded
// container name.
func openVSCode(name, folder string) error {
	codePath, err := exec.LookPath("code")
	if err != nil {
		return fmt.Errorf("the 'code' command is not on PATH; install VS Code and its shell command")
	}

	uri := fmt.Sprintf("vscode-remote://attached-container+%s%s", hex.EncodeToString([]byte(name)), folder)
	return exec.Command(codePath, "--folder-uri", uri).Start()
}
