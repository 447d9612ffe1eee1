package main

import (
	"encoding/json"

	"github.com/brausepulver/branchbox/internal/session"
	"github.com/brausepulver/branchbox/internal/ui"
	"github.com/spf13/cobra"
)

func newLsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List sessions",
		RunE:    runLs,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type sessionInfo struct {
	Name    string `json:"name"`
	Repo    string `json:"repo"`
	Branch  string `json:"branch"`
	State   string `json:"state"`
	Source  string `json:"source"`
	Created string `json:"created,omitempty"`
}

func runLs(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	m, cleanup, err := newSessionManager(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	sessions, err := m.List(cmd.Context())
	if err != nil {
		return err
	}

	infos := make([]sessionInfo, 0, len(sessions))
	for _, s := range sessions {
		infos = append(infos, collectInfo(s))
	}

	out := cmd.OutOrStdout()

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	tbl := ui.NewTable(out, "NAME", "REPO", "BRANCH", "STATE", "SOURCE").
		Empty("No sessions. Create one with: branchbox create <repo> [branch]")
	for _, info := range infos {
		tbl.Row(info.Name, info.Repo, info.Branch, info.State, info.Source)
	}
	return tbl.Flush()
}

func collectInfo(s *session.Session) sessionInfo {
	info := sessionInfo{
		Name:   s.Name(),
		Repo:   s.Identity.Repo,
		Branch: s.Branch,
		State:  string(s.State),
		Source: s.Source.Ref,
	}
	if !s.CreatedAt.IsZero() {
		info.Created = s.CreatedAt.Format("2006-01-02 15:04")
	}
	return info
}
