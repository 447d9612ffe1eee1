package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// CreateWorkRepo creates a local working git repository with an initial
// commit on main. Returns the repository path.
func CreateWorkRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	work := filepath.Join(dir, "work")
	run(t, dir, "git", "init", "-b", "main", work)
	run(t, work, "git", "config", "user.email", "test@example.com")
	run(t, work, "git", "config", "user.name", "Test")

	readme := filepath.Join(work, "README.md")
	if err := os.WriteFile(readme, []byte("# test\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "initial commit")
	return work
}

// CreateWorkRepoWithBranch creates a working repo that also carries the
// given branch, with HEAD left on main.
func CreateWorkRepoWithBranch(t *testing.T, branch string) string {
	t.Helper()
	work := CreateWorkRepo(t)

	run(t, work, "git", "checkout", "-b", branch)
	f := filepath.Join(work, "feature.txt")
	if err := os.WriteFile(f, []byte("feature\n"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
	run(t, work, "git", "add", ".")
	run(t, work, "git", "commit", "-m", "feature commit")
	run(t, work, "git", "checkout", "main")
	return work
}

// CreateBareRepo creates a bare git repository with an initial commit in a
// temp directory. The returned path works as a file:// clone URL target.
func CreateBareRepo(t *testing.T) string {
	t.Helper()
	work := CreateWorkRepo(t)
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")
	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

// CreateBareRepoWithBranch creates a bare repo carrying both main and the
// given branch, with HEAD pointing at main.
func CreateBareRepoWithBranch(t *testing.T, branch string) string {
	t.Helper()
	work := CreateWorkRepoWithBranch(t, branch)
	dir := t.TempDir()
	bare := filepath.Join(dir, "repo.git")
	run(t, dir, "git", "clone", "--bare", work, bare)
	return bare
}

func run(t *testing.T, dir string, name string, args ...string) {
	t.Helper()
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		t.Fatalf("command %s %v failed: %v", name, args, err)
	}
}
