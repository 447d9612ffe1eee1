package source

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/brausepulver/branchbox/internal/testutil"
)

func TestIsRemoteRef(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://github.com/org/repo.git", true},
		{"http://host/repo", true},
		{"ssh://git@host/repo.git", true},
		{"git@github.com:org/repo.git", true},
		{"file:///srv/repo.git", true},
		{"./my-project", false},
		{"/abs/path/repo", false},
		{"repo", false},
	}
	for _, tt := range tests {
		if got := IsRemoteRef(tt.ref); got != tt.want {
			t.Errorf("IsRemoteRef(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestParse_remote(t *testing.T) {
	s, err := Parse("https://github.com/org/repo.git")
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Kind != Remote {
		t.Errorf("Kind = %q, want %q", s.Kind, Remote)
	}
	if s.Name != "repo" {
		t.Errorf("Name = %q, want %q", s.Name, "repo")
	}
}

func TestParse_local(t *testing.T) {
	work := testutil.CreateWorkRepo(t)

	s, err := Parse(work)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if s.Kind != Local {
		t.Errorf("Kind = %q, want %q", s.Kind, Local)
	}
	if !filepath.IsAbs(s.Ref) {
		t.Errorf("Ref = %q, want an absolute path", s.Ref)
	}
	if s.Name != "work" {
		t.Errorf("Name = %q, want %q", s.Name, "work")
	}
}

func TestParse_localNotARepo(t *testing.T) {
	_, err := Parse(t.TempDir())
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("Parse() error = %v, want ErrUnavailable", err)
	}
}

func TestResolveBranch_localNewBranch(t *testing.T) {
	work := testutil.CreateWorkRepo(t)
	s, err := Parse(work)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ResolveBranch(s, "feature-x")
	if err != nil {
		t.Fatalf("ResolveBranch() error: %v", err)
	}
	if res.Mode != CreateNew {
		t.Errorf("Mode = %q, want %q", res.Mode, CreateNew)
	}
	if res.From != "main" {
		t.Errorf("From = %q, want %q (host's current branch)", res.From, "main")
	}
}

func TestResolveBranch_localExistingBranch(t *testing.T) {
	work := testutil.CreateWorkRepoWithBranch(t, "feature")
	s, err := Parse(work)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ResolveBranch(s, "feature")
	if err != nil {
		t.Fatalf("ResolveBranch() error: %v", err)
	}
	if res.Mode != CheckoutExisting {
		t.Errorf("Mode = %q, want %q", res.Mode, CheckoutExisting)
	}
	if res.Branch != "feature" {
		t.Errorf("Branch = %q, want %q", res.Branch, "feature")
	}
}

func TestResolveBranch_localDefault(t *testing.T) {
	work := testutil.CreateWorkRepo(t)
	s, err := Parse(work)
	if err != nil {
		t.Fatal(err)
	}

	res, err := ResolveBranch(s, "")
	if err != nil {
		t.Fatalf("ResolveBranch() error: %v", err)
	}
	if res.Mode != CheckoutExisting || res.Branch != "main" {
		t.Errorf("ResolveBranch(\"\") = %+v, want checkout of main", res)
	}
}

func TestResolveBranch_remote(t *testing.T) {
	bare := testutil.CreateBareRepoWithBranch(t, "feature")
	s := Source{Kind: Remote, Ref: bare, Name: "repo"}

	res, err := ResolveBranch(s, "")
	if err != nil {
		t.Fatalf("ResolveBranch() error: %v", err)
	}
	if res.Mode != CheckoutExisting || res.Branch != "main" {
		t.Errorf("ResolveBranch(\"\") = %+v, want checkout of default branch main", res)
	}

	res, err = ResolveBranch(s, "feature")
	if err != nil {
		t.Fatalf("ResolveBranch() error: %v", err)
	}
	if res.Mode != CheckoutExisting || res.Branch != "feature" {
		t.Errorf("ResolveBranch(feature) = %+v, want checkout of existing branch", res)
	}

	res, err = ResolveBranch(s, "brand-new")
	if err != nil {
		t.Fatalf("ResolveBranch() error: %v", err)
	}
	if res.Mode != CreateNew || res.From != "main" {
		t.Errorf("ResolveBranch(brand-new) = %+v, want create from main", res)
	}
}
