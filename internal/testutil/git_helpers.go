package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// InitGitRepo initializes a repository in a temporary directory and returns
// it with its path.
func InitGitRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("failed to initialize git repo: %v", err)
	}
	return repo, dir
}

// CommitFile writes name (slash-separated, relative to dir) and commits it,
// returning the commit hash.
func CommitFile(t *testing.T, repo *git.Repository, dir, name, content string) string {
	t.Helper()
	WriteFiles(t, dir, map[string]string{name: content})

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("failed to get worktree: %v", err)
	}
	if _, err := wt.Add(name); err != nil {
		t.Fatalf("failed to stage %s: %v", name, err)
	}
	hash, err := wt.Commit("add "+name, &git.CommitOptions{
		Author: &object.Signature{Name: "tester", Email: "tester@example.com", When: time.Now()},
	})
	if err != nil {
		t.Fatalf("failed to commit %s: %v", name, err)
	}
	return hash.String()
}

// ModifyFile overwrites an existing file without committing it.
func ModifyFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, filepath.FromSlash(name)), []byte(content), 0o600); err != nil {
		t.Fatalf("failed to modify %s: %v", name, err)
	}
}
