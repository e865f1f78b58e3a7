package git

import (
	stderrors "errors"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when no repository encloses the path.
var ErrNotRepository = stderrors.New("not a git repository")

const shortHashLen = 8

// Revision identifies the checked-out state of a repository.
type Revision struct {
	Commit string
	Branch string
	Dirty  bool
}

// Short returns the abbreviated commit hash.
func (r Revision) Short() string {
	if len(r.Commit) > shortHashLen {
		return r.Commit[:shortHashLen]
	}
	return r.Commit
}

// String renders the revision as "<short>[-dirty]".
func (r Revision) String() string {
	if r.Commit == "" {
		return ""
	}
	if r.Dirty {
		return r.Short() + "-dirty"
	}
	return r.Short()
}

// ReadRevision resolves HEAD of the repository enclosing path. Parent
// directories are searched for the .git directory.
func ReadRevision(path string) (Revision, error) {
	repository, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if stderrors.Is(err, git.ErrRepositoryNotExists) {
		return Revision{}, ErrNotRepository
	}
	if err != nil {
		return Revision{}, err
	}

	ref, err := repository.Head()
	if stderrors.Is(err, plumbing.ErrReferenceNotFound) {
		// No commits yet.
		return Revision{}, nil
	}
	if err != nil {
		return Revision{}, err
	}

	rev := Revision{Commit: ref.Hash().String()}
	if ref.Name().IsBranch() {
		rev.Branch = ref.Name().Short()
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return rev, nil
	}
	status, err := worktree.Status()
	if err == nil {
		rev.Dirty = !status.IsClean()
	}
	return rev, nil
}
