package git

import (
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// repoRoot walks up from path looking for a .git directory.
func repoRoot(path string) (string, error) {
	current := path
	if info, err := os.Stat(current); err == nil && !info.IsDir() {
		current = filepath.Dir(current)
	}

	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", os.ErrNotExist
		}
		current = parent
	}
}

// CommitSheet stages the sheet file at path and commits it with the given
// message. Sheets living outside a git work tree are silently left alone,
// as are edits that produced no change.
func CommitSheet(path, message string) error {
	root, err := repoRoot(path)
	if err != nil {
		return nil
	}

	repo, err := git.PlainOpen(root)
	if err != nil {
		return err
	}
	w, err := repo.Worktree()
	if err != nil {
		return err
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return err
	}
	if _, err := w.Add(relPath); err != nil {
		return err
	}

	status, err := w.Status()
	if err != nil {
		return err
	}
	if status.IsClean() {
		return nil
	}

	_, err = w.Commit(message, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "cheat",
			Email: "cheat@localhost",
			When:  time.Now(),
		},
	})
	return err
}
