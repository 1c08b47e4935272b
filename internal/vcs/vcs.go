// Package vcs stages newly scaffolded files in the git repository that holds
// the project, so a new exercise shows up in `git status` as added.
package vcs

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when dir is not inside a git worktree.
var ErrNotRepository = errors.New("not a git repository")

// Stage adds paths to the index of the repository containing dir. The
// repository is found by walking up from dir. Paths may be absolute or
// relative to dir, never to the working directory.
func Stage(dir string, paths ...string) error {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return fmt.Errorf("%s: %w", dir, ErrNotRepository)
	}
	if err != nil {
		return fmt.Errorf("opening repository at %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}
	root, err := filepath.EvalSymlinks(wt.Filesystem.Root())
	if err != nil {
		return fmt.Errorf("resolving worktree root: %w", err)
	}

	for _, p := range paths {
		rel, err := relativeTo(root, dir, p)
		if err != nil {
			return err
		}
		if _, err := wt.Add(filepath.ToSlash(rel)); err != nil {
			return fmt.Errorf("staging %s: %w", rel, err)
		}
	}
	return nil
}

// relativeTo resolves p (absolute, or relative to dir) against the worktree
// root. Symlinks are resolved so temp dirs like /var -> /private/var match.
func relativeTo(root, dir, p string) (string, error) {
	if !filepath.IsAbs(p) {
		p = filepath.Join(dir, p)
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", p, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", abs, err)
	}
	rel, err := filepath.Rel(root, resolved)
	if err != nil {
		return "", fmt.Errorf("%s is outside the worktree: %w", p, err)
	}
	return rel, nil
}
