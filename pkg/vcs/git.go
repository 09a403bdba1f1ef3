// Package vcs wraps the version-control operations the workflows need.
//
// Mutations (init, commit, push, pull) go through the external `git`
// command so that the user's own configuration, credentials, and hooks
// apply.  The one read-only query, resolving the tip revision, is done
// in-process with go-git to avoid parsing command output.
package vcs

import (
	"context"

	git "github.com/go-git/go-git/v5"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/cmdrun"
)

// Git issues version-control commands through a Runner.
type Git struct {
	Run cmdrun.Runner
}

// Errors:
//
//    - depship-error-cmd --
func (g Git) Init(ctx context.Context, dir string) error {
	return g.Run.Run(ctx, dir, "git", "init")
}

// CheckoutBranch creates and switches to a branch.
//
// Errors:
//
//    - depship-error-cmd --
func (g Git) CheckoutBranch(ctx context.Context, dir, branch string) error {
	return g.Run.Run(ctx, dir, "git", "checkout", "-b", branch)
}

// Errors:
//
//    - depship-error-cmd --
func (g Git) AddAll(ctx context.Context, dir string) error {
	return g.Run.Run(ctx, dir, "git", "add", ".")
}

// Errors:
//
//    - depship-error-cmd --
func (g Git) Add(ctx context.Context, dir, path string) error {
	return g.Run.Run(ctx, dir, "git", "add", path)
}

// Errors:
//
//    - depship-error-cmd --
func (g Git) Commit(ctx context.Context, dir, message string) error {
	return g.Run.Run(ctx, dir, "git", "commit", "-m", message)
}

// HasChanges reports whether the work tree has anything to commit.
// The update workflow uses this to demote "nothing to commit" to a no-op
// instead of matching on git's (localized) error message.
//
// Errors:
//
//    - depship-error-cmd --
func (g Git) HasChanges(ctx context.Context, dir string) (bool, error) {
	out, err := g.Run.Output(ctx, dir, "git", "status", "--porcelain")
	if err != nil {
		return false, err
	}
	return len(out) > 0, nil
}

// PushUpstream pushes a branch and records the remote as its upstream.
//
// Errors:
//
//    - depship-error-cmd --
func (g Git) PushUpstream(ctx context.Context, dir, remote, branch string) error {
	return g.Run.Run(ctx, dir, "git", "push", "-u", remote, branch)
}

// Errors:
//
//    - depship-error-cmd --
func (g Git) Push(ctx context.Context, dir string) error {
	return g.Run.Run(ctx, dir, "git", "push")
}

// Errors:
//
//    - depship-error-cmd --
func (g Git) Pull(ctx context.Context, dir string) error {
	return g.Run.Run(ctx, dir, "git", "pull")
}

// HeadHash resolves the revision hash of the repository's current HEAD.
//
// Errors:
//
//    - depship-error-git -- the directory is not a repository or has no commits
func HeadHash(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", dsapi.ErrorGit("opening repository at "+dir, err)
	}
	head, err := repo.Head()
	if err != nil {
		return "", dsapi.ErrorGit("resolving HEAD of "+dir, err)
	}
	return head.Hash().String(), nil
}
