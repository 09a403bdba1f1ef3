// Package hosting wraps the hosting-platform CLI (`gh`).
//
// Like the version-control wrappers, everything here is a blocking
// external command; the only output the workflows parse is the single
// line carrying the authenticated username.
package hosting

import (
	"context"
	"errors"
	"strings"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/cmdrun"
	"github.com/warptools/depship/pkg/logging"
)

// GH issues hosting-platform commands through a Runner.
type GH struct {
	Run cmdrun.Runner
}

// Username queries the authenticated user's login name.
//
// Errors:
//
//    - depship-error-hosting -- not logged in, or the CLI produced no login
func (h GH) Username(ctx context.Context) (string, error) {
	out, err := h.Run.Output(ctx, "", "gh", "api", "user", "-q", ".login")
	if err != nil {
		return "", dsapi.ErrorHosting(
			"could not detect username; make sure you are logged in (`gh auth login`)", err)
	}
	login := strings.TrimSpace(out)
	if login == "" {
		return "", dsapi.ErrorHosting("username query", errors.New("empty output"))
	}
	return login, nil
}

// CreateRepo creates a new public repository from the local one in dir,
// wiring it up as the given remote.  Not idempotent: re-running after
// success errors, which is exactly what the submit checkpoint prevents.
//
// Errors:
//
//    - depship-error-cmd --
func (h GH) CreateRepo(ctx context.Context, dir, name, description, remote string) error {
	return h.Run.Run(ctx, dir,
		"gh", "repo", "create", name,
		"--public",
		"--description", description,
		"--source", ".",
		"--remote", remote,
	)
}

// ForkRepo forks a repository under the user's account, without cloning.
// An already-existing fork makes the command fail; that failure is
// deliberately swallowed (logged at debug) because the fork being present
// is the state the stage wants.
func (h GH) ForkRepo(ctx context.Context, repo string) {
	err := h.Run.Run(ctx, "", "gh", "repo", "fork", repo, "--remote=false", "--clone=false")
	if err != nil {
		log := logging.Ctx(ctx)
		log.Debug("gh", "fork of %s reported an error (fork may already exist): %s", repo, err)
	}
}

// CloneRepo clones a repository into folder, relative to dir.
//
// Errors:
//
//    - depship-error-cmd --
func (h GH) CloneRepo(ctx context.Context, dir, repo, folder string) error {
	return h.Run.Run(ctx, dir, "gh", "repo", "clone", repo, folder)
}

// CreatePR opens a pull request on repo from head to base.
//
// Errors:
//
//    - depship-error-cmd --
func (h GH) CreatePR(ctx context.Context, repo, title, body, base, head string) error {
	return h.Run.Run(ctx, "",
		"gh", "pr", "create",
		"--title", title,
		"--body", body,
		"--base", base,
		"--head", head,
		"--repo", repo,
	)
}
