package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/logging"
	"github.com/warptools/depship/pkg/vcs"
)

const (
	sourceFilename = "extension.js"
	readmeFilename = "README.md"
)

// SubmitStages returns the six stages of the submit workflow, in order.
func SubmitStages() []StageDef {
	return []StageDef{
		{Stage: 1, Name: "init local repo", Run: stageInitLocalRepo},
		{Stage: 2, Name: "create hosted repo", Run: stageCreateHostedRepo},
		{Stage: 3, Name: "fork registry", Run: stageForkRegistry},
		{Stage: 4, Name: "clone fork", Run: stageCloneFork},
		{Stage: 5, Name: "write metadata", Run: stageWriteMetadata},
		{Stage: 6, Name: "open pull request", Run: stageOpenPullRequest},
	}
}

// stageInitLocalRepo materializes the extension repository on disk:
// working directory, source file, a default readme if absent, and an
// initial commit on the extension branch.  File creation is a no-op when
// the file already exists, so a rerun after partial failure converges.
func stageInitLocalRepo(ctx context.Context, p *Plan) error {
	dir := p.ExtensionDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return dsapi.ErrorIo("creating extension directory", dir, err)
	}
	if err := writeSourceFile(p); err != nil {
		return err
	}
	if err := writeReadme(p); err != nil {
		return err
	}
	if err := p.Git.Init(ctx, dir); err != nil {
		return err
	}
	if err := p.Git.CheckoutBranch(ctx, dir, p.Settings.ExtensionBranch); err != nil {
		return err
	}
	if err := p.Git.AddAll(ctx, dir); err != nil {
		return err
	}
	return p.Git.Commit(ctx, dir, "Initial commit of extension files")
}

func writeSourceFile(p *Plan) error {
	dst := filepath.Join(p.ExtensionDir(), sourceFilename)
	if p.Desc.SourceFilePath != "" {
		data, err := os.ReadFile(p.Desc.SourceFilePath)
		if err != nil {
			if os.IsNotExist(err) {
				return dsapi.ErrorMissing(p.Desc.SourceFilePath, "the --extension-file-path source file")
			}
			return dsapi.ErrorIo("reading source file", p.Desc.SourceFilePath, err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return dsapi.ErrorIo("writing source file", dst, err)
		}
		return nil
	}
	code := strings.TrimSpace(p.Desc.SourceCode)
	if code == "" {
		code = dsapi.DefaultSourceCode
	}
	if err := os.WriteFile(dst, []byte(code+"\n"), 0644); err != nil {
		return dsapi.ErrorIo("writing source file", dst, err)
	}
	return nil
}

func writeReadme(p *Plan) error {
	path := filepath.Join(p.ExtensionDir(), readmeFilename)
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n%s\n\n", p.Desc.Name, p.Desc.ShortDescription)
	fmt.Fprintf(&b, "## Installation\n\n")
	fmt.Fprintf(&b, "1. Go to the Marketplace\n")
	fmt.Fprintf(&b, "2. Search for %q\n", p.Desc.Name)
	fmt.Fprintf(&b, "3. Install\n\n")
	fmt.Fprintf(&b, "## Usage\n\n```javascript\n// This extension adds ...\n```\n")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return dsapi.ErrorIo("writing readme", path, err)
	}
	return nil
}

// stageCreateHostedRepo creates the public repository on the hosting
// platform from the local one and pushes the extension branch.
func stageCreateHostedRepo(ctx context.Context, p *Plan) error {
	dir := p.ExtensionDir()
	err := p.GH.CreateRepo(ctx, dir, p.Desc.RepoName, p.Desc.HostedDescription(), "upstream")
	if err != nil {
		return err
	}
	return p.Git.PushUpstream(ctx, dir, "upstream", p.Settings.ExtensionBranch)
}

// stageForkRegistry forks the central registry under the user's account.
// A pre-existing fork makes the command fail; that is tolerated silently.
func stageForkRegistry(ctx context.Context, p *Plan) error {
	p.GH.ForkRepo(ctx, p.Settings.Registry())
	return nil
}

// stageCloneFork clones the user's registry fork, skipped when the local
// folder already exists.
func stageCloneFork(ctx context.Context, p *Plan) error {
	dir := p.DepotDir()
	if _, err := os.Stat(dir); err == nil {
		log := logging.Ctx(ctx)
		log.Info(logTag, "depot folder %s already exists, not cloning", dir)
		return nil
	}
	fork := p.Username + "/" + p.Settings.RegistryName
	return p.GH.CloneRepo(ctx, p.Root, fork, p.Settings.DepotFolder)
}

// stageWriteMetadata captures the extension repo's tip revision, writes the
// metadata record into the per-user subdirectory of the fork, and pushes.
// The file is overwritten wholesale, so a rerun recommits only if the
// content actually changed.
func stageWriteMetadata(ctx context.Context, p *Plan) error {
	hash, err := vcs.HeadHash(p.ExtensionDir())
	if err != nil {
		return err
	}
	rec := dsapi.MetadataRecord{
		Name:             p.Desc.Name,
		ShortDescription: p.Desc.ShortDescription,
		Author:           p.Desc.Author,
		Tags:             p.Desc.Tags,
		SourceURL:        p.RepoURL(),
		SourceRepo:       p.RepoURL() + ".git",
		SourceCommit:     hash,
		StripeAccount:    p.Desc.StripeAccount,
	}
	data, err := dsapi.EncodeMetadata(rec)
	if err != nil {
		return err
	}
	path := p.MetadataPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return dsapi.ErrorIo("creating metadata directory", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return dsapi.ErrorIo("writing metadata record", path, err)
	}
	depot := p.DepotDir()
	if err := p.Git.Add(ctx, depot, p.MetadataRelPath()); err != nil {
		return err
	}
	msg := fmt.Sprintf("Add %s metadata", p.Desc.RepoName)
	if err := p.Git.Commit(ctx, depot, msg); err != nil {
		return err
	}
	return p.Git.Push(ctx, depot)
}

// stageOpenPullRequest proposes the fork branch to the registry.
// Not idempotent: skipping the checkpoint can open duplicate PRs.
func stageOpenPullRequest(ctx context.Context, p *Plan) error {
	title := fmt.Sprintf("Add %s extension", p.Desc.Name)
	body := fmt.Sprintf("This PR adds a new extension [%s](%s).", p.Desc.Name, p.RepoURL())
	head := p.Username + ":" + p.Settings.ExtensionBranch
	return p.GH.CreatePR(ctx, p.Settings.Registry(), title, body, p.Settings.RegistryBaseBranch, head)
}
