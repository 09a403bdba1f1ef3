package workflow

import (
	"context"
	"fmt"
	"os"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/logging"
	"github.com/warptools/depship/pkg/vcs"
)

// RunUpdate pushes incremental extension changes and repoints the metadata
// record's revision hash at the new tip.  It has no checkpoint: the whole
// sequence runs on every invocation, and exactly one field of the record
// changes; every other field is preserved byte for byte.
//
// Errors:
//
//    - depship-error-missing -- the extension folder, fork folder, or
//      metadata record does not exist (run `submit` first)
//    - depship-error-cmd -- a git command failed
//    - depship-error-git -- the tip revision could not be resolved
//    - depship-error-io -- the metadata record could not be read or written
//    - depship-error-serialization -- the metadata record is malformed
func RunUpdate(ctx context.Context, p *Plan) error {
	log := logging.Ctx(ctx)

	extDir := p.ExtensionDir()
	if _, err := os.Stat(extDir); err != nil {
		return dsapi.ErrorMissing(extDir, "extension folder; have you run `submit` first?")
	}

	// Stage, commit, and push whatever changed in the extension repo.
	// An unchanged work tree is a no-op, not an error.
	if err := p.Git.AddAll(ctx, extDir); err != nil {
		return err
	}
	changed, err := p.Git.HasChanges(ctx, extDir)
	if err != nil {
		return err
	}
	if changed {
		if err := p.Git.Commit(ctx, extDir, "Update extension code"); err != nil {
			return err
		}
	} else {
		log.Info(logTag, "no new code changes found, skipping commit")
	}
	if err := p.Git.PushUpstream(ctx, extDir, "upstream", p.Settings.ExtensionBranch); err != nil {
		return err
	}

	hash, err := vcs.HeadHash(extDir)
	if err != nil {
		return err
	}

	depot := p.DepotDir()
	if _, err := os.Stat(depot); err != nil {
		return dsapi.ErrorMissing(depot, "registry fork folder; did `submit` clone it?")
	}
	if err := p.Git.Pull(ctx, depot); err != nil {
		return err
	}

	path := p.MetadataPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return dsapi.ErrorMissing(path, "metadata record; have you run `submit` first?")
		}
		return dsapi.ErrorIo("reading metadata record", path, err)
	}
	rec, err := dsapi.DecodeMetadata(data)
	if err != nil {
		return err
	}
	if rec.SourceCommit == hash {
		log.Info(logTag, "metadata already points at %s", hash)
	}
	rec.SourceCommit = hash
	out, err := dsapi.EncodeMetadata(rec)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return dsapi.ErrorIo("writing metadata record", path, err)
	}

	if err := p.Git.Add(ctx, depot, p.MetadataRelPath()); err != nil {
		return err
	}
	depotChanged, err := p.Git.HasChanges(ctx, depot)
	if err != nil {
		return err
	}
	if !depotChanged {
		log.Info(logTag, "metadata record unchanged, nothing to push")
		return nil
	}
	msg := fmt.Sprintf("Update source_commit to %s", hash)
	if err := p.Git.Commit(ctx, depot, msg); err != nil {
		return err
	}
	return p.Git.Push(ctx, depot)
}
