package workflow

import (
	"path/filepath"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/hosting"
	"github.com/warptools/depship/pkg/settings"
	"github.com/warptools/depship/pkg/vcs"
)

// Plan is the resolved context for one run of either workflow.
//
// Every path a stage touches is derived from Root here, explicitly.
// Nothing in the workflows changes the process working directory; the
// target directory is always an argument.
type Plan struct {
	// Root is the invocation directory.  The extension repository and the
	// registry fork clone both live directly under it.
	Root string

	Desc     dsapi.ExtensionDescriptor
	Settings settings.Settings

	// Username is the authenticated hosting-platform login, detected once
	// at startup.
	Username string

	Git vcs.Git
	GH  hosting.GH
}

// ExtensionDir is the local extension repository.
func (p *Plan) ExtensionDir() string {
	return filepath.Join(p.Root, p.Desc.RepoName)
}

// DepotDir is the local clone of the user's registry fork.
func (p *Plan) DepotDir() string {
	return filepath.Join(p.Root, p.Settings.DepotFolder)
}

// MetadataRelPath is the metadata record's path relative to the depot root:
// a per-user subdirectory keyed by hosting username.
func (p *Plan) MetadataRelPath() string {
	return filepath.Join("extensions", p.Username, p.Desc.RepoName+".json")
}

// MetadataPath is the metadata record's absolute path.
func (p *Plan) MetadataPath() string {
	return filepath.Join(p.DepotDir(), p.MetadataRelPath())
}

// RepoURL is the extension repository's browse URL on the hosting platform.
func (p *Plan) RepoURL() string {
	return "https://github.com/" + p.Username + "/" + p.Desc.RepoName
}
