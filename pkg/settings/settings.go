// Package settings holds the marketplace coordinates the workflows target.
//
// Everything here has a working default; an optional `.depship.yaml` in the
// invocation directory overrides the defaults, and CLI flags override both.
package settings

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/warptools/depship/dsapi"
)

// Filename is the optional settings file looked for in the invocation directory.
const Filename = ".depship.yaml"

type Settings struct {
	// RegistryOwner and RegistryName identify the central curated registry
	// that submissions are proposed against.
	RegistryOwner string `yaml:"registry_owner"`
	RegistryName  string `yaml:"registry_name"`
	// RegistryBaseBranch is the branch pull requests target.
	RegistryBaseBranch string `yaml:"registry_base_branch"`
	// ExtensionBranch is the branch created and pushed in the extension repo.
	ExtensionBranch string `yaml:"extension_branch"`
	// DepotFolder is the local clone location of the user's registry fork.
	DepotFolder string `yaml:"depot_folder"`
}

func Default() Settings {
	return Settings{
		RegistryOwner:      "Roam-Research",
		RegistryName:       "roam-depot",
		RegistryBaseBranch: "main",
		ExtensionBranch:    "main",
		DepotFolder:        "roam-depot",
	}
}

// Load returns the settings for an invocation directory: defaults, with any
// fields present in the settings file layered over them.  A missing file is
// not an error; a malformed one is.
//
// Errors:
//
//    - depship-error-io -- the settings file exists but cannot be read
//    - depship-error-serialization -- the settings file is not valid yaml
func Load(dir string) (Settings, error) {
	s := Default()
	path := filepath.Join(dir, Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, dsapi.ErrorIo("reading settings file", path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, dsapi.ErrorSerialization("parsing settings file", err)
	}
	return s.withDefaults(), nil
}

// withDefaults refills any field the settings file blanked out.
func (s Settings) withDefaults() Settings {
	d := Default()
	if s.RegistryOwner == "" {
		s.RegistryOwner = d.RegistryOwner
	}
	if s.RegistryName == "" {
		s.RegistryName = d.RegistryName
	}
	if s.RegistryBaseBranch == "" {
		s.RegistryBaseBranch = d.RegistryBaseBranch
	}
	if s.ExtensionBranch == "" {
		s.ExtensionBranch = d.ExtensionBranch
	}
	if s.DepotFolder == "" {
		s.DepotFolder = d.DepotFolder
	}
	return s
}

// Registry returns the `owner/name` form used by the hosting platform CLI.
func (s Settings) Registry() string {
	return s.RegistryOwner + "/" + s.RegistryName
}
