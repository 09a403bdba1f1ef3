package main

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/cmdrun"
	"github.com/warptools/depship/pkg/logging"
	"github.com/warptools/depship/pkg/settings"
)

// defaultRunner executes the external git and gh commands.
// Tests swap it for a recording fake; everything else goes through it.
var defaultRunner cmdrun.Runner = cmdrun.Exec{}

// loggerContext builds a logger from the global flags and attaches it to
// the command context.
func loggerContext(c *cli.Context) context.Context {
	logger := logging.NewLogger(c.App.Writer, c.App.ErrWriter, c.Bool("quiet"), c.Bool("verbose"))
	return logger.WithContext(c.Context)
}

// loadSettings resolves settings for the invocation directory and applies
// flag overrides on top of file and default values.
//
// Errors:
//
//    - depship-error-io -- the settings file exists but cannot be read
//    - depship-error-serialization -- the settings file is not valid yaml
//    - depship-error-invalid -- the --registry flag is not `owner/name`
func loadSettings(c *cli.Context, dir string) (settings.Settings, error) {
	s, err := settings.Load(dir)
	if err != nil {
		return s, err
	}
	if reg := c.String("registry"); reg != "" {
		parts := strings.SplitN(reg, "/", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return s, dsapi.ErrorInvalid("registry must be of the form owner/name",
				[2]string{"registry", reg})
		}
		s.RegistryOwner = parts[0]
		s.RegistryName = parts[1]
	}
	if folder := c.String("depot-folder"); folder != "" {
		s.DepotFolder = folder
	}
	return s, nil
}

// invocationDir is the directory the tool was started in; the checkpoint
// record, the extension repo, and the depot clone all live under it.
//
// Errors:
//
//    - depship-error-io --
func invocationDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", dsapi.ErrorIo("getting working directory", ".", err)
	}
	return dir, nil
}
