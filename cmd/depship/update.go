package main

import (
	"github.com/MakeNowJust/heredoc"
	"github.com/urfave/cli/v2"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/hosting"
	"github.com/warptools/depship/pkg/logging"
	"github.com/warptools/depship/pkg/vcs"
	"github.com/warptools/depship/pkg/workflow"
)

var updateCmdDef = cli.Command{
	Name:  "update",
	Usage: "Push extension changes and repoint the registry metadata at them.",
	Description: heredoc.Doc(`
		Commits and pushes any pending changes in the extension repository,
		then rewrites the source_commit field of the metadata record in the
		registry fork and pushes that too, updating the open pull request.

		Unlike submit, this is not checkpointed: the whole sequence runs on
		every invocation.
	`),
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "extension-repo-name",
			Usage:    "Name of the extension's local folder/repo",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "depot-folder",
			Usage: "Local folder name of the registry fork clone",
		},
		&cli.StringFlag{
			Name:  "registry",
			Usage: "Central registry, as owner/name",
		},
	},
	Action: cmdUpdate,
}

func cmdUpdate(c *cli.Context) error {
	ctx := loggerContext(c)
	log := logging.Ctx(ctx)

	root, err := invocationDir()
	if err != nil {
		return err
	}
	sett, err := loadSettings(c, root)
	if err != nil {
		return err
	}

	runner := defaultRunner
	gh := hosting.GH{Run: runner}
	username, err := gh.Username(ctx)
	if err != nil {
		return err
	}
	log.Info("update", "detected username: %s", username)

	plan := &workflow.Plan{
		Root: root,
		Desc: dsapi.ExtensionDescriptor{
			RepoName: c.String("extension-repo-name"),
		},
		Settings: sett,
		Username: username,
		Git:      vcs.Git{Run: runner},
		GH:       gh,
	}
	if err := workflow.RunUpdate(ctx, plan); err != nil {
		return err
	}

	log.Out("Update complete! Your existing PR should now reflect the new commit hash.")
	return nil
}
