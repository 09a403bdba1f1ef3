package main

import (
	"path/filepath"

	"github.com/MakeNowJust/heredoc"
	"github.com/urfave/cli/v2"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/checkpoint"
	"github.com/warptools/depship/pkg/hosting"
	"github.com/warptools/depship/pkg/logging"
	"github.com/warptools/depship/pkg/vcs"
	"github.com/warptools/depship/pkg/workflow"
)

var submitCmdDef = cli.Command{
	Name:  "submit",
	Usage: "Submit a new extension to the registry, resumably.",
	Description: heredoc.Doc(`
		Runs the six-stage publish workflow: initialize the local extension
		repository, create the hosted repository, fork the central registry,
		clone the fork, write the metadata record, and open a pull request.

		Progress is checkpointed after each stage.  If any step fails, fix
		the cause and re-invoke; completed stages are skipped.  Use --reset
		to discard the checkpoint and start over from stage 1.

		Missing required fields are prompted for interactively.
	`),
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "reset",
			Usage: "Clear the checkpoint and start from the first stage",
		},
		&cli.StringFlag{
			Name:  "extension-repo-name",
			Usage: "Name of the new hosted repository",
		},
		&cli.StringFlag{
			Name:  "extension-name",
			Usage: "Human-readable extension name",
		},
		&cli.StringFlag{
			Name:  "extension-short-description",
			Usage: "Short description",
		},
		&cli.StringFlag{
			Name:  "extension-author",
			Usage: "Author name",
		},
		&cli.StringFlag{
			Name:  "extension-tags",
			Usage: "Comma-separated tags (e.g. 'test,print')",
		},
		&cli.StringFlag{
			Name:  "stripe-account",
			Usage: "Optional payment account identifier",
		},
		&cli.StringFlag{
			Name:      "extension-file-path",
			Usage:     "Path to a local extension.js file",
			TakesFile: true,
		},
		&cli.StringFlag{
			Name:  "extension-js-code",
			Usage: "Inline extension.js code if no file is used",
		},
		&cli.StringFlag{
			Name:  "depot-folder",
			Usage: "Local folder name for the registry fork clone",
		},
		&cli.StringFlag{
			Name:  "registry",
			Usage: "Central registry to submit to, as owner/name",
		},
	},
	Action: cmdSubmit,
}

func cmdSubmit(c *cli.Context) error {
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

	desc := dsapi.ExtensionDescriptor{
		RepoName:         c.String("extension-repo-name"),
		Name:             c.String("extension-name"),
		ShortDescription: c.String("extension-short-description"),
		Author:           c.String("extension-author"),
		Tags:             dsapi.ParseTags(c.String("extension-tags")),
		StripeAccount:    c.String("stripe-account"),
		SourceFilePath:   c.String("extension-file-path"),
		SourceCode:       c.String("extension-js-code"),
	}
	if err := promptMissing(c, &desc); err != nil {
		return err
	}
	if err := desc.Validate(); err != nil {
		return err
	}

	store := checkpoint.NewStore(filepath.Join(root, checkpoint.DefaultFilename))
	if c.Bool("reset") {
		log.Info("submit", "resetting the checkpoint, starting from stage 1")
		if err := store.Reset(); err != nil {
			return err
		}
	}

	runner := defaultRunner
	gh := hosting.GH{Run: runner}
	username, err := gh.Username(ctx)
	if err != nil {
		return err
	}
	log.Info("submit", "detected username: %s", username)

	plan := &workflow.Plan{
		Root:     root,
		Desc:     desc,
		Settings: sett,
		Username: username,
		Git:      vcs.Git{Run: runner},
		GH:       gh,
	}
	orch := workflow.Orchestrator{
		Store:  store,
		Stages: workflow.SubmitStages(),
	}
	if err := orch.Run(ctx, plan); err != nil {
		return err
	}

	log.Out("All stages completed successfully!")
	log.Out("Your pull request should now be open. Once merged, the extension will appear in the marketplace.")
	return nil
}
