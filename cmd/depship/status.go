package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/warptools/depship/pkg/checkpoint"
	"github.com/warptools/depship/pkg/workflow"
)

var statusCmdDef = cli.Command{
	Name:    "status",
	Usage:   "Show submit workflow progress and resolved settings.",
	Aliases: []string{"info"},
	Action:  cmdStatus,
}

func cmdStatus(c *cli.Context) error {
	fmtBold := color.New(color.Bold)
	fmtDone := color.New(color.FgHiGreen)

	fmt.Fprintf(c.App.Writer, "Depship Version: %s\n\n", VERSION)

	root, err := invocationDir()
	if err != nil {
		return err
	}
	sett, err := loadSettings(c, root)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "Registry: %s (base branch %q)\n", sett.Registry(), sett.RegistryBaseBranch)
	fmt.Fprintf(c.App.Writer, "Depot folder: %s\n\n", sett.DepotFolder)

	store := checkpoint.NewStore(filepath.Join(root, checkpoint.DefaultFilename))
	completed := store.Load()
	if completed == 0 {
		fmt.Fprintf(c.App.Writer, "No submit in progress (no checkpoint found).\n")
	} else {
		fmtBold.Fprintf(c.App.Writer, "Submit in progress, last completed stage: %d\n", completed)
	}
	for _, st := range workflow.SubmitStages() {
		if st.Stage <= completed {
			fmtDone.Fprintf(c.App.Writer, "  [done]    %d: %s\n", st.Stage, st.Name)
		} else {
			fmt.Fprintf(c.App.Writer, "  [pending] %d: %s\n", st.Stage, st.Name)
		}
	}
	return nil
}
