// Package workflow implements the checkpointed submit workflow and the
// uncheckpointed update workflow.
//
// The submit workflow is a fixed, strictly ordered sequence of six stages.
// There is no parallelism and no branching: the only control decision is
// skip-if-already-done, driven by the checkpoint.  A stage failure stops
// the run without advancing the checkpoint, so the next invocation retries
// that exact stage.
package workflow

import (
	"context"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/checkpoint"
	"github.com/warptools/depship/pkg/logging"
)

const logTag = "workflow"

// StageFunc performs one stage's externally visible work.
type StageFunc func(ctx context.Context, p *Plan) error

// StageDef names one stage of the submit workflow.
type StageDef struct {
	Stage dsapi.Stage
	Name  string
	Run   StageFunc
}

// Orchestrator drives an ordered stage list against a checkpoint store.
type Orchestrator struct {
	Store  checkpoint.Store
	Stages []StageDef
}

// Run executes every stage strictly after the loaded checkpoint, in order,
// persisting the checkpoint after each success.  Stages at or below the
// checkpoint are skipped with an explicit notice.
//
// Errors:
//
//    - depship-error-stage-failed -- a stage's work failed; the cause names
//      the failing command or artifact
//    - depship-error-io -- the checkpoint could not be persisted
func (o Orchestrator) Run(ctx context.Context, p *Plan) error {
	log := logging.Ctx(ctx)
	completed := o.Store.Load()
	for _, st := range o.Stages {
		if st.Stage <= completed {
			log.Info(logTag, "skipping stage %d (%s): already completed", st.Stage, st.Name)
			continue
		}
		log.Info(logTag, "=== stage %d: %s ===", st.Stage, st.Name)
		if err := st.Run(ctx, p); err != nil {
			return dsapi.ErrorStageFailed(st.Name, err)
		}
		if err := o.Store.Save(st.Stage); err != nil {
			// Error Codes = depship-error-io
			return err
		}
		completed = st.Stage
	}
	return nil
}
