package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/serum-errors/go-serum"

	"github.com/warptools/depship/dsapi"
	"github.com/warptools/depship/pkg/checkpoint"
	"github.com/warptools/depship/pkg/logging"
)

// quietCtx silences the workflow's log chatter in tests.
func quietCtx() context.Context {
	return logging.NewLogger(io.Discard, io.Discard, true, false).WithContext(context.Background())
}

// fakeRunner records every command instead of executing anything.
type fakeRunner struct {
	calls [][]string
	dirs  []string
	outFn func(dir string, args []string) (string, error)
}

func (r *fakeRunner) Run(ctx context.Context, dir string, args ...string) error {
	r.calls = append(r.calls, args)
	r.dirs = append(r.dirs, dir)
	return nil
}

func (r *fakeRunner) Output(ctx context.Context, dir string, args ...string) (string, error) {
	r.calls = append(r.calls, args)
	r.dirs = append(r.dirs, dir)
	if r.outFn == nil {
		return "", nil
	}
	return r.outFn(dir, args)
}

// fakeStages returns six stages that only record their execution.
func fakeStages(ran *[]dsapi.Stage) []StageDef {
	stages := make([]StageDef, 6)
	for i := range stages {
		n := dsapi.Stage(i + 1)
		stages[i] = StageDef{
			Stage: n,
			Name:  fmt.Sprintf("stage-%d", n),
			Run: func(ctx context.Context, p *Plan) error {
				*ran = append(*ran, n)
				return nil
			},
		}
	}
	return stages
}

func TestOrchestratorRunsOnlyStagesAfterCheckpoint(t *testing.T) {
	for start := dsapi.Stage(0); start <= 6; start++ {
		start := start
		t.Run(fmt.Sprintf("checkpoint-%d", start), func(t *testing.T) {
			store := checkpoint.NewStore(filepath.Join(t.TempDir(), checkpoint.DefaultFilename))
			if start > 0 {
				qt.Assert(t, store.Save(start), qt.IsNil)
			}
			var ran []dsapi.Stage
			orch := Orchestrator{Store: store, Stages: fakeStages(&ran)}
			qt.Assert(t, orch.Run(quietCtx(), &Plan{}), qt.IsNil)

			var want []dsapi.Stage
			for n := start + 1; n <= 6; n++ {
				want = append(want, n)
			}
			qt.Check(t, ran, qt.DeepEquals, want)
			qt.Check(t, store.Load(), qt.Equals, dsapi.Stage(6))
		})
	}
}

func TestOrchestratorStopsWithoutAdvancingOnFailure(t *testing.T) {
	store := checkpoint.NewStore(filepath.Join(t.TempDir(), checkpoint.DefaultFilename))
	qt.Assert(t, store.Save(1), qt.IsNil)

	var ran []dsapi.Stage
	stages := fakeStages(&ran)
	boom := errors.New("remote said no")
	stages[1].Run = func(ctx context.Context, p *Plan) error { return boom } // stage 2

	orch := Orchestrator{Store: store, Stages: stages}
	err := orch.Run(quietCtx(), &Plan{})
	qt.Assert(t, err, qt.Not(qt.IsNil))
	qt.Check(t, serum.Code(err), qt.Equals, dsapi.CodeStageFailed)
	qt.Check(t, strings.Contains(err.Error(), "remote said no"), qt.IsTrue)
	// stage 2 failed: the checkpoint still shows the pre-stage-2 value,
	// and nothing after stage 2 ran.
	qt.Check(t, store.Load(), qt.Equals, dsapi.Stage(1))
	qt.Check(t, ran, qt.DeepEquals, []dsapi.Stage(nil))
}

func TestOrchestratorFreshRunCompletesAllStages(t *testing.T) {
	store := checkpoint.NewStore(filepath.Join(t.TempDir(), checkpoint.DefaultFilename))
	var ran []dsapi.Stage
	orch := Orchestrator{Store: store, Stages: fakeStages(&ran)}
	qt.Assert(t, orch.Run(quietCtx(), &Plan{}), qt.IsNil)
	qt.Check(t, ran, qt.DeepEquals, []dsapi.Stage{1, 2, 3, 4, 5, 6})
	qt.Check(t, store.Load(), qt.Equals, dsapi.Stage(6))
}

func TestSubmitStagesAreOrdered(t *testing.T) {
	stages := SubmitStages()
	qt.Assert(t, len(stages), qt.Equals, 6)
	for i, st := range stages {
		qt.Check(t, st.Stage, qt.Equals, dsapi.Stage(i+1))
	}
}
