// Package pipeline executes an ordered list of named setup steps with
// fail-fast semantics.
package pipeline

import (
	"context"
	"fmt"

	vlog "github.com/arjun-christopher/fsbuild/internal/log"
)

// Step is a single unit of work in a pipeline.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result reports the outcome of one pipeline run. FailedStep is empty on
// success.
type Result struct {
	OK         bool
	FailedStep string
	Err        error
}

// Runner executes steps strictly in order on the calling goroutine.
type Runner struct {
	Display *Display
}

// Run executes steps in order, halting at the first failure. A panic inside
// a step's action is captured and treated as that step failing; it never
// propagates. Later steps do not run after a failure.
func (r *Runner) Run(ctx context.Context, steps []Step) Result {
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return Result{FailedStep: step.Name, Err: err}
		}

		if err := r.runStep(ctx, step); err != nil {
			vlog.Error("step failed", "step", step.Name, "err", err)
			if r.Display != nil {
				r.Display.Error(fmt.Sprintf("Failed at step: %s", step.Name))
			}
			return Result{FailedStep: step.Name, Err: err}
		}
	}
	return Result{OK: true}
}

func (r *Runner) runStep(ctx context.Context, step Step) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("step %q panicked: %v", step.Name, p)
		}
	}()
	return step.Run(ctx)
}
