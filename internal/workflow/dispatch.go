package workflow

import (
	"context"
	"fmt"

	"github.com/arjun-christopher/fsbuild/internal/build"
)

// Workflow names accepted by Dispatch. The interactive menu maps its choices
// onto these; the core never reads interactive input itself.
const (
	WorkflowSetup        = "setup"
	WorkflowRun          = "run"
	WorkflowBuildDebug   = "build-debug"
	WorkflowBuildRelease = "build-release"
	WorkflowBuildInstall = "build-install"
	WorkflowCleanRebuild = "clean-rebuild"
)

// Dispatch runs a named workflow and reports its overall outcome.
func (c *Controller) Dispatch(ctx context.Context, name string) error {
	ops := map[string]func(context.Context) error{
		WorkflowSetup: c.RunSetup,
		WorkflowRun:   c.RunOnDevice,
		WorkflowBuildDebug: func(ctx context.Context) error {
			return c.buildOnly(ctx, build.Debug, false)
		},
		WorkflowBuildRelease: func(ctx context.Context) error {
			return c.buildOnly(ctx, build.Release, false)
		},
		WorkflowBuildInstall: func(ctx context.Context) error {
			res := c.BuildArtifact(ctx, build.Debug, false)
			if !res.Succeeded {
				return buildError(res)
			}
			return c.InstallArtifact(ctx, res.ArtifactPath)
		},
		WorkflowCleanRebuild: func(ctx context.Context) error {
			return c.buildOnly(ctx, build.Debug, true)
		},
	}

	op, ok := ops[name]
	if !ok {
		return fmt.Errorf("unknown workflow %q", name)
	}
	return op(ctx)
}

func (c *Controller) buildOnly(ctx context.Context, variant build.Variant, clean bool) error {
	res := c.BuildArtifact(ctx, variant, clean)
	if !res.Succeeded {
		return buildError(res)
	}
	return nil
}

func buildError(res build.Result) error {
	if res.Stderr != "" {
		return fmt.Errorf("%s build failed:\n%s", res.Variant, res.Stderr)
	}
	return fmt.Errorf("%s build failed", res.Variant)
}
