// Package build drives the APK build with output-driven fallback: a release
// build whose failure matches a recoverable marker is retried once as debug.
package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/arjun-christopher/fsbuild/internal/execx"
	vlog "github.com/arjun-christopher/fsbuild/internal/log"
	"github.com/arjun-christopher/fsbuild/internal/pipeline"
)

// Variant selects the build configuration.
type Variant string

const (
	Debug   Variant = "debug"
	Release Variant = "release"
)

// Request describes one build invocation.
type Request struct {
	Variant Variant
	Clean   bool
}

// Result is the terminal outcome of a build. Succeeded is true only when the
// build tool succeeded AND the artifact is verifiably present on disk.
type Result struct {
	Succeeded    bool
	Variant      Variant
	ArtifactPath string
	SizeBytes    int64

	// Stderr holds the captured diagnostic text of the failing invocation.
	Stderr string
}

// Orchestrator invokes the build tool and applies the fallback policy.
type Orchestrator struct {
	Cfg     *config.Config
	Exec    execx.Runner
	Env     []string
	Display *pipeline.Display
}

// Build runs the requested build. It always terminates in a Result; the
// release→debug fallback is bounded to exactly one hop, and debug failures
// are never retried.
func (o *Orchestrator) Build(ctx context.Context, req Request) Result {
	if req.Clean {
		o.Clean(ctx)
	}
	return o.build(ctx, req.Variant, true)
}

func (o *Orchestrator) build(ctx context.Context, variant Variant, allowFallback bool) Result {
	o.Display.Step(fmt.Sprintf("Building %s APK", variant))
	o.Display.Info("Building APK (this may take several minutes)...")

	args := []string{"build", "apk"}
	if variant == Release {
		args = append(args, "--release")
	} else {
		args = append(args, "--debug")
	}

	out, err := o.Exec.Execute(ctx, execx.Request{
		Name:    o.Cfg.FlutterBin(),
		Args:    args,
		Dir:     o.Cfg.ProjectDir,
		Env:     o.Env,
		Capture: true,
	})
	if err != nil {
		o.Display.Error(fmt.Sprintf("Build failed: %v", err))
		return Result{Variant: variant, Stderr: err.Error()}
	}

	if out.Succeeded {
		return o.verifyArtifact(variant)
	}

	o.Display.Error("Build failed")
	if allowFallback && variant == Release && Classify(out.Stderr, o.Cfg.RecoverableMarkers) == Recoverable {
		vlog.Info("recoverable build failure, falling back to debug", "variant", variant)
		o.Display.Warn("Minification failed, trying debug build instead...")
		return o.build(ctx, Debug, false)
	}

	return Result{Variant: variant, Stderr: out.Stderr}
}

// verifyArtifact gates tool-reported success on the APK actually existing at
// the variant's well-known output path.
func (o *Orchestrator) verifyArtifact(variant Variant) Result {
	path := o.Cfg.ArtifactPath(string(variant))
	info, err := os.Stat(path)
	if err != nil {
		o.Display.Error("APK file not found after build")
		return Result{Variant: variant, Stderr: fmt.Sprintf("artifact missing at %s", path)}
	}

	o.Display.Success("APK built successfully!")
	o.Display.Success(fmt.Sprintf("Location: %s", path))
	o.Display.Success(fmt.Sprintf("Size: %.1f MB", float64(info.Size())/(1024*1024)))

	return Result{
		Succeeded:    true,
		Variant:      variant,
		ArtifactPath: path,
		SizeBytes:    info.Size(),
	}
}

// Clean removes prior build artifacts: flutter clean plus the Android
// module's build directory. Best-effort.
func (o *Orchestrator) Clean(ctx context.Context) {
	o.Display.Step("Cleaning Previous Build")

	out, err := o.Exec.Execute(ctx, execx.Request{
		Name: o.Cfg.FlutterBin(),
		Args: []string{"clean"},
		Dir:  o.Cfg.ProjectDir,
		Env:  o.Env,
	})
	if err != nil || !out.Succeeded {
		vlog.Warn("flutter clean reported failure")
	}

	androidBuild := filepath.Join(o.Cfg.ProjectDir, "android", "app", "build")
	if err := os.RemoveAll(androidBuild); err != nil {
		vlog.Warn("removing android build dir", "err", err)
	}

	o.Display.Success("Build cleaned")
}
