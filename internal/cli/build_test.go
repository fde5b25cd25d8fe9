package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/arjun-christopher/fsbuild/internal/build"
	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/arjun-christopher/fsbuild/internal/execx"
	"github.com/arjun-christopher/fsbuild/internal/pipeline"
	"github.com/arjun-christopher/fsbuild/internal/workflow"
)

type fakeRunner struct {
	calls []execx.Request
}

func (f *fakeRunner) Execute(ctx context.Context, req execx.Request) (execx.Outcome, error) {
	f.calls = append(f.calls, req)
	return execx.Outcome{Succeeded: true}, nil
}

func TestResolveVariant(t *testing.T) {
	tests := []struct {
		name        string
		defVariant  string
		releaseFlag bool
		want        build.Variant
	}{
		{"default debug", "debug", false, build.Debug},
		{"configured release", "release", false, build.Release},
		{"flag wins over debug default", "debug", true, build.Release},
		{"flag redundant with release default", "release", true, build.Release},
		{"empty config falls back to debug", "", false, build.Debug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{DefaultVariant: tt.defVariant}
			got := resolveVariant(cfg, tt.releaseFlag)
			if got != tt.want {
				t.Errorf("resolveVariant(%q, %v) = %q, want %q",
					tt.defVariant, tt.releaseFlag, got, tt.want)
			}
		})
	}
}

func TestBuildHonorsConfiguredDefaultVariant(t *testing.T) {
	cfg := &config.Config{
		ProjectDir:     t.TempDir(),
		FlutterDir:     "/tmp/flutter",
		AndroidSDKDir:  "/tmp/android-sdk",
		DefaultVariant: "release",
	}
	runner := &fakeRunner{}
	ctl := workflow.NewWith(cfg, runner, pipeline.NewDisplayWriter(&bytes.Buffer{}))

	ctl.BuildArtifact(context.Background(), resolveVariant(ctl.Cfg, false), false)

	if len(runner.calls) == 0 {
		t.Fatal("expected a build invocation")
	}
	args := runner.calls[0].Args
	if args[len(args)-1] != "--release" {
		t.Errorf("expected a --release build for default_variant: release, got args %v", args)
	}
}

func TestInstallDefaultPathFollowsVariant(t *testing.T) {
	cfg := &config.Config{ProjectDir: "/work/app", DefaultVariant: "release"}
	got := cfg.ArtifactPath(string(resolveVariant(cfg, false)))
	want := cfg.ArtifactPath("release")
	if got != want {
		t.Errorf("default install path = %q, want %q", got, want)
	}
}
