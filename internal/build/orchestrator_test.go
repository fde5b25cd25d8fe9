package build

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/arjun-christopher/fsbuild/internal/execx"
	"github.com/arjun-christopher/fsbuild/internal/pipeline"
)

type fakeRunner struct {
	calls   []execx.Request
	handler func(execx.Request) (execx.Outcome, error)
}

func (f *fakeRunner) Execute(ctx context.Context, req execx.Request) (execx.Outcome, error) {
	f.calls = append(f.calls, req)
	if f.handler != nil {
		return f.handler(req)
	}
	return execx.Outcome{Succeeded: true}, nil
}

func newTestOrchestrator(t *testing.T, runner *fakeRunner) *Orchestrator {
	t.Helper()
	cfg := &config.Config{
		ProjectDir:         t.TempDir(),
		FlutterDir:         "/tmp/flutter",
		AndroidSDKDir:      "/tmp/android-sdk",
		RecoverableMarkers: []string{"R8", "minify"},
	}
	return &Orchestrator{
		Cfg:     cfg,
		Exec:    runner,
		Display: pipeline.NewDisplayWriter(&bytes.Buffer{}),
	}
}

func writeArtifact(t *testing.T, cfg *config.Config, variant string, size int) {
	t.Helper()
	path := cfg.ArtifactPath(variant)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0}, size), 0o644))
}

func TestBuildSuccess(t *testing.T) {
	runner := &fakeRunner{}
	o := newTestOrchestrator(t, runner)
	writeArtifact(t, o.Cfg, "debug", 2048)

	res := o.Build(context.Background(), Request{Variant: Debug})

	assert.True(t, res.Succeeded)
	assert.Equal(t, Debug, res.Variant)
	assert.Equal(t, int64(2048), res.SizeBytes)
	assert.Equal(t, o.Cfg.ArtifactPath("debug"), res.ArtifactPath)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"build", "apk", "--debug"}, runner.calls[0].Args)
	assert.True(t, runner.calls[0].Capture)
	assert.Equal(t, o.Cfg.ProjectDir, runner.calls[0].Dir)
}

func TestBuildReleaseFlags(t *testing.T) {
	runner := &fakeRunner{}
	o := newTestOrchestrator(t, runner)
	writeArtifact(t, o.Cfg, "release", 1)

	res := o.Build(context.Background(), Request{Variant: Release})

	assert.True(t, res.Succeeded)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"build", "apk", "--release"}, runner.calls[0].Args)
}

func TestBuildArtifactMissingIsFailure(t *testing.T) {
	// Tool reports success but nothing was produced at the expected path.
	runner := &fakeRunner{}
	o := newTestOrchestrator(t, runner)

	res := o.Build(context.Background(), Request{Variant: Debug})

	assert.False(t, res.Succeeded)
	assert.Contains(t, res.Stderr, "artifact missing")
}

func TestBuildReleaseFallsBackToDebug(t *testing.T) {
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		if req.Args[len(req.Args)-1] == "--release" {
			return execx.Outcome{Stderr: "Execution failed: R8 minification error"}, nil
		}
		return execx.Outcome{Succeeded: true}, nil
	}}
	o := newTestOrchestrator(t, runner)
	writeArtifact(t, o.Cfg, "debug", 100)

	res := o.Build(context.Background(), Request{Variant: Release})

	assert.True(t, res.Succeeded)
	assert.Equal(t, Debug, res.Variant, "fallback result carries the debug variant")
	require.Len(t, runner.calls, 2)
	assert.Equal(t, "--release", runner.calls[0].Args[len(runner.calls[0].Args)-1])
	assert.Equal(t, "--debug", runner.calls[1].Args[len(runner.calls[1].Args)-1])
}

func TestBuildFallbackIsBoundedToOneHop(t *testing.T) {
	// Both the release build and its debug retry fail with the recoverable
	// signature; exactly one fallback attempt must happen.
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		return execx.Outcome{Stderr: "R8 minify failure"}, nil
	}}
	o := newTestOrchestrator(t, runner)

	res := o.Build(context.Background(), Request{Variant: Release})

	assert.False(t, res.Succeeded)
	assert.Len(t, runner.calls, 2, "one release attempt plus exactly one fallback")
	assert.Contains(t, res.Stderr, "R8")
}

func TestBuildDebugFailureIsNotRetried(t *testing.T) {
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		return execx.Outcome{Stderr: "R8 minify failure"}, nil
	}}
	o := newTestOrchestrator(t, runner)

	res := o.Build(context.Background(), Request{Variant: Debug})

	assert.False(t, res.Succeeded)
	assert.Len(t, runner.calls, 1)
}

func TestBuildFatalFailureNoFallback(t *testing.T) {
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		return execx.Outcome{Stderr: "could not resolve dependency"}, nil
	}}
	o := newTestOrchestrator(t, runner)

	res := o.Build(context.Background(), Request{Variant: Release})

	assert.False(t, res.Succeeded)
	assert.Len(t, runner.calls, 1)
	assert.Contains(t, res.Stderr, "could not resolve dependency")
}

func TestBuildWithCleanRemovesAndroidBuildDir(t *testing.T) {
	runner := &fakeRunner{}
	o := newTestOrchestrator(t, runner)

	androidBuild := filepath.Join(o.Cfg.ProjectDir, "android", "app", "build")
	require.NoError(t, os.MkdirAll(androidBuild, 0o755))
	writeArtifact(t, o.Cfg, "debug", 1)

	res := o.Build(context.Background(), Request{Variant: Debug, Clean: true})

	assert.True(t, res.Succeeded)
	_, err := os.Stat(androidBuild)
	assert.True(t, os.IsNotExist(err))
	// flutter clean plus the build invocation
	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"clean"}, runner.calls[0].Args)
}
