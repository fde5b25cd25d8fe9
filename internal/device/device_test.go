package device

import (
	"bytes"
	"context"
	"errors"
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

func TestParseList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{
			name: "header only",
			raw:  "List of devices attached\n",
			want: 0,
		},
		{
			name: "two devices",
			raw: "List of devices attached\n" +
				"emulator-5554          device product:sdk_gphone64 model:Pixel_6\n" +
				"R58M123ABC             device usb:1-1 model:SM_G991B\n",
			want: 2,
		},
		{
			name: "advisory line skipped",
			raw: "List of devices attached\n" +
				"emulator-5554          device\n" +
				"R58M123ABC             device\n" +
				"* daemon started successfully\n",
			want: 2,
		},
		{
			name: "blank lines skipped",
			raw:  "List of devices attached\n\nemulator-5554 device\n\n",
			want: 1,
		},
		{
			name: "empty output",
			raw:  "",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseList(tt.raw)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestParseListFields(t *testing.T) {
	raw := "List of devices attached\nemulator-5554 device product:sdk model:Pixel_6\n"
	devices := ParseList(raw)
	require.Len(t, devices, 1)
	assert.Equal(t, "emulator-5554", devices[0].ID)
	assert.Equal(t, "device product:sdk model:Pixel_6", devices[0].Description)
}

func newTestManager(runner *fakeRunner) *Manager {
	cfg := &config.Config{
		ProjectDir:    "/work/app",
		FlutterDir:    "/tmp/flutter",
		AndroidSDKDir: "/tmp/android-sdk",
	}
	return &Manager{
		Cfg:     cfg,
		Exec:    runner,
		Display: pipeline.NewDisplayWriter(&bytes.Buffer{}),
	}
}

func TestInstallNoDevice(t *testing.T) {
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		return execx.Outcome{Succeeded: true, Stdout: "List of devices attached\n"}, nil
	}}
	m := newTestManager(runner)

	err := m.Install(context.Background(), "/tmp/app.apk")
	assert.True(t, errors.Is(err, ErrNoDevice))
	// only the enumeration ran; the install command was never issued
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"devices", "-l"}, runner.calls[0].Args)
}

func TestInstallWithDevice(t *testing.T) {
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		if len(req.Args) > 0 && req.Args[0] == "devices" {
			return execx.Outcome{Succeeded: true, Stdout: "List of devices attached\nemulator-5554 device\n"}, nil
		}
		return execx.Outcome{Succeeded: true}, nil
	}}
	m := newTestManager(runner)

	err := m.Install(context.Background(), "/tmp/app.apk")
	require.NoError(t, err)
	require.Len(t, runner.calls, 2)
	assert.Equal(t, []string{"install", "-r", "/tmp/app.apk"}, runner.calls[1].Args)
}

func TestRunNoDevice(t *testing.T) {
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		return execx.Outcome{Succeeded: true, Stdout: "List of devices attached\n"}, nil
	}}
	m := newTestManager(runner)

	err := m.Run(context.Background())
	assert.True(t, errors.Is(err, ErrNoDevice))
	require.Len(t, runner.calls, 1)
}

func TestRunIsInteractive(t *testing.T) {
	runner := &fakeRunner{handler: func(req execx.Request) (execx.Outcome, error) {
		if len(req.Args) > 0 && req.Args[0] == "devices" {
			return execx.Outcome{Succeeded: true, Stdout: "List of devices attached\nemulator-5554 device\n"}, nil
		}
		return execx.Outcome{Succeeded: true}, nil
	}}
	m := newTestManager(runner)

	err := m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, runner.calls, 2)
	assert.True(t, runner.calls[1].Interactive)
	assert.False(t, runner.calls[1].Capture, "run output must stream live")
}
