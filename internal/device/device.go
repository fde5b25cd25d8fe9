// Package device enumerates attached Android targets and gates install/run
// operations on at least one target being present.
package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/arjun-christopher/fsbuild/internal/execx"
	"github.com/arjun-christopher/fsbuild/internal/pipeline"
)

// ErrNoDevice is returned when install/run is requested with nothing
// attached. The underlying tool command is never invoked in that case.
var ErrNoDevice = errors.New("no device connected")

// Device is one attached target, discovered transiently per enumeration.
// Records are never cached across calls.
type Device struct {
	ID          string
	Description string
}

// ParseList parses `adb devices -l` output: one device per line after the
// header, skipping blank lines and advisory lines prefixed with an asterisk.
func ParseList(raw string) []Device {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	if len(lines) <= 1 {
		return nil
	}

	var devices []Device
	for _, line := range lines[1:] {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		devices = append(devices, Device{
			ID:          fields[0],
			Description: strings.Join(fields[1:], " "),
		})
	}
	return devices
}

// Manager runs device operations through adb and flutter.
type Manager struct {
	Cfg     *config.Config
	Exec    execx.Runner
	Env     []string
	Display *pipeline.Display
}

// List enumerates attached devices. An empty list is not an error.
func (m *Manager) List(ctx context.Context) ([]Device, error) {
	out, err := m.Exec.Execute(ctx, execx.Request{
		Name:    m.Cfg.ADBBin(),
		Args:    []string{"devices", "-l"},
		Env:     m.Env,
		Capture: true,
	})
	if err != nil {
		return nil, err
	}
	if !out.Succeeded {
		return nil, fmt.Errorf("adb devices failed: %s", strings.TrimSpace(out.Stderr))
	}
	return ParseList(out.Stdout), nil
}

// requireDevice enumerates devices and fails with ErrNoDevice when none are
// attached.
func (m *Manager) requireDevice(ctx context.Context) error {
	devices, err := m.List(ctx)
	if err != nil {
		return err
	}
	if len(devices) == 0 {
		m.Display.Warn("No devices found")
		m.Display.Info("Make sure your device is:")
		m.Display.Info("  1. Connected via USB")
		m.Display.Info("  2. USB debugging is enabled")
		m.Display.Info("  3. Device is unlocked")
		return ErrNoDevice
	}

	m.Display.Success(fmt.Sprintf("Found %d connected device(s):", len(devices)))
	for _, d := range devices {
		m.Display.Plain(fmt.Sprintf("  • %s %s", d.ID, d.Description))
	}
	return nil
}

// Install installs an APK on an attached device with `adb install -r`,
// replacing any existing installation.
func (m *Manager) Install(ctx context.Context, apkPath string) error {
	m.Display.Step("Installing APK on Device")

	if err := m.requireDevice(ctx); err != nil {
		return err
	}

	m.Display.Info(fmt.Sprintf("Installing %s...", apkPath))
	out, err := m.Exec.Execute(ctx, execx.Request{
		Name:    m.Cfg.ADBBin(),
		Args:    []string{"install", "-r", apkPath},
		Env:     m.Env,
		Capture: true,
	})
	if err != nil {
		return err
	}
	if !out.Succeeded {
		return fmt.Errorf("installation failed: %s", strings.TrimSpace(out.Stderr))
	}

	m.Display.Success("APK installed successfully!")
	m.Display.Info("You can now launch the app from your device")
	return nil
}

// Run launches the app on an attached device in foreground mode so output
// streams live. The call may block until the user interrupts it; an external
// interrupt ends the run gracefully rather than as a failure.
func (m *Manager) Run(ctx context.Context) error {
	m.Display.Step("Running App on Device")

	if err := m.requireDevice(ctx); err != nil {
		return err
	}

	m.Display.Info("Starting app (this may take a minute)...")
	m.Display.Info("Press Ctrl+C to stop the app")

	out, err := m.Exec.Execute(ctx, execx.Request{
		Name:        m.Cfg.FlutterBin(),
		Args:        []string{"run"},
		Dir:         m.Cfg.ProjectDir,
		Env:         m.Env,
		Interactive: true,
	})
	if err != nil {
		return err
	}
	if !out.Succeeded {
		return fmt.Errorf("flutter run exited with failure")
	}
	return nil
}
