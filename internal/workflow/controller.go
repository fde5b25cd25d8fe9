// Package workflow composes the toolchain resolver, step pipeline, build
// orchestrator and device manager into the named workflows exposed to the
// CLI and menu layers.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/arjun-christopher/fsbuild/internal/build"
	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/arjun-christopher/fsbuild/internal/device"
	"github.com/arjun-christopher/fsbuild/internal/execx"
	"github.com/arjun-christopher/fsbuild/internal/pipeline"
	"github.com/arjun-christopher/fsbuild/internal/toolchain"
)

// Controller owns one workflow invocation's collaborators. The execution
// environment is built once at construction and read-only afterwards.
type Controller struct {
	Cfg      *config.Config
	Exec     execx.Runner
	Env      *toolchain.Environment
	Display  *pipeline.Display
	Resolver *toolchain.Resolver
	Pipeline *pipeline.Runner
	Builder  *build.Orchestrator
	Devices  *device.Manager
}

// New wires a controller from configuration. The runner runs commands
// locally; tests substitute a fake through NewWith.
func New(cfg *config.Config) *Controller {
	return NewWith(cfg, execx.Local{}, pipeline.NewDisplay())
}

// NewWith wires a controller with an explicit runner and display.
func NewWith(cfg *config.Config, runner execx.Runner, disp *pipeline.Display) *Controller {
	env := toolchain.NewEnvironment(cfg)
	return &Controller{
		Cfg:     cfg,
		Exec:    runner,
		Env:     env,
		Display: disp,
		Resolver: &toolchain.Resolver{
			Cfg:     cfg,
			Exec:    runner,
			Env:     env,
			Display: disp,
		},
		Pipeline: &pipeline.Runner{Display: disp},
		Builder: &build.Orchestrator{
			Cfg:     cfg,
			Exec:    runner,
			Env:     env.Environ(),
			Display: disp,
		},
		Devices: &device.Manager{
			Cfg:     cfg,
			Exec:    runner,
			Env:     env.Environ(),
			Display: disp,
		},
	}
}

// Banner prints the program banner.
func (c *Controller) Banner() {
	c.Display.Banner(
		"FinSight App - Complete Runner & Builder",
		"Automated Expense Recognition Application",
	)
}

// RunSetup executes the fixed provisioning step sequence through the step
// pipeline: toolchain components, Flutter↔SDK binding, dependency fetch.
func (c *Controller) RunSetup(ctx context.Context) error {
	start := time.Now()

	steps := []pipeline.Step{}
	for _, comp := range c.Resolver.Components() {
		comp := comp
		steps = append(steps, pipeline.Step{
			Name: "Setting up " + comp.Name,
			Run: func(ctx context.Context) error {
				c.Display.Step("Setting Up " + comp.Name)
				return c.Resolver.EnsureComponent(ctx, comp)
			},
		})
	}
	steps = append(steps,
		pipeline.Step{Name: "Configuring Flutter", Run: c.configureFlutterSDK},
		pipeline.Step{Name: "Getting dependencies", Run: c.fetchDependencies},
	)

	res := c.Pipeline.Run(ctx, steps)
	if !res.OK {
		return fmt.Errorf("setup failed at %q: %w", res.FailedStep, res.Err)
	}

	c.Display.Banner("SETUP COMPLETED SUCCESSFULLY!")
	c.Display.Summary(time.Since(start))
	return nil
}

// BuildArtifact runs an optional icon fixup and clean, then the build
// orchestrator. A successful build ends with the elapsed-time summary and
// the manual-install hint.
func (c *Controller) BuildArtifact(ctx context.Context, variant build.Variant, clean bool) build.Result {
	start := time.Now()

	if err := c.FixLauncherIcons(); err != nil {
		c.Display.Warn(fmt.Sprintf("launcher icon fixup skipped: %v", err))
	}

	res := c.Builder.Build(ctx, build.Request{Variant: variant, Clean: clean})
	if res.Succeeded {
		c.Display.Summary(time.Since(start))
		c.Display.Plain("📋 Next Steps:")
		c.Display.Plain("   1. Right-click the APK in VS Code and select 'Download'")
		c.Display.Plain("   2. Transfer to your Android device")
		c.Display.Plain("   3. Install/Update the app")
	}
	return res
}

// InstallArtifact installs an APK on an attached device.
func (c *Controller) InstallArtifact(ctx context.Context, apkPath string) error {
	return c.Devices.Install(ctx, apkPath)
}

// RunOnDevice launches the app on an attached device in foreground mode.
func (c *Controller) RunOnDevice(ctx context.Context) error {
	return c.Devices.Run(ctx)
}

// ListDevices enumerates attached devices.
func (c *Controller) ListDevices(ctx context.Context) ([]device.Device, error) {
	return c.Devices.List(ctx)
}

// configureFlutterSDK points Flutter at the provisioned Android SDK.
func (c *Controller) configureFlutterSDK(ctx context.Context) error {
	c.Display.Step("Configuring Flutter SDK")

	out, err := c.Exec.Execute(ctx, execx.Request{
		Name: c.Cfg.FlutterBin(),
		Args: []string{"config", "--android-sdk", c.Cfg.AndroidSDKDir},
		Env:  c.Env.Environ(),
	})
	if err != nil {
		return err
	}
	if !out.Succeeded {
		return fmt.Errorf("flutter config --android-sdk exited non-zero")
	}

	c.Display.Success("Flutter configured with Android SDK")
	return nil
}

// fetchDependencies runs flutter pub get in the project directory.
func (c *Controller) fetchDependencies(ctx context.Context) error {
	c.Display.Step("Installing Flutter Dependencies")
	c.Display.Info("Running flutter pub get...")

	out, err := c.Exec.Execute(ctx, execx.Request{
		Name: c.Cfg.FlutterBin(),
		Args: []string{"pub", "get"},
		Dir:  c.Cfg.ProjectDir,
		Env:  c.Env.Environ(),
	})
	if err != nil {
		return err
	}
	if !out.Succeeded {
		return fmt.Errorf("flutter pub get exited non-zero")
	}

	c.Display.Success("Dependencies installed")
	return nil
}
