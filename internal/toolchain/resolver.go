// Package toolchain provisions the Flutter/Android toolchain: it detects
// missing or broken components, installs them, and verifies the result.
// Re-running a fully provisioned resolver performs verification calls only.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/arjun-christopher/fsbuild/internal/execx"
	vlog "github.com/arjun-christopher/fsbuild/internal/log"
	"github.com/arjun-christopher/fsbuild/internal/pipeline"
)

// ProvisioningError means a toolchain component could not be installed or
// verified. It is fatal to the setup workflow.
type ProvisioningError struct {
	Component string
	Err       error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning %s: %v", e.Component, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// Component is one provisionable toolchain dependency.
//
// A component counts as present only when Installed reports true AND Verify
// (if any) succeeds; a directory that exists but fails verification is
// removed and reinstalled once.
type Component struct {
	Name string

	// Installed reports whether the component appears to be on disk.
	Installed func() bool

	// Verify runs the component's own diagnostic command with output
	// captured. Nil means presence on disk is sufficient.
	Verify func(ctx context.Context) bool

	// Install provisions the component. Progress streams to the terminal.
	Install func(ctx context.Context) error

	// PostInstall applies best-effort first-run configuration after a
	// fresh install. Failures are logged, never fatal.
	PostInstall func(ctx context.Context)

	// RemoveDir, when set, is the tree deleted before reinstalling a
	// component that failed verification.
	RemoveDir string

	// SoftFail downgrades an install failure to a warning. Used for the
	// SDK package batch, whose manager may exit non-zero after installing
	// most of the requested packages.
	SoftFail bool
}

// Resolver ensures every toolchain component is present and functional.
type Resolver struct {
	Cfg     *config.Config
	Exec    execx.Runner
	Env     *Environment
	Display *pipeline.Display
}

// Ensure walks all components in dependency order: Java runtime → Flutter →
// SDK command-line tools → SDK packages.
func (r *Resolver) Ensure(ctx context.Context) error {
	for _, c := range r.Components() {
		if err := r.EnsureComponent(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

// EnsureComponent provisions a single component per the verify-before-install,
// remove-before-reinstall scheme.
func (r *Resolver) EnsureComponent(ctx context.Context, c Component) error {
	if c.Installed() {
		if c.Verify == nil || c.Verify(ctx) {
			r.Display.Success(fmt.Sprintf("%s is ready", c.Name))
			return nil
		}
		r.Display.Warn(fmt.Sprintf("%s exists but is not working, reinstalling...", c.Name))
		if c.RemoveDir != "" {
			if err := os.RemoveAll(c.RemoveDir); err != nil {
				return &ProvisioningError{Component: c.Name, Err: err}
			}
		}
	} else {
		r.Display.Warn(fmt.Sprintf("%s not found, installing...", c.Name))
	}

	if err := c.Install(ctx); err != nil {
		if c.SoftFail {
			vlog.Warn("component install reported failure", "component", c.Name, "err", err)
			r.Display.Warn(fmt.Sprintf("%s install reported errors (continuing)", c.Name))
			return nil
		}
		return &ProvisioningError{Component: c.Name, Err: err}
	}

	if c.Verify != nil && !c.Verify(ctx) {
		return &ProvisioningError{Component: c.Name, Err: fmt.Errorf("verification failed after install")}
	}

	if c.PostInstall != nil {
		c.PostInstall(ctx)
	}

	r.Display.Success(fmt.Sprintf("%s installed", c.Name))
	return nil
}

// Components returns the provisionable set in dependency order.
func (r *Resolver) Components() []Component {
	return []Component{
		r.java(),
		r.flutter(),
		r.cmdlineTools(),
		r.sdkPackages(),
	}
}

func (r *Resolver) java() Component {
	return Component{
		Name:      "Java 17",
		Installed: func() bool { return dirExists(r.Cfg.JavaHome) },
		Verify: func(ctx context.Context) bool {
			return r.capture(ctx, "java", "-version")
		},
		Install: func(ctx context.Context) error {
			return r.shell(ctx, "apt-get update && apt-get install -y openjdk-17-jdk")
		},
	}
}

func (r *Resolver) flutter() Component {
	bin := r.Cfg.FlutterBin()
	return Component{
		Name:      "Flutter SDK",
		Installed: func() bool { return dirExists(r.Cfg.FlutterDir) },
		RemoveDir: r.Cfg.FlutterDir,
		Verify: func(ctx context.Context) bool {
			return r.capture(ctx, bin, "--version")
		},
		Install: func(ctx context.Context) error {
			return r.stream(ctx, "git", "clone",
				"https://github.com/flutter/flutter.git",
				"-b", "stable", "--depth", "1", r.Cfg.FlutterDir)
		},
		PostInstall: func(ctx context.Context) {
			r.Display.Info("Configuring Flutter...")
			if err := r.stream(ctx, bin, "config", "--no-analytics"); err != nil {
				vlog.Warn("flutter config failed", "err", err)
			}
			if err := r.stream(ctx, bin, "precache", "--android"); err != nil {
				vlog.Warn("flutter precache failed", "err", err)
			}
		},
	}
}

func (r *Resolver) cmdlineTools() Component {
	toolsDir := filepath.Join(r.Cfg.AndroidSDKDir, "cmdline-tools", "latest")
	return Component{
		Name:      "Android SDK command-line tools",
		Installed: func() bool { return dirExists(toolsDir) },
		RemoveDir: r.Cfg.AndroidSDKDir,
		Verify: func(ctx context.Context) bool {
			return r.capture(ctx, r.Cfg.SDKManagerBin(), "--version")
		},
		Install: func(ctx context.Context) error {
			archive := filepath.Join(os.TempDir(), "commandlinetools.zip")
			stage := filepath.Join(os.TempDir(), "cmdline-tools-tmp")

			r.Display.Info("Downloading Android SDK...")
			if err := r.stream(ctx, "wget", "-q", "-O", archive, r.Cfg.CmdlineToolsURL); err != nil {
				return fmt.Errorf("downloading command-line tools: %w", err)
			}

			if err := os.MkdirAll(toolsDir, 0o755); err != nil {
				return err
			}

			// The archive nests everything under cmdline-tools/; unpack to a
			// staging dir and move the contents into .../cmdline-tools/latest.
			r.Display.Info("Extracting Android SDK...")
			extract := fmt.Sprintf("unzip -q %s -d %s && mv %s/cmdline-tools/* %s/ && rm -rf %s %s",
				archive, stage, stage, toolsDir, stage, archive)
			if err := r.shell(ctx, extract); err != nil {
				return fmt.Errorf("extracting command-line tools: %w", err)
			}
			return nil
		},
	}
}

func (r *Resolver) sdkPackages() Component {
	return Component{
		Name: "Android SDK packages",
		Installed: func() bool {
			for _, pkg := range r.Cfg.SDKPackages {
				if !dirExists(packageDir(r.Cfg.AndroidSDKDir, pkg)) {
					return false
				}
			}
			return true
		},
		SoftFail: true,
		Install: func(ctx context.Context) error {
			sdkmanager := r.Cfg.SDKManagerBin()

			r.Display.Info("Accepting SDK licenses...")
			if err := r.shell(ctx, fmt.Sprintf("yes | %s --licenses", sdkmanager)); err != nil {
				vlog.Warn("license acceptance reported failure", "err", err)
			}

			// One batched invocation so a partial failure names the batch.
			r.Display.Info(fmt.Sprintf("Installing components: %s", strings.Join(r.Cfg.SDKPackages, ", ")))
			args := append([]string{}, r.Cfg.SDKPackages...)
			if err := r.stream(ctx, sdkmanager, args...); err != nil {
				return fmt.Errorf("installing packages %s: %w", strings.Join(r.Cfg.SDKPackages, " "), err)
			}
			return nil
		},
	}
}

// capture runs a command with output buffered and reports success.
func (r *Resolver) capture(ctx context.Context, name string, args ...string) bool {
	out, err := r.Exec.Execute(ctx, execx.Request{
		Name:    name,
		Args:    args,
		Env:     r.Env.Environ(),
		Capture: true,
	})
	if err != nil {
		return false
	}
	return out.Succeeded
}

// stream runs a command with output inherited so progress stays visible.
func (r *Resolver) stream(ctx context.Context, name string, args ...string) error {
	out, err := r.Exec.Execute(ctx, execx.Request{
		Name: name,
		Args: args,
		Env:  r.Env.Environ(),
	})
	if err != nil {
		return err
	}
	if !out.Succeeded {
		return fmt.Errorf("%s %s exited non-zero", name, strings.Join(args, " "))
	}
	return nil
}

func (r *Resolver) shell(ctx context.Context, command string) error {
	out, err := execx.Shell(ctx, r.Exec, command, r.Env.Environ(), false)
	if err != nil {
		return err
	}
	if !out.Succeeded {
		return fmt.Errorf("command %q exited non-zero", command)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// packageDir maps an sdkmanager package name (semicolon-separated) to its
// install directory under the SDK root.
func packageDir(sdkRoot, pkg string) string {
	return filepath.Join(sdkRoot, filepath.FromSlash(strings.ReplaceAll(pkg, ";", "/")))
}
