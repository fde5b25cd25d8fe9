// Package config resolves the engine configuration from defaults,
// user-level and project-level YAML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level engine configuration. Paths and package lists
// describe where the toolchain lives and what must be provisioned; nothing
// in here is read from ambient globals after Load returns.
type Config struct {
	ProjectDir    string `yaml:"project_dir"`
	FlutterDir    string `yaml:"flutter_dir"`
	AndroidSDKDir string `yaml:"android_sdk_dir"`
	JavaHome      string `yaml:"java_home"`

	// CmdlineToolsURL is the download location for the Android SDK
	// command-line tools archive.
	CmdlineToolsURL string `yaml:"cmdline_tools_url"`

	// SDKPackages are installed in one batched sdkmanager invocation.
	SDKPackages []string `yaml:"sdk_packages"`

	// RecoverableMarkers are substrings that, when found in build stderr,
	// classify the failure as recoverable (release falls back to debug).
	// Matching is case-insensitive.
	RecoverableMarkers []string `yaml:"recoverable_markers"`

	DefaultVariant string `yaml:"default_variant"`
	LogLevel       string `yaml:"log_level"`
}

// Validate checks that required fields are present and coherent.
func (c *Config) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("project_dir is required")
	}
	if c.FlutterDir == "" {
		return fmt.Errorf("flutter_dir is required")
	}
	if c.AndroidSDKDir == "" {
		return fmt.Errorf("android_sdk_dir is required")
	}
	switch c.DefaultVariant {
	case "debug", "release":
	default:
		return fmt.Errorf("default_variant must be %q or %q, got %q", "debug", "release", c.DefaultVariant)
	}
	return nil
}

// FlutterBin returns the path to the flutter executable.
func (c *Config) FlutterBin() string {
	return filepath.Join(c.FlutterDir, "bin", "flutter")
}

// SDKManagerBin returns the path to the sdkmanager executable.
func (c *Config) SDKManagerBin() string {
	return filepath.Join(c.AndroidSDKDir, "cmdline-tools", "latest", "bin", "sdkmanager")
}

// ADBBin returns the path to the adb executable.
func (c *Config) ADBBin() string {
	return filepath.Join(c.AndroidSDKDir, "platform-tools", "adb")
}

// ArtifactPath returns the expected APK location for a build variant.
func (c *Config) ArtifactPath(variant string) string {
	return filepath.Join(c.ProjectDir, "build", "app", "outputs", "flutter-apk",
		fmt.Sprintf("app-%s.apk", variant))
}

// Load resolves config from defaults → user → project.
func Load() (*Config, error) {
	cfg := defaults()

	// user-level config
	home, err := os.UserHomeDir()
	if err == nil {
		userPath := filepath.Join(home, ".fsbuild", "config.yaml")
		if err := mergeFile(cfg, userPath); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("loading user config: %w", err)
		}
	}

	// project-level config (highest priority)
	projectPath := filepath.Join(".fsbuild", "config.yaml")
	if err := mergeFile(cfg, projectPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, dst)
}

func defaults() *Config {
	return &Config{
		ProjectDir:      "/workspaces/FinSight-Automated-Expense-Recognition",
		FlutterDir:      "/tmp/flutter",
		AndroidSDKDir:   "/tmp/android-sdk",
		JavaHome:        "/usr/lib/jvm/java-17-openjdk-amd64",
		CmdlineToolsURL: "https://dl.google.com/android/repository/commandlinetools-linux-11076708_latest.zip",
		SDKPackages: []string{
			"platform-tools",
			"platforms;android-34",
			"build-tools;34.0.0",
		},
		RecoverableMarkers: []string{"R8", "minify"},
		DefaultVariant:     "debug",
		LogLevel:           "info",
	}
}
