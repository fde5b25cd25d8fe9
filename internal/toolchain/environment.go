package toolchain

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arjun-christopher/fsbuild/internal/config"
)

// Environment is the child-process environment used for every toolchain
// invocation in one workflow. It is built once from the ambient environment
// plus the SDK/runtime paths and is read-only afterwards.
type Environment struct {
	vars []string
}

// NewEnvironment overlays the ambient process environment with ANDROID_HOME,
// JAVA_HOME and a PATH prefix covering the Flutter and SDK tool directories.
func NewEnvironment(cfg *config.Config) *Environment {
	pathPrefix := strings.Join([]string{
		filepath.Join(cfg.FlutterDir, "bin"),
		filepath.Join(cfg.AndroidSDKDir, "cmdline-tools", "latest", "bin"),
		filepath.Join(cfg.AndroidSDKDir, "platform-tools"),
		filepath.Join(cfg.AndroidSDKDir, "emulator"),
	}, string(os.PathListSeparator))

	overrides := map[string]string{
		"ANDROID_HOME": cfg.AndroidSDKDir,
		"JAVA_HOME":    cfg.JavaHome,
		"PATH":         pathPrefix + string(os.PathListSeparator) + os.Getenv("PATH"),
	}

	var vars []string
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		vars = append(vars, kv)
	}
	for k, v := range overrides {
		vars = append(vars, fmt.Sprintf("%s=%s", k, v))
	}

	return &Environment{vars: vars}
}

// Environ returns the environment in os/exec form.
func (e *Environment) Environ() []string {
	out := make([]string, len(e.vars))
	copy(out, e.vars)
	return out
}
