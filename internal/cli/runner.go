package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/arjun-christopher/fsbuild/internal/config"
	vlog "github.com/arjun-christopher/fsbuild/internal/log"
	"github.com/arjun-christopher/fsbuild/internal/workflow"
)

// newController is the shared entry point for all commands: it loads and
// validates configuration, initializes logging, and wires the workflow
// controller.
func newController() (*workflow.Controller, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	vlog.Init(effectiveLogLevel(cfg), openLogFile())

	return workflow.New(cfg), nil
}

// openLogFile returns the file sink for logging, or an untyped nil when it
// cannot be opened (log.Init treats a non-nil writer as a live sink).
func openLogFile() io.Writer {
	dir := ".fsbuild"
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(dir+"/fsbuild.log", os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil
	}
	return f
}

// effectiveLogLevel applies the --verbose override to the configured level.
func effectiveLogLevel(cfg *config.Config) string {
	if verbose {
		return "debug"
	}
	return cfg.LogLevel
}
