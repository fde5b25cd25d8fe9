package cli

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check fsbuild prerequisites and configuration",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	allOK := true

	check := func(label string, ok bool, hint string) {
		if ok {
			fmt.Printf("✅ %s\n", label)
		} else {
			fmt.Printf("❌ %s — %s\n", label, hint)
			allOK = false
		}
	}

	// system tools needed by the provisioning steps
	for _, tool := range []struct{ name, hint string }{
		{"git", "install git (used to clone the Flutter SDK)"},
		{"wget", "install wget (used to download the Android SDK)"},
		{"unzip", "install unzip (used to extract the Android SDK)"},
	} {
		_, err := exec.LookPath(tool.name)
		check(tool.name+" installed", err == nil, tool.hint)
	}

	// config
	cfg, cfgErr := config.Load()
	check("config loadable", cfgErr == nil, fmt.Sprintf("fix config: %v", cfgErr))
	if cfgErr == nil {
		validateErr := cfg.Validate()
		check("config valid", validateErr == nil, fmt.Sprintf("%v", validateErr))

		_, err := os.Stat(cfg.ProjectDir)
		check("project directory exists", err == nil, fmt.Sprintf("check project_dir: %s", cfg.ProjectDir))

		// provisioned toolchain (informational — setup installs these)
		_, err = os.Stat(cfg.FlutterBin())
		check("Flutter SDK provisioned", err == nil, "run `fsbuild setup`")
		_, err = os.Stat(cfg.SDKManagerBin())
		check("Android SDK tools provisioned", err == nil, "run `fsbuild setup`")
		_, err = os.Stat(cfg.ADBBin())
		check("adb provisioned", err == nil, "run `fsbuild setup`")
	}

	fmt.Println()
	if allOK {
		fmt.Println("All checks passed. fsbuild is ready.")
	} else {
		fmt.Println("Some checks failed. Fix the issues above before running fsbuild.")
	}
	return nil
}
