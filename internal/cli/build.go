package cli

import (
	"fmt"

	"github.com/arjun-christopher/fsbuild/internal/build"
	"github.com/arjun-christopher/fsbuild/internal/config"
	"github.com/spf13/cobra"
)

var (
	buildRelease bool
	buildClean   bool
	buildInstall bool
)

var buildCmd = &cobra.Command{
	Use:          "build",
	Short:        "Build the APK",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController()
		if err != nil {
			return err
		}

		variant := resolveVariant(ctl.Cfg, buildRelease)

		res := ctl.BuildArtifact(cmd.Context(), variant, buildClean)
		if !res.Succeeded {
			if res.Stderr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "\nError details:\n%s\n", truncate(res.Stderr, 500))
			}
			return fmt.Errorf("build failed")
		}

		if buildInstall {
			return ctl.InstallArtifact(cmd.Context(), res.ArtifactPath)
		}
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildRelease, "release", false, "Build release APK (default: debug)")
	buildCmd.Flags().BoolVar(&buildClean, "clean", false, "Clean previous build artifacts first")
	buildCmd.Flags().BoolVar(&buildInstall, "install", false, "Install the APK on a connected device after building")
	rootCmd.AddCommand(buildCmd)
}

// resolveVariant picks the build variant: the --release flag wins, otherwise
// the configured default applies.
func resolveVariant(cfg *config.Config, releaseFlag bool) build.Variant {
	if releaseFlag {
		return build.Release
	}
	if cfg.DefaultVariant == string(build.Release) {
		return build.Release
	}
	return build.Debug
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
