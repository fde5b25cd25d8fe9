package cli

import (
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:          "install [apk-path]",
	Short:        "Install an APK on a connected device",
	Long:         "Installs the given APK with adb install -r. Without an argument, installs the default variant's APK from the project's output tree.",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController()
		if err != nil {
			return err
		}

		apkPath := ctl.Cfg.ArtifactPath(string(resolveVariant(ctl.Cfg, false)))
		if len(args) == 1 {
			apkPath = args[0]
		}
		return ctl.InstallArtifact(cmd.Context(), apkPath)
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
