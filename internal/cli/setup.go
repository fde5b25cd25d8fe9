package cli

import (
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:          "setup",
	Short:        "Provision the Flutter and Android toolchain",
	Long:         "Idempotently installs and verifies Java, the Flutter SDK, the Android SDK command-line tools and the required SDK packages, then configures Flutter and fetches project dependencies.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController()
		if err != nil {
			return err
		}
		ctl.Banner()
		return ctl.RunSetup(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
