package cli

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:          "run",
	Short:        "Run the app on a connected device",
	Long:         "Launches the app in foreground mode so logs stream live. Requires at least one connected device. Ctrl+C stops the app without being treated as a failure.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController()
		if err != nil {
			return err
		}
		return ctl.RunOnDevice(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
