package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var devicesCmd = &cobra.Command{
	Use:          "devices",
	Short:        "List connected devices",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctl, err := newController()
		if err != nil {
			return err
		}

		devices, err := ctl.ListDevices(cmd.Context())
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No devices connected.")
			return nil
		}
		for _, d := range devices {
			fmt.Printf("%-24s %s\n", d.ID, d.Description)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}
