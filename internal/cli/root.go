package cli

import (
	"fmt"

	"github.com/arjun-christopher/fsbuild/pkg/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fsbuild",
	Short: "FinSight app toolchain provisioner and build pipeline",
	Long: `fsbuild provisions the Flutter and Android toolchain on a fresh machine,
then builds, installs and runs the FinSight app through a fail-fast pipeline.

Invoked without a subcommand it opens the interactive menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

var verbose bool

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fsbuild %s\n", version.Version)
	},
}
