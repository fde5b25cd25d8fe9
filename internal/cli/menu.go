package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/arjun-christopher/fsbuild/internal/workflow"
)

// menuChoices maps menu input onto named workflows. The core only sees
// workflow names; all interactive input stays in this layer.
var menuChoices = map[string]string{
	"1": workflow.WorkflowRun,
	"2": workflow.WorkflowBuildDebug,
	"3": workflow.WorkflowBuildRelease,
	"4": workflow.WorkflowBuildInstall,
	"5": workflow.WorkflowSetup,
	"6": workflow.WorkflowCleanRebuild,
}

// runMenu drives the interactive menu loop until the user exits.
func runMenu(ctx context.Context) error {
	ctl, err := newController()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		ctl.Banner()
		printMenu()

		fmt.Print("Enter choice (1-6, 0 to exit): ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}
		choice := strings.TrimSpace(line)

		if choice == "0" {
			fmt.Println("Exiting...")
			return nil
		}

		name, ok := menuChoices[choice]
		if !ok {
			fmt.Println("Invalid choice")
			continue
		}

		if err := ctl.Dispatch(ctx, name); err != nil {
			fmt.Printf("✗ %v\n", err)
		}

		fmt.Print("\nPress Enter to continue...")
		if _, err := reader.ReadString('\n'); err != nil {
			fmt.Println()
			return nil
		}
	}
}

func printMenu() {
	fmt.Println("Select an action:")
	fmt.Println()
	fmt.Println("  1. Run app on connected device (debug mode)")
	fmt.Println("  2. Build debug APK")
	fmt.Println("  3. Build release APK")
	fmt.Println("  4. Build and install debug APK")
	fmt.Println("  5. Run initial setup/verify installation")
	fmt.Println("  6. Clean build and rebuild debug APK")
	fmt.Println("  0. Exit")
	fmt.Println()
}
