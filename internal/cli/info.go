// internal/cli/info.go
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [package]",
	Short: "Show information about a package",
	Long:  `Display catalog details for a formula or cask and whether it is installed.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	name := args[0]

	if _, err := manager.FetchCatalogs(ctx); err != nil {
		return err
	}

	entry, err := manager.Lookup(name)
	if err != nil {
		return err
	}

	installed, err := manager.IsInstalled(ctx, entry.Name, entry.Kind)
	if err != nil {
		return err
	}

	// Display info
	fmt.Printf("Package: %s\n", entry.Name)
	fmt.Printf("Kind: %s\n", entry.Kind)
	fmt.Printf("Version: %s\n", entry.Version)
	fmt.Printf("Installed: %t\n", installed)
	if entry.Description != "" {
		fmt.Printf("Description: %s\n", entry.Description)
	}
	if entry.Homepage != "" {
		fmt.Printf("Homepage: %s\n", entry.Homepage)
	}
	if entry.URL != "" {
		fmt.Printf("URL: %s\n", entry.URL)
	}
	if len(entry.Dependencies) > 0 {
		fmt.Printf("Dependencies: %s\n", strings.Join(entry.Dependencies, ", "))
	}

	return nil
}
