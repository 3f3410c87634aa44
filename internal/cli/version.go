// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arc-language/barrel/pkg/platform"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the barrel version and the location and version of brew.`,
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	plat := platform.Detect()
	fmt.Printf("barrel version %s\n", appVersion)
	fmt.Printf("Platform: %s\n", plat)

	status, err := manager.CheckTool(cmd.Context())
	if !status.Found {
		pterm.Warning.Printfln("brew not found in %v", config.BrewPaths)
		if path, ok := plat.Unlisted(config.BrewPaths); ok {
			pterm.Info.Printfln("brew is on PATH at %s; add it to brew_paths or set BARREL_BREW_PATH", path)
		} else if !plat.Supported {
			pterm.Info.Printfln("Homebrew does not run on %s", plat.OS)
		}
		return nil
	}
	if err != nil {
		pterm.Warning.Printfln("brew at %s did not report a version: %v", status.Path, err)
		return nil
	}

	fmt.Printf("brew %s (%s)\n", status.Version, status.Path)
	return nil
}
