// internal/cli/install.go
package cli

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arc-language/barrel/pkg/core"
)

var (
	installCask     bool
	installProgress bool
)

var installCmd = &cobra.Command{
	Use:   "install [package...]",
	Short: "Install one or more packages",
	Long: `Install formulae or casks with brew and refresh the local inventory.

Examples:
  barrel install wget
  barrel install --cask firefox
  barrel install --progress jq gawk`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInstall,
}

func init() {
	installCmd.Flags().BoolVar(&installCask, "cask", false, "install casks instead of formulae")
	installCmd.Flags().BoolVar(&installProgress, "progress", false, "show an install progress bar")
}

func runInstall(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	kind := kindFlag(installCask)

	failed := 0
	for _, pkg := range args {
		installed, err := manager.IsInstalled(ctx, pkg, kind)
		if err != nil {
			return err
		}
		if installed {
			pterm.Info.Printfln("%s is already installed", pkg)
			continue
		}

		if installProgress {
			err = installWithBar(ctx, pkg, kind)
		} else {
			pterm.Info.Printfln("Installing %s...", pkg)
			err = manager.Install(ctx, pkg, kind)
		}
		if err != nil {
			pterm.Error.Printfln("Failed to install %s: %v", pkg, err)
			failed++
			continue
		}

		pterm.Success.Printfln("Successfully installed %s", pkg)
	}

	if installProgress {
		if err := manager.Refresh(ctx); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed to install", failed, len(args))
	}
	return nil
}

// installWithBar drives a progress bar from brew's install phases. Phase
// fractions are hints, so the bar only moves forward.
func installWithBar(ctx context.Context, pkg string, kind core.Kind) error {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(100).
		WithTitle("Installing " + pkg).
		Start()
	if err != nil {
		return err
	}

	shown := 0
	err = manager.InstallWithProgress(ctx, pkg, kind, func(fraction float64) {
		percent := int(fraction * 100)
		if percent > shown {
			bar.Add(percent - shown)
			shown = percent
		}
	})

	_, _ = bar.Stop()
	return err
}
