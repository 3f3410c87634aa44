// internal/cli/actions.go
package cli

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arc-language/barrel/pkg/core"
)

var (
	uninstallCask bool
	upgradeCask   bool
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall [package...]",
	Short: "Uninstall one or more packages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd.Context(), "uninstall", manager.Uninstall, kindFlag(uninstallCask), args)
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [package...]",
	Short: "Upgrade one or more packages",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAction(cmd.Context(), "upgrade", manager.Upgrade, kindFlag(upgradeCask), args)
	},
}

func init() {
	uninstallCmd.Flags().BoolVar(&uninstallCask, "cask", false, "uninstall casks instead of formulae")
	upgradeCmd.Flags().BoolVar(&upgradeCask, "cask", false, "upgrade casks instead of formulae")
}

type actionFunc func(ctx context.Context, name string, kind core.Kind) error

func runAction(ctx context.Context, verb string, action actionFunc, kind core.Kind, args []string) error {
	failed := 0
	for _, pkg := range args {
		pterm.Info.Printfln("Running %s %s...", verb, pkg)
		if err := action(ctx, pkg, kind); err != nil {
			pterm.Error.Printfln("Failed to %s %s: %v", verb, pkg, err)
			failed++
			continue
		}
		pterm.Success.Printfln("%s %s done", verb, pkg)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d packages failed to %s", failed, len(args), verb)
	}
	return nil
}
