// internal/cli/refresh.go
package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Rebuild the local inventory",
	Long:  `Run brew list for formulae and casks and replace the local inventory with the result.`,
	Args:  cobra.NoArgs,
	RunE:  runRefresh,
}

func runRefresh(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if err := manager.Refresh(ctx); err != nil {
		return err
	}

	pkgs, err := manager.Installed(ctx)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Inventory refreshed: %d packages", len(pkgs))
	return nil
}
