// internal/cli/list.go
package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var listCached bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed packages",
	Long:  `Refresh the local inventory and list every installed formula and cask.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listCached, "cached", false, "show the stored inventory without running brew")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !listCached {
		if err := manager.Refresh(ctx); err != nil {
			return err
		}
	}

	pkgs, err := manager.Installed(ctx)
	if err != nil {
		return err
	}

	if len(pkgs) == 0 {
		pterm.Info.Println("No packages installed")
		return nil
	}

	data := pterm.TableData{{"Name", "Version", "Kind"}}
	for _, p := range pkgs {
		data = append(data, []string{p.Name, p.Version, string(p.Kind)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
