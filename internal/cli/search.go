// internal/cli/search.go
package cli

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arc-language/barrel/pkg/core"
)

var (
	searchFuzzy bool
	searchLimit int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the formula and cask catalogs",
	Long: `Download the Homebrew catalogs and list entries whose name contains the
query, ignoring case. With --fuzzy, entries are ranked by fuzzy match score.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "rank results by fuzzy match")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 25, "maximum results per kind (0 for all)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	query := ""
	if len(args) == 1 {
		query = args[0]
	}

	spinner, _ := pterm.DefaultSpinner.Start("Fetching catalogs")
	_, err := manager.FetchCatalogs(ctx)
	if spinner != nil {
		_ = spinner.Stop()
	}
	if err != nil {
		return err
	}

	installed, err := installedSet(cmd)
	if err != nil {
		return err
	}

	if searchFuzzy {
		if query == "" {
			return fmt.Errorf("--fuzzy needs a query")
		}
		return renderRanked(query, installed)
	}

	manager.Search(query)
	if err := manager.WaitSearch(ctx); err != nil {
		return err
	}
	view := manager.SearchResults()

	if len(view.Formulae) == 0 && len(view.Casks) == 0 {
		pterm.Info.Printfln("No packages match %q", query)
		return nil
	}

	if len(view.Formulae) > 0 {
		pterm.DefaultSection.Printfln("Formulae (%d)", len(view.Formulae))
		data := pterm.TableData{{"Name", "Version", "Installed", "Description"}}
		for i, f := range view.Formulae {
			if searchLimit > 0 && i == searchLimit {
				break
			}
			data = append(data, []string{f.Name, f.Versions.Stable, mark(installed, f.Name, core.KindFormula), truncate(f.Description)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	if len(view.Casks) > 0 {
		pterm.DefaultSection.Printfln("Casks (%d)", len(view.Casks))
		data := pterm.TableData{{"Token", "Version", "Installed", "Description"}}
		for i, c := range view.Casks {
			if searchLimit > 0 && i == searchLimit {
				break
			}
			data = append(data, []string{c.Token, c.Version, mark(installed, c.Token, core.KindCask), truncate(c.Description)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	return nil
}

func renderRanked(query string, installed map[string]bool) error {
	ranked := manager.FuzzySearch(query, searchLimit)
	if len(ranked) == 0 {
		pterm.Info.Printfln("No packages match %q", query)
		return nil
	}

	data := pterm.TableData{{"Name", "Kind", "Version", "Score", "Installed", "Description"}}
	for _, r := range ranked {
		data = append(data, []string{
			r.Name,
			string(r.Kind),
			r.Version,
			strconv.Itoa(r.Score),
			mark(installed, r.Name, r.Kind),
			truncate(r.Description),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// installedSet indexes the stored inventory by kind/name
func installedSet(cmd *cobra.Command) (map[string]bool, error) {
	pkgs, err := manager.Installed(cmd.Context())
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool, len(pkgs))
	for _, p := range pkgs {
		set[p.Key()] = true
	}
	return set, nil
}

func mark(installed map[string]bool, name string, kind core.Kind) string {
	key := core.InstalledPackage{Name: name, Kind: kind}.Key()
	if installed[key] {
		return "yes"
	}
	return ""
}

func truncate(s string) string {
	const width = 60
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
