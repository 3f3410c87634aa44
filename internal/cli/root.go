// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arc-language/barrel"
	"github.com/arc-language/barrel/pkg/core"
	"github.com/arc-language/barrel/pkg/logging"
)

const appVersion = "0.1.0"

var (
	cfgFile   string
	debug     bool
	verbosity int
	config    *core.Config
	manager   *barrel.Manager
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "barrel",
	Short: "Homebrew front end with a local inventory",
	Long: `barrel - Homebrew front end

Installs, removes and upgrades formulae and casks through brew, keeps a
local inventory of what is installed, and searches the Homebrew catalogs.`,
	Version:           appVersion,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute executes the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext executes the root command; cancelling ctx stops any brew
// process in flight
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := teardown(); err == nil {
		err = closeErr
	}
	return err
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/barrel/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")

	// Add commands
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(uninstallCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
	if config.Debug && verbosity < 2 {
		verbosity = 2
	}
}

// setup loads config, configures logging and opens the inventory. A store
// that cannot be opened aborts the command.
func setup(cmd *cobra.Command, args []string) error {
	initConfig()
	logging.SetupLogger(verbosity)

	if os.Getenv("NO_COLOR") != "" {
		pterm.DisableColor()
	}

	m, err := barrel.NewManager(barrel.Options{Config: config})
	if err != nil {
		return fmt.Errorf("initializing inventory: %w", err)
	}
	manager = m
	return nil
}

// teardown closes the inventory opened by setup, whether or not the command
// succeeded
func teardown() error {
	if manager == nil {
		return nil
	}
	err := manager.Close()
	manager = nil
	return err
}

// kindFlag reports the package kind selected by --cask
func kindFlag(cask bool) core.Kind {
	if cask {
		return core.KindCask
	}
	return core.KindFormula
}
