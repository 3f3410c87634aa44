// pkg/brew/commands.go
package brew

import (
	"context"
	"strings"

	"github.com/arc-language/barrel/pkg/core"
)

// VersionArgs builds `brew --version`
func VersionArgs() []string {
	return []string{"--version"}
}

// ListArgs builds `brew list [--cask] --versions`
func ListArgs(kind core.Kind) []string {
	if kind == core.KindCask {
		return []string{"list", CaskFlag, "--versions"}
	}
	return []string{"list", "--versions"}
}

// InstallArgs builds `brew install [--cask] <name>`
func InstallArgs(name string, kind core.Kind) []string {
	return actionArgs("install", name, kind)
}

// UninstallArgs builds `brew uninstall [--cask] <name>`
func UninstallArgs(name string, kind core.Kind) []string {
	return actionArgs("uninstall", name, kind)
}

// UpgradeArgs builds `brew upgrade [--cask] <name>`
func UpgradeArgs(name string, kind core.Kind) []string {
	return actionArgs("upgrade", name, kind)
}

func actionArgs(verb, name string, kind core.Kind) []string {
	if kind == core.KindCask {
		return []string{verb, CaskFlag, name}
	}
	return []string{verb, name}
}

// ParseVersion extracts the version from `brew --version` output: the last
// whitespace-separated token of the first line
func ParseVersion(output string) string {
	first, _, _ := strings.Cut(output, "\n")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return UnknownVersion
	}
	return fields[len(fields)-1]
}

// ParseList turns `brew list --versions` output into packages of the given
// kind. Lines with fewer than two tokens are skipped; extra version tokens
// after the first are ignored.
func ParseList(output string, kind core.Kind) []core.InstalledPackage {
	var pkgs []core.InstalledPackage
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		pkgs = append(pkgs, core.InstalledPackage{
			Name:    fields[0],
			Version: fields[1],
			Kind:    kind,
		})
	}
	return pkgs
}

// Version runs `brew --version` and parses it
func Version(ctx context.Context, r core.Runner) (string, error) {
	out, err := r.Run(ctx, VersionArgs()...)
	if err != nil {
		return "", err
	}
	return ParseVersion(out), nil
}
