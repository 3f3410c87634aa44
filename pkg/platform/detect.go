// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
)

// Platform represents the detected system platform
type Platform struct {
	OS        string // linux, darwin, windows
	Arch      string // amd64, arm64
	Supported bool   // Homebrew runs here
	Prefix    string // Conventional Homebrew prefix, empty when unsupported
	OnPath    string // brew found on PATH, if any
}

// Detect detects the current platform and where Homebrew normally lives
func Detect() *Platform {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(goos, goarch string) *Platform {
	p := &Platform{
		OS:     goos,
		Arch:   goarch,
		OnPath: commandPath("brew"),
	}

	switch goos {
	case "darwin":
		p.Supported = true
		if goarch == "arm64" {
			p.Prefix = "/opt/homebrew"
		} else {
			p.Prefix = "/usr/local"
		}
	case "linux":
		p.Supported = true
		p.Prefix = "/home/linuxbrew/.linuxbrew"
	}

	return p
}

// ExpectedBrew returns the brew path under the conventional prefix
func (p *Platform) ExpectedBrew() string {
	if p.Prefix == "" {
		return ""
	}
	return p.Prefix + "/bin/brew"
}

// Unlisted reports a brew on PATH that is missing from candidates
func (p *Platform) Unlisted(candidates []string) (string, bool) {
	if p.OnPath == "" || contains(candidates, p.OnPath) {
		return "", false
	}
	return p.OnPath, true
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	if !p.Supported {
		return fmt.Sprintf("%s/%s (Homebrew unsupported)", p.OS, p.Arch)
	}
	return fmt.Sprintf("%s/%s (prefix: %s)", p.OS, p.Arch, p.Prefix)
}
