// pkg/brew/types.go
package brew

import "time"

// Formula is one record of the remote formula catalog
type Formula struct {
	Name         string          `json:"name"`
	FullName     string          `json:"full_name"`
	Description  string          `json:"desc"`
	Homepage     string          `json:"homepage"`
	License      string          `json:"license"`
	Versions     FormulaVersions `json:"versions"`
	Dependencies []string        `json:"dependencies"`
}

// FormulaVersions contains version information
type FormulaVersions struct {
	Stable string `json:"stable"`
	Head   string `json:"head"`
	Bottle bool   `json:"bottle"`
}

// Cask is one record of the remote cask catalog
type Cask struct {
	Token       string   `json:"token"`
	Names       []string `json:"name"`
	Description string   `json:"desc"`
	Homepage    string   `json:"homepage"`
	Version     string   `json:"version"`
	URL         string   `json:"url"`
}

// Catalog is one complete, immutable fetch of both remote catalogs
type Catalog struct {
	Formulae  []Formula
	Casks     []Cask
	FetchedAt time.Time
}

// FindFormula returns the formula named name
func (c *Catalog) FindFormula(name string) (Formula, bool) {
	if c == nil {
		return Formula{}, false
	}
	for _, f := range c.Formulae {
		if f.Name == name || f.FullName == name {
			return f, true
		}
	}
	return Formula{}, false
}

// FindCask returns the cask whose token is token
func (c *Catalog) FindCask(token string) (Cask, bool) {
	if c == nil {
		return Cask{}, false
	}
	for _, k := range c.Casks {
		if k.Token == token {
			return k, true
		}
	}
	return Cask{}, false
}
