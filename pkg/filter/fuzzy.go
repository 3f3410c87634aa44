// pkg/filter/fuzzy.go
package filter

import (
	"github.com/sahilm/fuzzy"

	"github.com/arc-language/barrel/pkg/brew"
	"github.com/arc-language/barrel/pkg/core"
)

// Ranked is a catalog entry scored against a fuzzy pattern
type Ranked struct {
	Name        string
	Kind        core.Kind
	Description string
	Version     string
	Score       int
	// MatchedIndexes are the byte offsets of Name that matched the pattern
	MatchedIndexes []int
}

// catalogSource exposes formula names followed by cask tokens
type catalogSource struct {
	catalog *brew.Catalog
}

func (s catalogSource) String(i int) string {
	if i < len(s.catalog.Formulae) {
		return s.catalog.Formulae[i].Name
	}
	return s.catalog.Casks[i-len(s.catalog.Formulae)].Token
}

func (s catalogSource) Len() int {
	return len(s.catalog.Formulae) + len(s.catalog.Casks)
}

// Rank fuzzy-matches pattern against every formula name and cask token,
// best score first. limit <= 0 returns every match.
func Rank(catalog *brew.Catalog, pattern string, limit int) []Ranked {
	if catalog == nil || pattern == "" {
		return nil
	}

	src := catalogSource{catalog: catalog}
	matches := fuzzy.FindFrom(pattern, src)

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	ranked := make([]Ranked, 0, len(matches))
	for _, m := range matches {
		r := Ranked{
			Name:           m.Str,
			Score:          m.Score,
			MatchedIndexes: m.MatchedIndexes,
		}
		if m.Index < len(catalog.Formulae) {
			formula := catalog.Formulae[m.Index]
			r.Kind = core.KindFormula
			r.Description = formula.Description
			r.Version = formula.Versions.Stable
		} else {
			cask := catalog.Casks[m.Index-len(catalog.Formulae)]
			r.Kind = core.KindCask
			r.Description = cask.Description
			r.Version = cask.Version
		}
		ranked = append(ranked, r)
	}
	return ranked
}
