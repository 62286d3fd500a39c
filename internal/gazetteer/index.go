package gazetteer

import (
	"regexp"
	"slices"
	"strings"

	"github.com/goliatone/go-tripdata/internal/domain"
	"github.com/goliatone/go-tripdata/internal/patterns"
)

// shortAlias is the length below which an alias must match a whole word.
const shortAlias = 4

// Alias pairs a normalized alias with the location it identifies.
type Alias struct {
	Text       string
	LocationID string

	wordRE *regexp.Regexp
}

// Index is the alias table of one gazetteer snapshot, sorted longest alias
// first, plus the official URL lookup.
type Index struct {
	aliases []Alias
	urls    map[string]string
}

// NewIndex builds the alias table for locations.
func NewIndex(locations []domain.Location) *Index {
	index := &Index{urls: map[string]string{}}
	for _, location := range locations {
		for _, text := range BuildAliases(location.Name) {
			if text == "" {
				continue
			}
			alias := Alias{Text: text, LocationID: location.ID}
			if runeLen(text) < shortAlias {
				alias.wordRE = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(text) + `\b`)
			}
			index.aliases = append(index.aliases, alias)
		}
		for _, url := range location.OfficialURL {
			if _, taken := index.urls[url]; !taken {
				index.urls[url] = location.ID
			}
		}
	}

	slices.SortStableFunc(index.aliases, func(a, b Alias) int {
		return runeLen(b.Text) - runeLen(a.Text)
	})
	return index
}

// Aliases returns a copy of the sorted alias table.
func (i *Index) Aliases() []Alias {
	return slices.Clone(i.aliases)
}

// Len reports the number of aliases.
func (i *Index) Len() int {
	return len(i.aliases)
}

// MatchText returns the ids of every location with an alias in text, in
// alias table order and without duplicates. Short aliases match whole words
// of the raw text; longer ones match substrings of the normalized text.
func (i *Index) MatchText(text string) []string {
	if i == nil || text == "" {
		return nil
	}
	normalized := patterns.Normalize(text)

	var ids []string
	seen := map[string]struct{}{}
	for _, alias := range i.aliases {
		var hit bool
		if alias.wordRE != nil {
			hit = alias.wordRE.MatchString(text)
		} else {
			hit = strings.Contains(normalized, alias.Text)
		}
		if !hit {
			continue
		}
		if _, dup := seen[alias.LocationID]; dup {
			continue
		}
		seen[alias.LocationID] = struct{}{}
		ids = append(ids, alias.LocationID)
	}
	return ids
}

// MatchURL returns the location whose official URLs contain url exactly.
// When several do, the first in gazetteer order wins.
func (i *Index) MatchURL(url string) (string, bool) {
	if i == nil {
		return "", false
	}
	id, ok := i.urls[url]
	return id, ok
}
