package gazetteer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-tripdata/internal/patterns"
)

var (
	parenContent   = regexp.MustCompile(`\(([^)]+)\)`)
	parenGroup     = regexp.MustCompile(`\s*\([^)]*\)`)
	genericSuffix  = regexp.MustCompile(`\s+(?:state park|state reserve|national monument|national park|winery|estate|lodge.*|& spa.*)$`)
	trailSuffix    = regexp.MustCompile(`(?i)\s+(?:trail|loop|walk)$`)
	wordSeparators = regexp.MustCompile(`\s+`)
)

const (
	minSuffixAlias = 4
	minTrailAlias  = 5
	minTail2Alias  = 5
	minTail3Alias  = 8
	minTailWords   = 4
)

// BuildAliases derives the normalized aliases a location name is recognized
// by, in derivation order and without duplicates.
func BuildAliases(name string) []string {
	lower := patterns.Normalize(name)
	aliases := []string{lower}

	if match := parenContent.FindStringSubmatch(name); match != nil {
		aliases = append(aliases, patterns.Normalize(match[1]))
	}

	noParen := lower
	if loc := parenGroup.FindStringIndex(lower); loc != nil {
		noParen = strings.TrimSpace(lower[:loc[0]] + lower[loc[1]:])
	}
	if noParen != lower {
		aliases = append(aliases, noParen)
	}

	noSuffix := strings.TrimSpace(genericSuffix.ReplaceAllString(noParen, ""))
	if noSuffix != noParen && runeLen(noSuffix) >= minSuffixAlias {
		aliases = append(aliases, noSuffix)
	}

	noTrail := strings.TrimSpace(trailSuffix.ReplaceAllString(noParen, ""))
	if noTrail != noParen && runeLen(noTrail) >= minTrailAlias {
		aliases = append(aliases, noTrail)
	}

	words := wordSeparators.Split(noParen, -1)
	if len(words) >= minTailWords {
		tail2 := strings.Join(words[len(words)-2:], " ")
		if runeLen(tail2) >= minTail2Alias {
			aliases = append(aliases, tail2)
		}
		tail3 := strings.Join(words[len(words)-3:], " ")
		if runeLen(tail3) >= minTail3Alias && tail3 != noParen {
			aliases = append(aliases, tail3)
		}
	}

	return dedupe(aliases)
}

func runeLen(value string) int {
	return utf8.RuneCountInString(value)
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := values[:0]
	for _, value := range values {
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
