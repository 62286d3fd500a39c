package patterns

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-tripdata/internal/domain"
)

// TravelMatcher recognizes `Travel (<mode>): <duration> — <from> → <to>`.
type TravelMatcher struct {
	re *regexp.Regexp
}

// NewTravelMatcher compiles a matcher accepting only the listed modes.
func NewTravelMatcher(modes []string) *TravelMatcher {
	quoted := make([]string, 0, len(modes))
	for _, mode := range modes {
		if mode = strings.TrimSpace(mode); mode != "" {
			quoted = append(quoted, regexp.QuoteMeta(mode))
		}
	}
	if len(quoted) == 0 {
		return &TravelMatcher{}
	}
	pattern := `^Travel \((` + strings.Join(quoted, "|") + `)\):\s*(.+?)\s*` + EmDash + `\s*(.+?)\s*→\s*(.+)$`
	return &TravelMatcher{re: regexp.MustCompile(pattern)}
}

// Match parses a travel line.
func (m *TravelMatcher) Match(text string) (domain.TravelLeg, bool) {
	if m == nil || m.re == nil {
		return domain.TravelLeg{}, false
	}
	match := m.re.FindStringSubmatch(text)
	if match == nil {
		return domain.TravelLeg{}, false
	}
	return domain.TravelLeg{
		Mode:     match[1],
		Duration: match[2],
		From:     match[3],
		To:       match[4],
	}, true
}
