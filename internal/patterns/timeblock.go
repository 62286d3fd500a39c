package patterns

import (
	"regexp"
	"strings"
)

// TimeBlockSeparator splits a time-block marker into time label and name.
const TimeBlockSeparator = " " + EmDash + " "

// TimeBlock is the parsed content of a bold-only time-block paragraph.
type TimeBlock struct {
	Time string
	Name string
}

// ParseTimeBlock splits text at the first separator. Text without the
// separator is not a time block.
func ParseTimeBlock(text string) (TimeBlock, bool) {
	idx := strings.Index(text, TimeBlockSeparator)
	if idx < 0 {
		return TimeBlock{}, false
	}
	return TimeBlock{
		Time: text[:idx],
		Name: text[idx+len(TimeBlockSeparator):],
	}, true
}

// SubgroupMatcher splits a trailing traveler annotation out of an activity
// name. Only parentheticals that mention one of the marker tokens count.
type SubgroupMatcher struct {
	re *regexp.Regexp
}

// NewSubgroupMatcher compiles a matcher for the given marker tokens. With no
// markers nothing is ever recognized.
func NewSubgroupMatcher(markers []string) *SubgroupMatcher {
	quoted := make([]string, 0, len(markers))
	for _, marker := range markers {
		if marker = strings.TrimSpace(marker); marker != "" {
			quoted = append(quoted, regexp.QuoteMeta(marker))
		}
	}
	if len(quoted) == 0 {
		return &SubgroupMatcher{}
	}
	pattern := `\s*\(([^)]*(?:` + strings.Join(quoted, "|") + `)[^)]*)\)\s*$`
	return &SubgroupMatcher{re: regexp.MustCompile(pattern)}
}

// Extract returns the cleaned name and the subgroup label, which is empty
// when no annotation was recognized.
func (m *SubgroupMatcher) Extract(name string) (string, string) {
	if m == nil || m.re == nil {
		return name, ""
	}
	match := m.re.FindStringSubmatch(name)
	if match == nil {
		return name, ""
	}
	return strings.TrimSpace(strings.Replace(name, match[0], "", 1)), match[1]
}
