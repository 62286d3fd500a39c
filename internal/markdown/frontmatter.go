package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the per-document convention overrides a trip document
// may declare in a leading YAML block.
type FrontMatter struct {
	Year            any               `yaml:"year"`
	DefaultSegment  string            `yaml:"default_segment"`
	SubgroupMarkers []string          `yaml:"subgroup_markers"`
	BaseSegments    map[string]string `yaml:"base_segments"`
	Custom          map[string]any    `yaml:",inline"`
}

// YearString renders the year value whether it was written as a number or
// a string.
func (f FrontMatter) YearString() string {
	if f.Year == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(f.Year))
}

// ParseFrontMatter splits source into its frontmatter and markdown body. A
// document without frontmatter returns a zero FrontMatter and the source
// unchanged.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}
