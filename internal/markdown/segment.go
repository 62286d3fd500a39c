package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
)

// Section is a heading and the nodes that follow it up to the next heading
// of the same level.
type Section struct {
	Heading  string
	Level    int
	Node     ast.Node
	Children []ast.Node
}

// SplitByHeading groups nodes into sections opened by headings of the given
// level. Nodes before the first such heading belong to no section and are
// dropped. Headings of other levels stay in the children.
func (t *Tree) SplitByHeading(nodes []ast.Node, level int) []Section {
	var sections []Section
	current := -1
	for _, node := range nodes {
		if IsHeading(node, level) {
			sections = append(sections, Section{
				Heading: t.Text(node),
				Level:   level,
				Node:    node,
			})
			current = len(sections) - 1
			continue
		}
		if current >= 0 {
			sections[current].Children = append(sections[current].Children, node)
		}
	}
	return sections
}

// TopLevel returns the nodes under the first level-1 heading whose text
// contains label, case-insensitively, up to the next level-1 heading. The
// boolean reports whether such a heading exists; when it does not the
// returned slice is empty.
func (t *Tree) TopLevel(label string) ([]ast.Node, bool) {
	index := t.findHeading(t.Blocks, 1, label)
	if index < 0 {
		return nil, false
	}
	return collectUntilHeading(t.Blocks, index, 1), true
}

// SubSection returns the nodes after the first heading of the given level in
// nodes whose text contains label, stopping at the next heading of that
// level.
func (t *Tree) SubSection(nodes []ast.Node, level int, label string) ([]ast.Node, bool) {
	index := t.findHeading(nodes, level, label)
	if index < 0 {
		return nil, false
	}
	return collectUntilHeading(nodes, index, level), true
}

// FirstHeading returns the first block-level heading of the given level.
func (t *Tree) FirstHeading(level int) (ast.Node, bool) {
	for _, node := range t.Blocks {
		if IsHeading(node, level) {
			return node, true
		}
	}
	return nil, false
}

func (t *Tree) findHeading(nodes []ast.Node, level int, label string) int {
	needle := strings.ToLower(label)
	for i, node := range nodes {
		if !IsHeading(node, level) {
			continue
		}
		if strings.Contains(strings.ToLower(t.Text(node)), needle) {
			return i
		}
	}
	return -1
}

func collectUntilHeading(nodes []ast.Node, start, level int) []ast.Node {
	var out []ast.Node
	for _, node := range nodes[start+1:] {
		if IsHeading(node, level) {
			break
		}
		out = append(out, node)
	}
	return out
}
