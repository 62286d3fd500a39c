package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/util"
)

// Text flattens a node into its plain-text content and trims the result.
// Only textual leaves contribute; markup, link destinations and block
// boundaries add nothing. Line breaks inside a paragraph become "\n".
func (t *Tree) Text(node ast.Node) string {
	if t == nil || node == nil {
		return ""
	}
	var buf bytes.Buffer
	t.flatten(&buf, node)
	return strings.TrimSpace(buf.String())
}

func (t *Tree) flatten(buf *bytes.Buffer, node ast.Node) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(unescape(n.Segment.Value(t.Source)))
		if n.SoftLineBreak() || n.HardLineBreak() {
			buf.WriteByte('\n')
		}
		return
	case *ast.String:
		buf.Write(n.Value)
		return
	case *ast.AutoLink:
		buf.Write(n.Label(t.Source))
		return
	case *ast.RawHTML:
		segments := n.Segments
		for i := 0; i < segments.Len(); i++ {
			segment := segments.At(i)
			buf.Write(segment.Value(t.Source))
		}
		return
	case *ast.CodeSpan:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if leaf, ok := child.(*ast.Text); ok {
				buf.Write(leaf.Segment.Value(t.Source))
				continue
			}
			t.flatten(buf, child)
		}
		return
	}

	if node.Type() == ast.TypeBlock && node.FirstChild() == nil {
		// Leaf blocks such as fenced code keep their content in lines.
		lines := node.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			buf.Write(segment.Value(t.Source))
		}
		return
	}

	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		t.flatten(buf, child)
	}
}

func unescape(value []byte) []byte {
	value = util.UnescapePunctuations(value)
	value = util.ResolveNumericReferences(value)
	return util.ResolveEntityNames(value)
}

// IsStrongOnly reports whether node is a paragraph whose single meaningful
// child is a strong span.
func (t *Tree) IsStrongOnly(node ast.Node) bool {
	return t.onlyEmphasis(node, 2)
}

// IsEmphasisOnly reports whether node is a paragraph whose single meaningful
// child is an emphasis span.
func (t *Tree) IsEmphasisOnly(node ast.Node) bool {
	return t.onlyEmphasis(node, 1)
}

func (t *Tree) onlyEmphasis(node ast.Node, level int) bool {
	if node == nil || node.Kind() != ast.KindParagraph {
		return false
	}
	var meaningful []ast.Node
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		if leaf, ok := child.(*ast.Text); ok {
			if len(bytes.TrimSpace(leaf.Segment.Value(t.Source))) == 0 {
				continue
			}
		}
		meaningful = append(meaningful, child)
	}
	if len(meaningful) != 1 {
		return false
	}
	emphasis, ok := meaningful[0].(*ast.Emphasis)
	return ok && emphasis.Level == level
}

// IsHeading reports whether node is a heading of the given level.
func IsHeading(node ast.Node, level int) bool {
	heading, ok := node.(*ast.Heading)
	return ok && heading.Level == level
}

// IsParagraph reports whether node is a paragraph block.
func IsParagraph(node ast.Node) bool {
	return node != nil && node.Kind() == ast.KindParagraph
}
