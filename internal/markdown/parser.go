package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser builds goldmark trees. A Parser holds no per-document state and can
// be shared.
type Parser struct {
	engine goldmark.Markdown
}

// ParserOptions selects goldmark extensions by name. An empty list enables
// GFM, which covers tables and autolink literals.
type ParserOptions struct {
	Extensions []string
}

// NewParser constructs a parser with the requested extensions.
func NewParser(opts ParserOptions) *Parser {
	return &Parser{
		engine: goldmark.New(goldmark.WithExtensions(collectExtensions(opts.Extensions)...)),
	}
}

// Tree is a parsed document body. Segments inside Root index into Source.
type Tree struct {
	Source []byte
	Root   ast.Node
	Blocks []ast.Node
}

// Parse builds the node tree for source. goldmark accepts any input, so
// parsing itself cannot fail.
func (p *Parser) Parse(source []byte) *Tree {
	root := p.engine.Parser().Parse(text.NewReader(source))

	blocks := make([]ast.Node, 0, root.ChildCount())
	for child := root.FirstChild(); child != nil; child = child.NextSibling() {
		blocks = append(blocks, child)
	}

	return &Tree{
		Source: source,
		Root:   root,
		Blocks: blocks,
	}
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
}

func collectExtensions(names []string) []goldmark.Extender {
	var extenders []goldmark.Extender
	seen := map[string]struct{}{}

	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		seen[key] = struct{}{}
		extenders = append(extenders, ext)
	}

	if len(extenders) == 0 {
		return []goldmark.Extender{extension.GFM}
	}
	return extenders
}
