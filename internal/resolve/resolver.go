// Package resolve finds the gazetteer locations an activity refers to.
package resolve

import (
	"strings"

	"github.com/goliatone/go-slug"
	"github.com/yuin/goldmark/ast"

	"github.com/goliatone/go-tripdata/internal/gazetteer"
	"github.com/goliatone/go-tripdata/internal/markdown"
)

// RefScheme prefixes link destinations that name a location id directly.
const RefScheme = "loc:"

// Resolver matches activity text against one alias index.
type Resolver struct {
	index *gazetteer.Index
}

// New constructs a Resolver over index.
func New(index *gazetteer.Index) *Resolver {
	return &Resolver{index: index}
}

// Resolve returns the location ids referenced by an activity, in order of
// first evidence and without duplicates. Evidence is unioned from strong
// spans and links that are direct children of the description paragraphs,
// then from a scan of the name and description text.
func (r *Resolver) Resolve(tree *markdown.Tree, name, description string, nodes []ast.Node) []string {
	ids := newIDSet()

	for _, node := range nodes {
		if !markdown.IsParagraph(node) {
			continue
		}
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			switch span := child.(type) {
			case *ast.Emphasis:
				if span.Level == 2 {
					ids.add(r.index.MatchText(tree.Text(span))...)
				}
			case *ast.Link:
				ids.add(r.link(string(span.Destination), tree.Text(span))...)
			case *ast.AutoLink:
				ids.add(r.link(string(span.URL(tree.Source)), string(span.Label(tree.Source)))...)
			}
		}
	}

	ids.add(r.index.MatchText(name + " " + description)...)
	return ids.list()
}

// link resolves a single link: an explicit location reference, else an exact
// official URL, else the visible text.
func (r *Resolver) link(destination, label string) []string {
	if id, ok := ExplicitRef(destination); ok {
		return []string{id}
	}
	if id, ok := r.index.MatchURL(destination); ok {
		return []string{id}
	}
	return r.index.MatchText(label)
}

// ExplicitRef extracts the id from a `loc:<id>` destination. Ids that are not
// valid slugs are rejected.
func ExplicitRef(destination string) (string, bool) {
	if !strings.HasPrefix(destination, RefScheme) {
		return "", false
	}
	id := strings.TrimSpace(strings.TrimPrefix(destination, RefScheme))
	if id == "" || !slug.IsValid(id) {
		return "", false
	}
	return id, true
}

type idSet struct {
	seen  map[string]struct{}
	order []string
}

func newIDSet() *idSet {
	return &idSet{seen: map[string]struct{}{}}
}

func (s *idSet) add(ids ...string) {
	for _, id := range ids {
		if _, ok := s.seen[id]; ok {
			continue
		}
		s.seen[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

func (s *idSet) list() []string {
	if s.order == nil {
		return []string{}
	}
	return s.order
}
