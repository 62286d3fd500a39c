// Package markdown turns a trip document into a goldmark node tree and
// offers the helpers the builders need on top of it: plain-text flattening,
// paragraph shape predicates, heading-based segmentation and frontmatter.
package markdown
