package markdown

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"path"
)

// Document is a loaded trip document: frontmatter, parsed body and the
// checksum of the raw file.
type Document struct {
	Path        string
	FrontMatter FrontMatter
	Checksum    string
	*Tree
}

// Loader reads trip documents from a filesystem.
type Loader struct {
	fs     fs.FS
	parser *Parser
}

// NewLoader constructs a Loader. A nil parser falls back to the GFM default.
func NewLoader(filesystem fs.FS, parser *Parser) *Loader {
	if parser == nil {
		parser = NewParser(ParserOptions{})
	}
	return &Loader{fs: filesystem, parser: parser}
}

// LoadFile reads, checksums and parses a single document.
func (l *Loader) LoadFile(ctx context.Context, name string) (*Document, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	name = path.Clean(name)
	data, err := fs.ReadFile(l.fs, name)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", name, err)
	}

	doc, err := l.Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("markdown loader parse %s: %w", name, err)
	}
	return doc, nil
}

// Parse builds a Document from raw bytes.
func (l *Loader) Parse(name string, data []byte) (*Document, error) {
	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, err
	}
	return &Document{
		Path:        name,
		FrontMatter: meta,
		Checksum:    Checksum(data),
		Tree:        l.parser.Parse(body),
	}, nil
}

// Checksum returns the hex encoded SHA-256 of data.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
