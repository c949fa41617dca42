package syntax

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// Dialect selects the grammar used for a document.
type Dialect int

const (
	TypeScript Dialect = iota
	TSX
)

// DialectFor picks the dialect from a file name.
func DialectFor(path string) Dialect {
	if strings.HasSuffix(path, ".tsx") {
		return TSX
	}
	return TypeScript
}

func (d Dialect) language() *sitter.Language {
	if d == TSX {
		return tsx.GetLanguage()
	}
	return typescript.GetLanguage()
}

// Document is a parsed TypeScript source unit together with the bytes it was
// parsed from. A Document is never shared between calls; Close releases the
// underlying tree.
type Document struct {
	src  []byte
	tree *sitter.Tree
}

// Parse parses text with the TypeScript grammar. Tree-sitter always produces
// a tree for well-formed input, so the only failure mode is context
// cancellation; Parse uses a background context and returns an empty
// document in that case.
func Parse(text string) *Document {
	return ParseDialect(text, TypeScript)
}

// ParseDialect is Parse with an explicit grammar.
func ParseDialect(text string, dialect Dialect) *Document {
	doc, err := ParseContext(context.Background(), text, dialect)
	if err != nil {
		return &Document{src: []byte(text)}
	}
	return doc
}

// ParseContext parses with cancellation.
func ParseContext(ctx context.Context, text string, dialect Dialect) (*Document, error) {
	src := []byte(text)

	// A fresh parser per call keeps documents independent.
	p := sitter.NewParser()
	defer p.Close()
	p.SetLanguage(dialect.language())

	tree, err := p.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	return &Document{src: src, tree: tree}, nil
}

// Root returns the program node, or nil for an empty document.
func (d *Document) Root() *sitter.Node {
	if d == nil || d.tree == nil {
		return nil
	}
	return d.tree.RootNode()
}

// Source returns the parsed bytes.
func (d *Document) Source() []byte {
	return d.src
}

// Text returns the source text covered by n.
func (d *Document) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(d.src)
}

// Close releases the tree. The document must not be used afterwards.
func (d *Document) Close() {
	if d != nil && d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

// StartLine returns the 1-based line n starts on.
func StartLine(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// EndLine returns the 1-based line n ends on.
func EndLine(n *sitter.Node) int {
	return int(n.EndPoint().Row) + 1
}

// Children returns every child of n, named or anonymous.
func Children(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.ChildCount())
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// NamedChildren returns the named children of n.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	out := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil {
			out = append(out, c)
		}
	}
	return out
}

// FirstChild returns the first child of n whose type is one of types.
func FirstChild(n *sitter.Node, types ...string) *sitter.Node {
	for _, c := range Children(n) {
		for _, t := range types {
			if c.Type() == t {
				return c
			}
		}
	}
	return nil
}

// HasToken reports whether n has a direct child of the given type. Anonymous
// keyword tokens ("static", "async", "export") are matched by their text.
func HasToken(n *sitter.Node, typ string) bool {
	return FirstChild(n, typ) != nil
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the current node.
func Walk(n *sitter.Node, fn func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		Walk(n.Child(i), fn)
	}
}

// Collect returns every descendant of n (n included) whose type is in types.
func Collect(n *sitter.Node, types ...string) []*sitter.Node {
	want := make(map[string]bool, len(types))
	for _, t := range types {
		want[t] = true
	}
	var out []*sitter.Node
	Walk(n, func(c *sitter.Node) bool {
		if want[c.Type()] {
			out = append(out, c)
		}
		return true
	})
	return out
}

// Unquote strips the delimiters of a string literal.
func Unquote(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '\'' || first == '"' || first == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// QuoteOf returns the quote character used by a string literal, defaulting
// to a single quote.
func QuoteOf(s string) string {
	if strings.HasPrefix(s, `"`) {
		return `"`
	}
	return "'"
}
