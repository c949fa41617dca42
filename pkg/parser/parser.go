package parser

import (
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// Parse builds a fresh AnalysisResult for text.
func Parse(text string) *source.AnalysisResult {
	doc := syntax.Parse(text)
	defer doc.Close()
	return FromDocument(doc)
}

// ParseFile reads path and parses its contents.
func ParseFile(path string) (*source.AnalysisResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc := syntax.ParseDialect(string(data), syntax.DialectFor(path))
	defer doc.Close()
	return FromDocument(doc), nil
}

// FromDocument extracts an AnalysisResult from an already parsed document.
// The transformer uses it to re-read the tree between edits without parsing
// twice.
func FromDocument(doc *syntax.Document) *source.AnalysisResult {
	w := &walker{
		doc:    doc,
		tree:   source.NewTree(),
		result: &source.AnalysisResult{Imports: []source.Import{}, Exports: []source.Export{}},
	}
	w.result.Declarations = w.tree

	root := doc.Root()
	for _, child := range syntax.Children(root) {
		w.topLevel(child)
	}

	w.result.Metrics = source.Metrics{
		LinesOfCode:          CountLines(string(doc.Source())),
		FunctionCount:        w.tree.Count(source.KindFunction),
		ClassCount:           w.tree.Count(source.KindClass),
		ImportCount:          len(w.result.Imports),
		ExportCount:          len(w.result.Exports),
		CyclomaticComplexity: Complexity(root),
	}
	return w.result
}

// walker carries the state of one extraction pass.
type walker struct {
	doc    *syntax.Document
	tree   *source.Tree
	result *source.AnalysisResult
}

func (w *walker) text(n *sitter.Node) string {
	return w.doc.Text(n)
}

func (w *walker) topLevel(n *sitter.Node) {
	switch n.Type() {
	case "import_statement":
		w.importStatement(n)
	case "export_statement":
		w.exportStatement(n)
	case "ambient_declaration":
		// declare class Foo {} / declare function f(): void;
		for _, c := range syntax.NamedChildren(n) {
			w.declaration(c, n, false)
		}
	default:
		w.declaration(n, n, false)
	}
}

// declaration records n if it is a supported top-level declaration. anchor
// is the outermost statement node, used to find the leading doc comment.
func (w *walker) declaration(n, anchor *sitter.Node, exported bool) []string {
	switch n.Type() {
	case "class_declaration", "abstract_class_declaration", "class":
		return w.class(n, anchor, exported)
	case "interface_declaration":
		return w.iface(n, anchor, exported)
	case "function_declaration", "generator_function_declaration":
		return w.function(n, anchor, exported)
	case "function_signature":
		if anchor.Type() == "ambient_declaration" {
			return w.function(n, anchor, exported)
		}
	case "type_alias_declaration":
		return w.typeAlias(n, anchor, exported)
	case "enum_declaration":
		return w.enum(n, anchor, exported)
	case "lexical_declaration", "variable_declaration":
		if exported || anchor.Type() == "ambient_declaration" {
			return w.variables(n, anchor, exported)
		}
	}
	return nil
}

func (w *walker) add(parent source.NodeID, n, anchor *sitter.Node, d source.Declaration) source.NodeID {
	d.StartLine = syntax.StartLine(anchor)
	d.EndLine = syntax.EndLine(n)
	if d.Doc == "" {
		d.Doc = leadingDoc(w.doc, anchor)
	}
	return w.tree.Add(parent, d)
}
