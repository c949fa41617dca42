package transformer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/printer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// importNode pairs a top-level import statement with its decoded record.
type importNode struct {
	node   *sitter.Node
	record source.Import
}

func (f *file) imports() []importNode {
	var out []importNode
	for _, n := range syntax.Children(f.doc.Root()) {
		if n.Type() == "import_statement" {
			out = append(out, importNode{node: n, record: parser.ReadImport(f.doc, n)})
		}
	}
	return out
}

func (f *file) quoteStyle(n *sitter.Node) string {
	if src := n.ChildByFieldName("source"); src != nil {
		return syntax.QuoteOf(f.doc.Text(src))
	}
	return "'"
}

func (f *file) addImport(op AddImport) error {
	imports := f.imports()
	for _, imp := range imports {
		if imp.record.ModuleSpecifier == op.ModuleSpecifier {
			f.mergeImport(imp, op)
			return nil
		}
	}

	quote := "'"
	if len(imports) > 0 {
		quote = f.quoteStyle(imports[0].node)
	}
	stmt := printer.GenerateImportStatement(printer.ImportOptions{
		ModuleSpecifier: op.ModuleSpecifier,
		DefaultImport:   op.DefaultImport,
		NamespaceImport: op.NamespaceImport,
		NamedImports:    dedupe(op.NamedImports),
		TypeOnly:        op.IsTypeOnly,
		Quote:           quote,
	})
	f.insertImport(imports, op.ModuleSpecifier, stmt)
	return nil
}

// insertImport places a new import before the first existing import whose
// module sorts after it, or after the last import. The position depends
// only on the existing imports, so adding imports of distinct modules
// gives the same text in any order.
func (f *file) insertImport(imports []importNode, module, stmt string) {
	for _, imp := range imports {
		if imp.record.ModuleSpecifier > module {
			f.insert(int(imp.node.StartByte()), stmt+"\n")
			return
		}
	}
	if len(imports) > 0 {
		f.insert(int(imports[len(imports)-1].node.EndByte()), "\n"+stmt)
		return
	}

	// No imports yet: go after leading header comments and directives.
	at := 0
	for _, n := range syntax.Children(f.doc.Root()) {
		if n.Type() != "comment" && !isDirective(n) {
			break
		}
		at = int(n.EndByte())
	}
	switch {
	case at > 0:
		f.insert(at, "\n\n"+stmt)
	case strings.TrimSpace(f.text) == "":
		f.replace(0, len(f.text), stmt+"\n")
	default:
		f.insert(0, stmt+"\n\n")
	}
}

// isDirective matches a prologue statement such as 'use strict'; or
// "use client";.
func isDirective(n *sitter.Node) bool {
	if n.Type() != "expression_statement" {
		return false
	}
	kids := syntax.NamedChildren(n)
	return len(kids) == 1 && kids[0].Type() == "string"
}

// mergeImport adds the named bindings an existing import lacks.
func (f *file) mergeImport(imp importNode, op AddImport) {
	var missing []string
	for _, name := range dedupe(op.NamedImports) {
		if !hasSpecifier(imp.record.NamedImports, name) {
			missing = append(missing, name)
		}
	}
	if len(missing) == 0 {
		return
	}

	clause := syntax.FirstChild(imp.node, "import_clause")
	var named, defaultID, namespace *sitter.Node
	if clause != nil {
		named = syntax.FirstChild(clause, "named_imports")
		defaultID = syntax.FirstChild(clause, "identifier")
		namespace = syntax.FirstChild(clause, "namespace_import")
	}

	switch {
	case named != nil:
		var specs []*sitter.Node
		for _, c := range syntax.Children(named) {
			if c.Type() == "import_specifier" {
				specs = append(specs, c)
			}
		}
		if len(specs) == 0 {
			f.replace(int(named.StartByte()), int(named.EndByte()), "{ "+strings.Join(missing, ", ")+" }")
			return
		}
		last := specs[len(specs)-1]
		sep := ", "
		if strings.Contains(f.doc.Text(named), "\n") {
			sep = ",\n" + strings.Repeat(" ", int(last.StartPoint().Column))
		}
		f.insert(int(last.EndByte()), sep+strings.Join(missing, sep))

	case namespace != nil:
		// A namespace import cannot carry named bindings; add a sibling.
		stmt := printer.GenerateImportStatement(printer.ImportOptions{
			ModuleSpecifier: op.ModuleSpecifier,
			NamedImports:    missing,
			TypeOnly:        op.IsTypeOnly,
			Quote:           f.quoteStyle(imp.node),
		})
		f.insert(int(imp.node.EndByte()), "\n"+stmt)

	case defaultID != nil:
		f.insert(int(defaultID.EndByte()), ", { "+strings.Join(missing, ", ")+" }")

	default:
		// Side-effect import: rewrite it with bindings.
		stmt := printer.GenerateImportStatement(printer.ImportOptions{
			ModuleSpecifier: op.ModuleSpecifier,
			NamedImports:    missing,
			TypeOnly:        op.IsTypeOnly,
			Quote:           f.quoteStyle(imp.node),
		})
		f.replace(int(imp.node.StartByte()), int(imp.node.EndByte()), stmt)
	}
}

func (f *file) removeImport(op RemoveImport) error {
	for _, imp := range f.imports() {
		if imp.record.ModuleSpecifier != op.ModuleSpecifier {
			continue
		}
		if len(op.NamedImports) == 0 {
			f.removeStatement(imp.node)
			continue
		}

		var remaining []string
		for _, spec := range imp.record.NamedImports {
			if !matchesAny(spec, op.NamedImports) {
				remaining = append(remaining, spec)
			}
		}
		if len(remaining) == len(imp.record.NamedImports) {
			continue
		}
		if len(remaining) == 0 && imp.record.DefaultImport == "" && imp.record.NamespaceImport == "" {
			f.removeStatement(imp.node)
			continue
		}

		stmt := printer.GenerateImportStatement(printer.ImportOptions{
			ModuleSpecifier: imp.record.ModuleSpecifier,
			DefaultImport:   imp.record.DefaultImport,
			NamespaceImport: imp.record.NamespaceImport,
			NamedImports:    remaining,
			TypeOnly:        imp.record.IsTypeOnly,
			Quote:           f.quoteStyle(imp.node),
		})
		f.replace(int(imp.node.StartByte()), int(imp.node.EndByte()), stmt)
	}
	// A missing import is not an error.
	return nil
}

// removeStatement deletes n together with the line break that follows it.
func (f *file) removeStatement(n *sitter.Node) {
	end := int(n.EndByte())
	if end < len(f.text) && f.text[end] == '\n' {
		end++
	}
	f.replace(int(n.StartByte()), end, "")
}

// hasSpecifier reports whether specs already contains name, compared
// exactly after normalising whitespace.
func hasSpecifier(specs []string, name string) bool {
	name = strings.Join(strings.Fields(name), " ")
	for _, s := range specs {
		if strings.Join(strings.Fields(s), " ") == name {
			return true
		}
	}
	return false
}

// matchesAny reports whether spec is named by any of names, either by its
// full text, its imported name, or its local binding.
func matchesAny(spec string, names []string) bool {
	for _, n := range names {
		if n == spec || source.ImportedName(n) == source.ImportedName(spec) || n == source.LocalName(spec) {
			return true
		}
	}
	return false
}

func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}
