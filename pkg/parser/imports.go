package parser

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// ReadImport decodes one import_statement node. The transformer uses it to
// inspect existing imports before merging into them.
func ReadImport(doc *syntax.Document, n *sitter.Node) source.Import {
	imp := source.Import{
		NamedImports: []string{},
		IsTypeOnly:   syntax.HasToken(n, "type"),
		Line:         syntax.StartLine(n),
	}
	if src := n.ChildByFieldName("source"); src != nil {
		imp.ModuleSpecifier = syntax.Unquote(doc.Text(src))
	}

	for _, child := range syntax.Children(n) {
		switch child.Type() {
		case "import_clause":
			readImportClause(doc, child, &imp)
		case "import_require_clause":
			// import fs = require('fs')
			if id := syntax.FirstChild(child, "identifier"); id != nil {
				imp.DefaultImport = doc.Text(id)
			}
			if s := syntax.FirstChild(child, "string"); s != nil {
				imp.ModuleSpecifier = syntax.Unquote(doc.Text(s))
			}
		case "string":
			if imp.ModuleSpecifier == "" {
				imp.ModuleSpecifier = syntax.Unquote(doc.Text(child))
			}
		}
	}
	return imp
}

func readImportClause(doc *syntax.Document, clause *sitter.Node, imp *source.Import) {
	for _, child := range syntax.Children(clause) {
		switch child.Type() {
		case "identifier":
			imp.DefaultImport = doc.Text(child)
		case "namespace_import":
			if id := syntax.FirstChild(child, "identifier"); id != nil {
				imp.NamespaceImport = doc.Text(id)
			}
		case "named_imports":
			for _, spec := range syntax.Children(child) {
				if spec.Type() == "import_specifier" {
					imp.NamedImports = append(imp.NamedImports, specifierText(doc, spec))
				}
			}
		}
	}
}

// specifierText renders an import specifier as "a", "a as b", or, with an
// inline type modifier, "type a".
func specifierText(doc *syntax.Document, spec *sitter.Node) string {
	name := doc.Text(spec.ChildByFieldName("name"))
	if alias := spec.ChildByFieldName("alias"); alias != nil {
		name += " as " + doc.Text(alias)
	}
	if syntax.HasToken(spec, "type") {
		name = "type " + name
	}
	return name
}

func (w *walker) importStatement(n *sitter.Node) {
	w.result.Imports = append(w.result.Imports, ReadImport(w.doc, n))
}

func (w *walker) exportStatement(n *sitter.Node) {
	line := syntax.StartLine(n)
	isDefault := syntax.HasToken(n, "default")
	typeOnly := syntax.HasToken(n, "type")

	var sourceModule string
	if src := n.ChildByFieldName("source"); src != nil {
		sourceModule = syntax.Unquote(w.doc.Text(src))
	}
	reExport := sourceModule != ""

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		names := w.declaration(decl, n, true)
		declTypeOnly := decl.Type() == "interface_declaration" || decl.Type() == "type_alias_declaration"
		for _, name := range names {
			w.result.Exports = append(w.result.Exports, source.Export{
				Name:       name,
				IsDefault:  isDefault,
				IsTypeOnly: declTypeOnly,
				Line:       line,
			})
		}
		return
	}

	if isDefault {
		name := "default"
		if v := n.ChildByFieldName("value"); v != nil {
			if v.Type() == "identifier" {
				name = w.text(v)
			} else if v.Type() == "class" {
				w.class(v, n, true)
			}
		}
		w.result.Exports = append(w.result.Exports, source.Export{Name: name, IsDefault: true, Line: line})
		return
	}

	if clause := syntax.FirstChild(n, "export_clause"); clause != nil {
		for _, spec := range syntax.Children(clause) {
			if spec.Type() != "export_specifier" {
				continue
			}
			name := w.text(spec.ChildByFieldName("name"))
			if alias := spec.ChildByFieldName("alias"); alias != nil {
				name = w.text(alias)
			}
			w.result.Exports = append(w.result.Exports, source.Export{
				Name:         name,
				IsDefault:    name == "default",
				IsTypeOnly:   typeOnly || syntax.HasToken(spec, "type"),
				IsReExport:   reExport,
				SourceModule: sourceModule,
				Line:         line,
			})
		}
		return
	}

	if ns := syntax.FirstChild(n, "namespace_export"); ns != nil {
		// export * as ns from './mod'
		name := "*"
		if id := syntax.NamedChildren(ns); len(id) > 0 {
			name = w.text(id[len(id)-1])
		}
		w.result.Exports = append(w.result.Exports, source.Export{
			Name: name, IsReExport: reExport, SourceModule: sourceModule, Line: line,
		})
		return
	}

	if syntax.HasToken(n, "*") {
		w.result.Exports = append(w.result.Exports, source.Export{
			Name: "*", IsTypeOnly: typeOnly, IsReExport: reExport, SourceModule: sourceModule, Line: line,
		})
	}
}
