package parser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

func (w *walker) class(n, anchor *sitter.Node, exported bool) []string {
	name := w.text(n.ChildByFieldName("name"))
	if name == "" {
		// export default class {}
		name = "default"
	}
	meta := map[string]any{}
	if n.Type() == "abstract_class_declaration" {
		meta["abstract"] = true
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		meta["typeParameters"] = w.text(tp)
	}
	if heritage := syntax.FirstChild(n, "class_heritage"); heritage != nil {
		if ext := syntax.FirstChild(heritage, "extends_clause"); ext != nil {
			if v := ext.ChildByFieldName("value"); v != nil {
				meta["extends"] = w.text(v)
			}
		}
		if impl := syntax.FirstChild(heritage, "implements_clause"); impl != nil {
			var names []string
			for _, t := range syntax.NamedChildren(impl) {
				names = append(names, w.text(t))
			}
			meta["implements"] = names
		}
	}
	if decorators := w.decorators(n); len(decorators) > 0 {
		meta["decorators"] = decorators
	}

	id := w.add(source.NoParent, n, anchor, source.Declaration{
		Kind:       source.KindClass,
		Name:       name,
		IsExported: exported,
		Metadata:   meta,
	})
	w.classMembers(id, n.ChildByFieldName("body"))
	return []string{name}
}

func (w *walker) classMembers(parent source.NodeID, body *sitter.Node) {
	if body == nil {
		return
	}
	implemented := make(map[string]bool)
	for _, m := range syntax.Children(body) {
		if m.Type() == "method_definition" {
			implemented[w.text(m.ChildByFieldName("name"))] = true
		}
	}

	for _, m := range syntax.Children(body) {
		switch m.Type() {
		case "method_definition", "abstract_method_signature":
			w.method(parent, m)
		case "method_signature":
			// Overload signatures are folded into their implementation.
			if !implemented[w.text(m.ChildByFieldName("name"))] {
				w.method(parent, m)
			}
		case "public_field_definition":
			w.property(parent, m)
		}
	}
}

func (w *walker) iface(n, anchor *sitter.Node, exported bool) []string {
	name := w.text(n.ChildByFieldName("name"))
	meta := map[string]any{}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		meta["typeParameters"] = w.text(tp)
	}
	if ext := syntax.FirstChild(n, "extends_type_clause"); ext != nil {
		var names []string
		for _, t := range syntax.NamedChildren(ext) {
			names = append(names, w.text(t))
		}
		meta["extends"] = names
	}

	id := w.add(source.NoParent, n, anchor, source.Declaration{
		Kind:       source.KindInterface,
		Name:       name,
		IsExported: exported,
		Metadata:   meta,
	})

	body := n.ChildByFieldName("body")
	for _, m := range syntax.Children(body) {
		switch m.Type() {
		case "method_signature":
			w.method(id, m)
		case "property_signature":
			w.property(id, m)
		}
	}
	return []string{name}
}

func (w *walker) method(parent source.NodeID, m *sitter.Node) {
	meta := map[string]any{
		"parameters": w.parameters(m.ChildByFieldName("parameters")),
		"returnType": typeText(w.text(m.ChildByFieldName("return_type"))),
		"static":     syntax.HasToken(m, "static"),
		"async":      syntax.HasToken(m, "async"),
		"optional":   syntax.HasToken(m, "?"),
		"abstract":   m.Type() == "abstract_method_signature" || syntax.HasToken(m, "abstract"),
	}
	if acc := syntax.FirstChild(m, "accessibility_modifier"); acc != nil {
		meta["accessibility"] = w.text(acc)
	}
	switch {
	case syntax.HasToken(m, "get"):
		meta["accessor"] = "get"
	case syntax.HasToken(m, "set"):
		meta["accessor"] = "set"
	}
	w.add(parent, m, m, source.Declaration{
		Kind:     source.KindMethod,
		Name:     w.text(m.ChildByFieldName("name")),
		Metadata: meta,
	})
}

func (w *walker) property(parent source.NodeID, m *sitter.Node) {
	meta := map[string]any{
		"type":     typeText(w.text(m.ChildByFieldName("type"))),
		"static":   syntax.HasToken(m, "static"),
		"readonly": syntax.HasToken(m, "readonly"),
		"optional": syntax.HasToken(m, "?"),
	}
	if acc := syntax.FirstChild(m, "accessibility_modifier"); acc != nil {
		meta["accessibility"] = w.text(acc)
	}
	if v := m.ChildByFieldName("value"); v != nil {
		meta["initializer"] = w.text(v)
	}
	w.add(parent, m, m, source.Declaration{
		Kind:     source.KindProperty,
		Name:     w.text(m.ChildByFieldName("name")),
		Metadata: meta,
	})
}

func (w *walker) function(n, anchor *sitter.Node, exported bool) []string {
	name := w.text(n.ChildByFieldName("name"))
	if name == "" {
		name = "default"
	}
	meta := map[string]any{
		"parameters": w.parameters(n.ChildByFieldName("parameters")),
		"returnType": typeText(w.text(n.ChildByFieldName("return_type"))),
		"async":      syntax.HasToken(n, "async"),
	}
	if n.Type() == "generator_function_declaration" {
		meta["generator"] = true
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		meta["typeParameters"] = w.text(tp)
	}
	w.add(source.NoParent, n, anchor, source.Declaration{
		Kind:       source.KindFunction,
		Name:       name,
		IsExported: exported,
		Metadata:   meta,
	})
	return []string{name}
}

func (w *walker) typeAlias(n, anchor *sitter.Node, exported bool) []string {
	name := w.text(n.ChildByFieldName("name"))
	meta := map[string]any{
		"type": w.text(n.ChildByFieldName("value")),
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		meta["typeParameters"] = w.text(tp)
	}
	w.add(source.NoParent, n, anchor, source.Declaration{
		Kind:       source.KindTypeAlias,
		Name:       name,
		IsExported: exported,
		Metadata:   meta,
	})
	return []string{name}
}

func (w *walker) enum(n, anchor *sitter.Node, exported bool) []string {
	name := w.text(n.ChildByFieldName("name"))
	members := []string{}
	for _, m := range syntax.NamedChildren(n.ChildByFieldName("body")) {
		switch m.Type() {
		case "enum_assignment":
			members = append(members, syntax.Unquote(w.text(m.ChildByFieldName("name"))))
		case "property_identifier", "string":
			members = append(members, syntax.Unquote(w.text(m)))
		}
	}
	meta := map[string]any{"members": members}
	if syntax.HasToken(n, "const") {
		meta["const"] = true
	}
	w.add(source.NoParent, n, anchor, source.Declaration{
		Kind:       source.KindEnum,
		Name:       name,
		IsExported: exported,
		Metadata:   meta,
	})
	return []string{name}
}

// variables records each declarator of a const/let/var statement.
func (w *walker) variables(n, anchor *sitter.Node, exported bool) []string {
	kind := "var"
	if k := n.ChildByFieldName("kind"); k != nil {
		kind = w.text(k)
	} else if n.Type() == "lexical_declaration" && n.ChildCount() > 0 {
		kind = w.text(n.Child(0))
	}

	var names []string
	for _, d := range syntax.Children(n) {
		if d.Type() != "variable_declarator" {
			continue
		}
		name := w.text(d.ChildByFieldName("name"))
		meta := map[string]any{"declarationKind": kind}
		if t := d.ChildByFieldName("type"); t != nil {
			meta["type"] = typeText(w.text(t))
		}
		w.add(source.NoParent, d, anchor, source.Declaration{
			Kind:       source.KindVariable,
			Name:       name,
			IsExported: exported,
			Metadata:   meta,
		})
		names = append(names, name)
	}
	return names
}

func (w *walker) parameters(n *sitter.Node) []source.Parameter {
	params := []source.Parameter{}
	for _, p := range syntax.NamedChildren(n) {
		if p.Type() != "required_parameter" && p.Type() != "optional_parameter" {
			continue
		}
		param := source.Parameter{
			Name:     w.text(p.ChildByFieldName("pattern")),
			Type:     typeText(w.text(p.ChildByFieldName("type"))),
			Optional: p.Type() == "optional_parameter",
		}
		if v := p.ChildByFieldName("value"); v != nil {
			param.Default = w.text(v)
		}
		params = append(params, param)
	}
	return params
}

func (w *walker) decorators(n *sitter.Node) []string {
	var out []string
	for _, c := range syntax.Children(n) {
		if c.Type() == "decorator" {
			out = append(out, strings.TrimPrefix(w.text(c), "@"))
		}
	}
	return out
}

// typeText strips the leading colon of a type annotation.
func typeText(s string) string {
	return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), ":"))
}

// leadingDoc returns the cleaned text of a /** */ comment immediately
// preceding anchor, or "".
func leadingDoc(doc *syntax.Document, anchor *sitter.Node) string {
	prev := anchor.PrevSibling()
	if prev == nil || prev.Type() != "comment" {
		return ""
	}
	raw := doc.Text(prev)
	if !strings.HasPrefix(raw, "/**") || raw == "/**/" {
		return ""
	}
	return CleanDoc(raw)
}

// CleanDoc strips the comment delimiters and leading asterisks of a JSDoc
// block.
func CleanDoc(raw string) string {
	body := strings.TrimSuffix(strings.TrimPrefix(raw, "/**"), "*/")
	lines := strings.Split(body, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "*")
		out = append(out, strings.TrimSpace(line))
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
