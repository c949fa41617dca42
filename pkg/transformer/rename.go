package transformer

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// fileScopeOrder is the order symbols are tried for a file-scoped rename.
var fileScopeOrder = []source.Kind{
	source.KindFunction,
	source.KindClass,
	source.KindInterface,
	source.KindTypeAlias,
}

// memberNodeTypes lists the class body nodes that declare each member kind.
var memberNodeTypes = map[source.Kind][]string{
	source.KindMethod:   {"method_definition", "method_signature", "abstract_method_signature"},
	source.KindProperty: {"public_field_definition"},
}

func (f *file) rename(op Rename) error {
	if op.TargetClass != "" {
		return f.renameMember(op)
	}
	for _, kind := range fileScopeOrder {
		if _, ok := f.model.Declarations.Find(kind, op.OldName); ok {
			f.renameSymbol(op.OldName, op.NewName)
			return nil
		}
	}
	return fmt.Errorf("symbol %q %w", op.OldName, ErrNotFound)
}

// renameSymbol rewrites every identifier token spelled old. The rename is
// textual, not scope-aware: a parameter or local in another scope that
// shadows old is renamed too. Property keys and member accesses are a
// different namespace and are left alone; shorthand properties ({ old })
// keep their key.
func (f *file) renameSymbol(old, to string) {
	syntax.Walk(f.doc.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "identifier", "type_identifier":
			if f.doc.Text(n) == old {
				f.replace(int(n.StartByte()), int(n.EndByte()), to)
			}
		case "shorthand_property_identifier":
			if f.doc.Text(n) == old {
				f.replace(int(n.StartByte()), int(n.EndByte()), old+": "+to)
			}
		case "comment", "string", "regex":
			return false
		}
		return true
	})
}

func (f *file) renameMember(op Rename) error {
	cls, classNode, err := f.findClass(op.TargetClass)
	if err != nil {
		return err
	}

	kind := source.KindMethod
	if _, ok := f.model.Declarations.Member(cls.ID, source.KindMethod, op.OldName); !ok {
		if _, ok := f.model.Declarations.Member(cls.ID, source.KindProperty, op.OldName); !ok {
			return fmt.Errorf("member %q of class %q %w", op.OldName, op.TargetClass, ErrNotFound)
		}
		kind = source.KindProperty
	}

	// Declarations, overloads included.
	for _, m := range syntax.Children(classNode.ChildByFieldName("body")) {
		for _, typ := range memberNodeTypes[kind] {
			if m.Type() != typ {
				continue
			}
			if name := m.ChildByFieldName("name"); name != nil && f.doc.Text(name) == op.OldName {
				f.replace(int(name.StartByte()), int(name.EndByte()), op.NewName)
			}
		}
	}

	// this.member inside the class, ClassName.member anywhere.
	classStart, classEnd := classNode.StartByte(), classNode.EndByte()
	syntax.Walk(f.doc.Root(), func(n *sitter.Node) bool {
		if n.Type() != "member_expression" {
			return true
		}
		prop := n.ChildByFieldName("property")
		obj := n.ChildByFieldName("object")
		if prop == nil || obj == nil || f.doc.Text(prop) != op.OldName {
			return true
		}
		inClass := n.StartByte() >= classStart && n.EndByte() <= classEnd
		if (obj.Type() == "this" && inClass) || (obj.Type() == "identifier" && f.doc.Text(obj) == op.TargetClass) {
			f.replace(int(prop.StartByte()), int(prop.EndByte()), op.NewName)
		}
		return true
	})
	return nil
}
