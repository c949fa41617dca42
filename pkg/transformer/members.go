package transformer

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/printer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

const memberIndent = "  "

func (f *file) addExport(op AddExport) error {
	var stmt string
	if decl := strings.TrimSpace(op.Declaration); decl != "" {
		decl = strings.TrimPrefix(decl, "export ")
		if op.IsDefault {
			stmt = "export default " + strings.TrimPrefix(decl, "default ")
		} else {
			stmt = "export " + decl
		}
	} else {
		stmt = printer.GenerateExportStatement(printer.ExportOptions{Name: op.Name, IsDefault: op.IsDefault})
	}
	f.appendStatement(stmt)
	return nil
}

// appendStatement adds stmt at the end of the file, separated from existing
// code by one blank line.
func (f *file) appendStatement(stmt string) {
	trimmed := strings.TrimRight(f.text, " \t\r\n")
	if trimmed == "" {
		f.replace(0, len(f.text), stmt+"\n")
		return
	}
	f.replace(len(trimmed), len(f.text), "\n\n"+stmt+"\n")
}

// findClass returns the declaration and syntax node of a top-level class.
func (f *file) findClass(name string) (*source.Declaration, *sitter.Node, error) {
	decl, ok := f.model.Declarations.Find(source.KindClass, name)
	if !ok {
		return nil, nil, fmt.Errorf("class %q %w", name, ErrNotFound)
	}
	var found *sitter.Node
	syntax.Walk(f.doc.Root(), func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		switch n.Type() {
		case "class_declaration", "abstract_class_declaration":
			if f.doc.Text(n.ChildByFieldName("name")) == name {
				found = n
			}
			return false
		case "program", "export_statement", "ambient_declaration":
			return true
		}
		return false
	})
	if found == nil || found.ChildByFieldName("body") == nil {
		return nil, nil, fmt.Errorf("class %q %w", name, ErrNotFound)
	}
	return decl, found, nil
}

// lineIndent returns the leading whitespace of the line containing offset.
func (f *file) lineIndent(offset int) string {
	start := strings.LastIndexByte(f.text[:offset], '\n') + 1
	end := start
	for end < len(f.text) && (f.text[end] == ' ' || f.text[end] == '\t') {
		end++
	}
	return f.text[start:end]
}

// startsLine reports whether only whitespace precedes offset on its line.
func (f *file) startsLine(offset int) bool {
	start := strings.LastIndexByte(f.text[:offset], '\n') + 1
	return strings.TrimLeft(f.text[start:offset], " \t") == ""
}

// appendMember inserts member lines (already indented relative to the class)
// before the closing brace of the class body.
func (f *file) appendMember(class *sitter.Node, lines []string, separate bool) {
	body := class.ChildByFieldName("body")
	closeAt := int(body.EndByte()) - 1
	classIndent := f.lineIndent(int(class.StartByte()))

	singleLine := !strings.Contains(f.doc.Text(body), "\n")

	// Existing members set the indent only when the first one starts its
	// own line; on "class Foo { a = 1;" its line is the class line.
	indent := classIndent + memberIndent
	hasMembers := false
	for _, m := range syntax.NamedChildren(body) {
		if m.Type() == "comment" {
			continue
		}
		if !hasMembers && !singleLine && f.startsLine(int(m.StartByte())) {
			indent = f.lineIndent(int(m.StartByte()))
		}
		hasMembers = true
	}

	var b strings.Builder
	for _, l := range lines {
		if l == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(indent + l + "\n")
	}
	member := b.String()

	lineStart := strings.LastIndexByte(f.text[:closeAt], '\n') + 1
	onOwnLine := strings.TrimSpace(f.text[lineStart:closeAt]) == ""

	switch {
	case singleLine:
		// class Foo {} or class Foo { a = 1; }
		inner := strings.TrimSpace(f.text[int(body.StartByte())+1 : closeAt])
		var nb strings.Builder
		nb.WriteString("{\n")
		if inner != "" {
			nb.WriteString(indent + inner + "\n")
			if separate {
				nb.WriteString("\n")
			}
		}
		nb.WriteString(member)
		nb.WriteString(classIndent + "}")
		f.replace(int(body.StartByte()), int(body.EndByte()), nb.String())
	case onOwnLine:
		if separate && hasMembers {
			member = "\n" + member
		}
		f.insert(lineStart, member)
	default:
		if separate && hasMembers {
			member = "\n" + member
		}
		f.insert(closeAt, "\n"+member+classIndent)
	}
}

func (f *file) addProperty(op AddProperty) error {
	_, class, err := f.findClass(op.TargetClass)
	if err != nil {
		return err
	}

	var b strings.Builder
	if op.Static {
		b.WriteString("static ")
	}
	if op.Readonly {
		b.WriteString("readonly ")
	}
	b.WriteString(op.Name)
	if op.Type != "" {
		b.WriteString(": " + op.Type)
	}
	if op.Initializer != "" {
		b.WriteString(" = " + op.Initializer)
	}
	b.WriteString(";")

	f.appendMember(class, []string{b.String()}, false)
	return nil
}

func (f *file) addMethod(op AddMethod) error {
	_, class, err := f.findClass(op.TargetClass)
	if err != nil {
		return err
	}

	var sig strings.Builder
	if op.Static {
		sig.WriteString("static ")
	}
	if op.Async {
		sig.WriteString("async ")
	}
	sig.WriteString(op.Name)
	sig.WriteString("(" + FormatParameters(ParseParameters(op.Parameters)) + ")")
	if op.ReturnType != "" {
		sig.WriteString(": " + op.ReturnType)
	}

	body := dedent(op.Body)
	if body == "" {
		f.appendMember(class, []string{sig.String() + " {}"}, true)
		return nil
	}
	lines := []string{sig.String() + " {"}
	for _, l := range strings.Split(body, "\n") {
		if strings.TrimSpace(l) == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, memberIndent+l)
	}
	lines = append(lines, "}")
	f.appendMember(class, lines, true)
	return nil
}

// dedent trims surrounding blank lines and the common leading whitespace.
func dedent(s string) string {
	s = strings.Trim(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	if strings.TrimSpace(s) == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	common := -1
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		n := len(l) - len(strings.TrimLeft(l, " \t"))
		if common < 0 || n < common {
			common = n
		}
	}
	for i, l := range lines {
		if len(l) >= common {
			lines[i] = strings.TrimRight(l[common:], " \t")
		} else {
			lines[i] = strings.TrimSpace(l)
		}
	}
	return strings.Join(lines, "\n")
}
