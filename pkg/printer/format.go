package printer

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// IndentWidth is the number of spaces per nesting level.
const IndentWidth = 2

// byte classes
const (
	code byte = iota
	literal
	template
	comment
)

// Format re-serializes TypeScript text canonically: every line is
// re-indented by bracket depth, trailing whitespace is stripped, runs of
// blank lines collapse to one, and the result ends with a single newline.
// Template literal contents are left untouched. Format is idempotent.
func Format(text string) string {
	return FormatDialect(text, syntax.TypeScript)
}

// FormatDialect is Format with an explicit grammar.
func FormatDialect(text string, dialect syntax.Dialect) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	if strings.TrimSpace(text) == "" {
		return ""
	}

	doc := syntax.ParseDialect(text, dialect)
	defer doc.Close()
	classes, jsx := classify(doc)

	var (
		out   []string
		keep  []bool // line must not be collapsed or trimmed
		depth int
	)
	start := 0
	for start <= len(text) {
		end := strings.IndexByte(text[start:], '\n')
		if end < 0 {
			end = len(text)
		} else {
			end += start
		}
		line := text[start:end]

		continued := start > 0 && classes[start-1] != code
		switch {
		case continued && classes[start-1] != comment:
			// Inside a template or multi-line string: verbatim.
			out = append(out, line)
			keep = append(keep, true)
		case continued:
			trimmed := strings.TrimSpace(line)
			if strings.HasPrefix(trimmed, "*") {
				line = indent(depth) + " " + trimmed
			} else {
				line = strings.TrimRight(line, " \t")
			}
			out = append(out, line)
			keep = append(keep, false)
		default:
			lead := len(line) - len(strings.TrimLeft(line, " \t"))
			body := line[lead:]
			if end >= len(text) || classes[end] != template {
				body = strings.TrimRight(body, " \t")
			}
			closers := leadingClosers(body, classes[start+lead:], jsx[start+lead:])
			level := depth - closers
			if level < 0 {
				level = 0
			}
			if body == "" {
				out = append(out, "")
			} else {
				out = append(out, indent(level)+body)
			}
			keep = append(keep, false)
		}

		depth += netBrackets(text[start:end], classes[start:end], jsx[start:end])
		if depth < 0 {
			depth = 0
		}
		start = end + 1
	}

	return join(out, keep)
}

// classify labels every byte of the document as code, literal, template, or
// comment using the tree-sitter token ranges. The second slice marks where
// JSX elements open (+1, on the last byte of the opening tag) and close (-1,
// on the "<" of the closing tag), so element children nest like bracketed
// code. A closing element's range can start at the preceding newline.
func classify(doc *syntax.Document) ([]byte, []int8) {
	src := doc.Source()
	classes := make([]byte, len(src))
	jsx := make([]int8, len(src))
	mark := func(n *sitter.Node, class byte) {
		for i := n.StartByte(); i < n.EndByte() && int(i) < len(classes); i++ {
			classes[i] = class
		}
	}
	syntax.Walk(doc.Root(), func(n *sitter.Node) bool {
		switch n.Type() {
		case "comment":
			mark(n, comment)
			return false
		case "template_string":
			mark(n, template)
			return false
		case "string", "regex":
			mark(n, literal)
			return false
		case "jsx_element":
			open := syntax.FirstChild(n, "jsx_opening_element")
			closing := syntax.FirstChild(n, "jsx_closing_element")
			if open != nil && closing != nil && open.EndByte() > 0 {
				if lt := indexFrom(src, closing.StartByte(), closing.EndByte(), '<'); lt >= 0 {
					jsx[open.EndByte()-1]++
					jsx[lt]--
				}
			}
		}
		return true
	})
	return classes, jsx
}

func indexFrom(src []byte, from, to uint32, c byte) int {
	for i := int(from); i < int(to) && i < len(src); i++ {
		if src[i] == c {
			return i
		}
	}
	return -1
}

func leadingClosers(body string, classes []byte, jsx []int8) int {
	n := 0
	for i := 0; i < len(body); i++ {
		if classes[i] != code {
			break
		}
		if jsx[i] < 0 {
			return n + 1
		}
		switch body[i] {
		case '}', ')', ']':
			n++
		default:
			return n
		}
	}
	return n
}

func netBrackets(line string, classes []byte, jsx []int8) int {
	net := 0
	for i := 0; i < len(line); i++ {
		if classes[i] != code {
			continue
		}
		net += int(jsx[i])
		switch line[i] {
		case '{', '(', '[':
			net++
		case '}', ')', ']':
			net--
		}
	}
	return net
}

func indent(level int) string {
	return strings.Repeat(" ", level*IndentWidth)
}

func join(lines []string, keep []bool) string {
	var b strings.Builder
	blank := true // drops leading blank lines
	pending := false
	for i, line := range lines {
		if line == "" && !keep[i] {
			if !blank {
				pending = true
			}
			continue
		}
		if pending {
			b.WriteByte('\n')
			pending = false
		}
		b.WriteString(line)
		b.WriteByte('\n')
		blank = false
	}
	return b.String()
}
