package transformer

import (
	"strings"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
)

// ParseParameters reads a "name: type, name2?: type2 = default" list.
// Commas nested inside generics, tuples, objects, or calls do not split.
func ParseParameters(list string) []source.Parameter {
	var params []source.Parameter
	for _, part := range splitTopLevel(list, ',') {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		var p source.Parameter

		if eq := indexTopLevel(part, '='); eq >= 0 && !strings.HasPrefix(part[eq:], "=>") {
			p.Default = strings.TrimSpace(part[eq+1:])
			part = strings.TrimSpace(part[:eq])
		}
		if colon := indexTopLevel(part, ':'); colon >= 0 {
			p.Type = strings.TrimSpace(part[colon+1:])
			part = strings.TrimSpace(part[:colon])
		}
		if strings.HasSuffix(part, "?") {
			p.Optional = true
			part = strings.TrimSuffix(part, "?")
		}
		p.Name = strings.TrimSpace(part)
		params = append(params, p)
	}
	return params
}

// FormatParameters renders parameters as TypeScript source.
func FormatParameters(params []source.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		s := p.Name
		if p.Optional {
			s += "?"
		}
		if p.Type != "" {
			s += ": " + p.Type
		}
		if p.Default != "" {
			s += " = " + p.Default
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ", ")
}

func splitTopLevel(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[', '{':
			depth++
		case '>':
			// "=>" in a function type is not a closing bracket.
			if i > 0 && s[i-1] == '=' {
				continue
			}
			depth--
		case ')', ']', '}':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

func indexTopLevel(s string, c byte) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(', '[', '{':
			depth++
		case '>':
			if i > 0 && s[i-1] == '=' {
				continue
			}
			depth--
		case ')', ']', '}':
			depth--
		case c:
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
