// Package inflect converts identifiers between naming conventions and
// between singular and plural English nouns. Generators use it to derive
// file names, type names, and route paths from a single user-supplied name.
package inflect

import (
	"strings"
	"unicode"
)

// Words splits an identifier into lower-case words. Underscores, hyphens,
// spaces, and dots separate words, as do lower-to-upper case changes and the
// end of an acronym: "HTTPServer" gives ["http", "server"].
func Words(s string) []string {
	runes := []rune(s)
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return words
}

func capitalize(w string) string {
	if w == "" {
		return ""
	}
	r := []rune(w)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// PascalCase converts to PascalCase: user_name → UserName.
func PascalCase(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// CamelCase converts to camelCase: UserName → userName.
func CamelCase(s string) string {
	words := Words(s)
	if len(words) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(words[0])
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// SnakeCase converts to snake_case: HTTPServer → http_server.
func SnakeCase(s string) string {
	return strings.Join(Words(s), "_")
}

// KebabCase converts to kebab-case: UserProfile → user-profile.
func KebabCase(s string) string {
	return strings.Join(Words(s), "-")
}

// ConstantCase converts to CONSTANT_CASE: maxRetries → MAX_RETRIES.
func ConstantCase(s string) string {
	return strings.ToUpper(SnakeCase(s))
}

// TitleCase converts to space separated title case: userProfile → User Profile.
func TitleCase(s string) string {
	words := Words(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
