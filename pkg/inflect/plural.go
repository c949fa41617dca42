package inflect

import (
	"strings"
	"unicode"
)

var irregulars = map[string]string{
	"person": "people",
	"child":  "children",
	"man":    "men",
	"woman":  "women",
	"tooth":  "teeth",
	"foot":   "feet",
	"mouse":  "mice",
	"goose":  "geese",
}

var singulars = func() map[string]string {
	m := make(map[string]string, len(irregulars))
	for s, p := range irregulars {
		m[p] = s
	}
	return m
}()

var uncountables = map[string]bool{
	"data":      true,
	"metadata":  true,
	"info":      true,
	"news":      true,
	"series":    true,
	"species":   true,
	"equipment": true,
	"feedback":  true,
}

// Pluralize converts singular nouns to plural form using common English
// rules. Only the last word of a compound identifier changes, so
// "BlogPost" gives "BlogPosts".
func Pluralize(word string) string {
	if word == "" {
		return ""
	}
	head, last := splitLast(word)
	lower := strings.ToLower(last)

	if uncountables[lower] {
		return word
	}
	if plural, ok := irregulars[lower]; ok {
		return head + preserveCase(last, plural)
	}

	switch {
	case hasAnySuffix(lower, "s", "x", "z", "ch", "sh"):
		return word + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		return word[:len(word)-1] + "ies"
	case strings.HasSuffix(lower, "o") && len(lower) > 1 && !isVowel(lower[len(lower)-2]):
		if hasAnySuffix(lower, "photo", "piano", "halo", "video", "logo", "memo", "demo") {
			return word + "s"
		}
		return word + "es"
	case strings.HasSuffix(lower, "fe"):
		return word[:len(word)-2] + "ves"
	case strings.HasSuffix(lower, "f") && !hasAnySuffix(lower, "ff", "roof", "chef", "belief"):
		return word[:len(word)-1] + "ves"
	}
	return word + "s"
}

// Singularize reverses Pluralize for the forms it produces.
func Singularize(word string) string {
	if word == "" {
		return ""
	}
	head, last := splitLast(word)
	lower := strings.ToLower(last)

	if uncountables[lower] {
		return word
	}
	if single, ok := singulars[lower]; ok {
		return head + preserveCase(last, single)
	}

	switch {
	case hasAnySuffix(lower, "ss", "us", "is"):
		return word
	case strings.HasSuffix(lower, "ies") && len(lower) > 3:
		return word[:len(word)-3] + "y"
	case hasAnySuffix(lower, "ives") && len(lower) > 4:
		return word[:len(word)-3] + "fe"
	case strings.HasSuffix(lower, "ves") && len(lower) > 3:
		return word[:len(word)-3] + "f"
	case hasAnySuffix(lower, "sses", "xes", "zes", "ches", "shes", "oes"):
		return word[:len(word)-2]
	case strings.HasSuffix(lower, "s"):
		return word[:len(word)-1]
	}
	return word
}

// splitLast separates the final word of an identifier from everything
// before it, keeping the original spelling of both.
func splitLast(s string) (string, string) {
	runes := []rune(s)
	for i := len(runes) - 1; i > 0; i-- {
		r, prev := runes[i], runes[i-1]
		if !unicode.IsLetter(prev) && !unicode.IsDigit(prev) {
			return string(runes[:i]), string(runes[i:])
		}
		if unicode.IsUpper(r) && unicode.IsLower(prev) {
			return string(runes[:i]), string(runes[i:])
		}
	}
	return "", s
}

// preserveCase applies the case pattern from original to the inflected form
func preserveCase(original, inflected string) string {
	if original == "" || inflected == "" {
		return inflected
	}
	if strings.ToUpper(original) == original {
		return strings.ToUpper(inflected)
	}
	if unicode.IsUpper([]rune(original)[0]) {
		return capitalize(inflected)
	}
	return inflected
}

func hasAnySuffix(s string, suffixes ...string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}

func isVowel(c byte) bool {
	return strings.IndexByte("aeiou", c) >= 0
}
