package source

import "strings"

// ImportedName returns the exported name a specifier refers to: "a" for
// both "a" and "a as b". A leading "type " modifier is dropped.
func ImportedName(spec string) string {
	spec = strings.TrimPrefix(strings.TrimSpace(spec), "type ")
	if i := strings.Index(spec, " as "); i >= 0 {
		return strings.TrimSpace(spec[:i])
	}
	return spec
}

// LocalName returns the binding a specifier introduces: "b" for "a as b".
func LocalName(spec string) string {
	spec = strings.TrimPrefix(strings.TrimSpace(spec), "type ")
	if i := strings.Index(spec, " as "); i >= 0 {
		return strings.TrimSpace(spec[i+len(" as "):])
	}
	return spec
}
