package printer

import "strings"

// AddLicenseHeader prepends header as a block comment. Text that already
// begins with a comment is returned unchanged, whatever that comment says.
func AddLicenseHeader(text, header string) string {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") {
		return text
	}

	var b strings.Builder
	b.WriteString("/*\n")
	for _, line := range strings.Split(strings.TrimRight(header, "\n"), "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(" */\n\n")
	b.WriteString(trimmed)
	return b.String()
}
