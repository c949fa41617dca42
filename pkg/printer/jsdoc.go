package printer

import "strings"

// DocParam documents one parameter.
type DocParam struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DocReturn documents a return value.
type DocReturn struct {
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DocOptions describes a JSDoc block. Empty fields are left out of the
// output entirely.
type DocOptions struct {
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []DocParam `json:"params,omitempty" yaml:"params,omitempty"`
	Returns     *DocReturn `json:"returns,omitempty" yaml:"returns,omitempty"`
	Example     string     `json:"example,omitempty" yaml:"example,omitempty"`
	Deprecated  string     `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Since       string     `json:"since,omitempty" yaml:"since,omitempty"`
	Indent      string     `json:"-" yaml:"-"`
}

// GenerateDoc renders a /** */ block:
//
//	/**
//	 * Adds two numbers.
//	 *
//	 * @param {number} a - First operand
//	 * @returns {number} The sum
//	 */
func GenerateDoc(opts DocOptions) string {
	var lines []string
	if d := strings.TrimSpace(opts.Description); d != "" {
		lines = append(lines, strings.Split(d, "\n")...)
	}

	var tags []string
	for _, p := range opts.Params {
		tag := "@param " + braced(p.Type) + p.Name
		if p.Description != "" {
			tag += " - " + p.Description
		}
		tags = append(tags, tag)
	}
	if r := opts.Returns; r != nil && (r.Type != "" || r.Description != "") {
		tag := strings.TrimSpace("@returns " + braced(r.Type) + r.Description)
		tags = append(tags, tag)
	}
	if ex := strings.TrimSpace(opts.Example); ex != "" {
		tags = append(tags, "@example", "```ts")
		tags = append(tags, strings.Split(ex, "\n")...)
		tags = append(tags, "```")
	}
	if opts.Deprecated != "" {
		tags = append(tags, "@deprecated "+opts.Deprecated)
	}
	if opts.Since != "" {
		tags = append(tags, "@since "+opts.Since)
	}

	if len(lines) > 0 && len(tags) > 0 {
		lines = append(lines, "")
	}
	lines = append(lines, tags...)

	ind := opts.Indent
	if len(lines) == 0 {
		return ind + "/** */"
	}

	var b strings.Builder
	b.WriteString(ind + "/**\n")
	for _, l := range lines {
		l = strings.TrimRight(l, " \t")
		if l == "" {
			b.WriteString(ind + " *\n")
			continue
		}
		b.WriteString(ind + " * " + l + "\n")
	}
	b.WriteString(ind + " */")
	return b.String()
}

func braced(typ string) string {
	if typ == "" {
		return ""
	}
	return "{" + typ + "} "
}
