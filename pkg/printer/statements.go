package printer

import (
	"strings"
)

// multilineThreshold is the longest binding list rendered on one line.
const multilineThreshold = 3

// ImportOptions describes an import statement.
type ImportOptions struct {
	ModuleSpecifier string   `json:"moduleSpecifier" yaml:"moduleSpecifier"`
	DefaultImport   string   `json:"defaultImport,omitempty" yaml:"defaultImport,omitempty"`
	NamespaceImport string   `json:"namespaceImport,omitempty" yaml:"namespaceImport,omitempty"`
	NamedImports    []string `json:"namedImports,omitempty" yaml:"namedImports,omitempty"`
	TypeOnly        bool     `json:"typeOnly,omitempty" yaml:"typeOnly,omitempty"`
	// Quote is the string delimiter, ' when empty.
	Quote string `json:"quote,omitempty" yaml:"quote,omitempty"`
}

// GenerateImportStatement renders an import. Binding forms are chosen in a
// fixed order: default plus named, then namespace, then named alone, then
// default alone, and finally a bare side-effect import. A default binding
// given alongside a namespace is kept in front of it.
func GenerateImportStatement(opts ImportOptions) string {
	keyword := "import "
	if opts.TypeOnly {
		keyword = "import type "
	}
	from := " from " + quote(opts.ModuleSpecifier, opts.Quote) + ";"

	switch {
	case opts.DefaultImport != "" && len(opts.NamedImports) > 0:
		return keyword + opts.DefaultImport + ", " + bindingList(opts.NamedImports) + from
	case opts.NamespaceImport != "":
		bindings := "* as " + opts.NamespaceImport
		if opts.DefaultImport != "" {
			bindings = opts.DefaultImport + ", " + bindings
		}
		return keyword + bindings + from
	case len(opts.NamedImports) > 0:
		return keyword + bindingList(opts.NamedImports) + from
	case opts.DefaultImport != "":
		return keyword + opts.DefaultImport + from
	default:
		return "import " + quote(opts.ModuleSpecifier, opts.Quote) + ";"
	}
}

// ExportOptions describes an export statement.
type ExportOptions struct {
	// Name is a single exported binding; Names a list of them.
	Name  string   `json:"name,omitempty" yaml:"name,omitempty"`
	Names []string `json:"names,omitempty" yaml:"names,omitempty"`

	IsDefault bool `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`
	// All re-exports everything from From; Namespace names the re-export
	// (export * as ns from '...').
	All       bool   `json:"all,omitempty" yaml:"all,omitempty"`
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`

	From     string `json:"from,omitempty" yaml:"from,omitempty"`
	TypeOnly bool   `json:"typeOnly,omitempty" yaml:"typeOnly,omitempty"`
	Quote    string `json:"quote,omitempty" yaml:"quote,omitempty"`
}

// GenerateExportStatement renders an export: default first, then a
// namespace or star re-export, then a named list.
func GenerateExportStatement(opts ExportOptions) string {
	from := ""
	if opts.From != "" {
		from = " from " + quote(opts.From, opts.Quote)
	}

	names := opts.Names
	if len(names) == 0 && opts.Name != "" {
		names = []string{opts.Name}
	}

	switch {
	case opts.IsDefault && len(names) > 0:
		return "export default " + names[0] + ";"
	case opts.Namespace != "":
		return "export * as " + opts.Namespace + from + ";"
	case opts.All:
		return "export *" + from + ";"
	default:
		keyword := "export "
		if opts.TypeOnly {
			keyword = "export type "
		}
		return keyword + bindingList(names) + from + ";"
	}
}

// bindingList renders "{ a, b }", or one binding per line when the list is
// longer than multilineThreshold.
func bindingList(names []string) string {
	if len(names) == 0 {
		return "{}"
	}
	if len(names) <= multilineThreshold {
		return "{ " + strings.Join(names, ", ") + " }"
	}
	return "{\n" + indent(1) + strings.Join(names, ",\n"+indent(1)) + "\n}"
}

func quote(s, q string) string {
	if q == "" {
		q = "'"
	}
	return q + s + q
}
