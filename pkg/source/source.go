// Package source defines the data model shared by the parser, transformer,
// and analyzer: the declaration tree, import and export records, metrics,
// and the AnalysisResult returned by a parse.
package source

// Kind identifies the sort of declaration a node represents.
type Kind string

const (
	KindClass     Kind = "class"
	KindInterface Kind = "interface"
	KindFunction  Kind = "function"
	KindVariable  Kind = "variable"
	KindTypeAlias Kind = "type-alias"
	KindEnum      Kind = "enum"
	KindMethod    Kind = "method"
	KindProperty  Kind = "property"
)

// IsContainer reports whether declarations of this kind own members.
func (k Kind) IsContainer() bool {
	return k == KindClass || k == KindInterface
}

// Import is one import statement as written.
type Import struct {
	ModuleSpecifier string   `json:"moduleSpecifier" yaml:"moduleSpecifier"`
	NamedImports    []string `json:"namedImports" yaml:"namedImports"`
	DefaultImport   string   `json:"defaultImport,omitempty" yaml:"defaultImport,omitempty"`
	NamespaceImport string   `json:"namespaceImport,omitempty" yaml:"namespaceImport,omitempty"`
	IsTypeOnly      bool     `json:"isTypeOnly" yaml:"isTypeOnly"`
	Line            int      `json:"line" yaml:"line"`
}

// LocalNames returns the identifiers this import binds in the file. For a
// named specifier "a as b" the local name is "b".
func (i Import) LocalNames() []string {
	var names []string
	if i.DefaultImport != "" {
		names = append(names, i.DefaultImport)
	}
	if i.NamespaceImport != "" {
		names = append(names, i.NamespaceImport)
	}
	for _, spec := range i.NamedImports {
		names = append(names, LocalName(spec))
	}
	return names
}

// HasNamed reports whether the import already binds name, compared by the
// imported (not local) name.
func (i Import) HasNamed(name string) bool {
	for _, spec := range i.NamedImports {
		if ImportedName(spec) == ImportedName(name) {
			return true
		}
	}
	return false
}

// Export is one exported binding.
type Export struct {
	Name         string `json:"name" yaml:"name"`
	IsDefault    bool   `json:"isDefault" yaml:"isDefault"`
	IsTypeOnly   bool   `json:"isTypeOnly" yaml:"isTypeOnly"`
	IsReExport   bool   `json:"isReExport" yaml:"isReExport"`
	SourceModule string `json:"sourceModule,omitempty" yaml:"sourceModule,omitempty"`
	Line         int    `json:"line" yaml:"line"`
}

// Metrics are derived counts for one source unit.
type Metrics struct {
	LinesOfCode          int `json:"linesOfCode" yaml:"linesOfCode"`
	FunctionCount        int `json:"functionCount" yaml:"functionCount"`
	ClassCount           int `json:"classCount" yaml:"classCount"`
	ImportCount          int `json:"importCount" yaml:"importCount"`
	ExportCount          int `json:"exportCount" yaml:"exportCount"`
	CyclomaticComplexity int `json:"cyclomaticComplexity" yaml:"cyclomaticComplexity"`
}

// AnalysisResult is everything a single parse produces.
type AnalysisResult struct {
	Declarations *Tree    `json:"declarations" yaml:"declarations"`
	Imports      []Import `json:"imports" yaml:"imports"`
	Exports      []Export `json:"exports" yaml:"exports"`
	Metrics      Metrics  `json:"metrics" yaml:"metrics"`
}

// Parameter is one entry of a function or method parameter list.
type Parameter struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type,omitempty" yaml:"type,omitempty"`
	Optional bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Default  string `json:"default,omitempty" yaml:"default,omitempty"`
}
