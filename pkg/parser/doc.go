// Package parser turns TypeScript source text into a source.AnalysisResult:
// a declaration tree, the import and export tables, and derived metrics.
//
// Parsing is best-effort. Constructs outside the supported declaration
// kinds are skipped, and malformed input yields whatever tree-sitter could
// recover; Parse never fails.
//
//	result := parser.Parse(src)
//	for _, decl := range result.Declarations.TopLevel() {
//	    fmt.Println(decl.Kind, decl.Name)
//	}
package parser
