package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/parser"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/source"
)

// ParseCmd creates the 'parse' command.
func ParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the declarations, imports, exports and metrics of a file",
		Long: `Parse a TypeScript (.ts) or TSX (.tsx) file and print its structure.

Examples:
  codegen parse src/models/user.ts
  codegen parse src/App.tsx --output json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := parser.ParseFile(args[0])
			if err != nil {
				return err
			}
			if ok, err := structured(cmd, result); ok {
				return err
			}
			printParse(args[0], result)
			return nil
		},
	}
}

func printParse(path string, r *source.AnalysisResult) {
	output.Header(path)

	nested := r.Declarations.Nested()
	output.Plain(fmt.Sprintf("Declarations (%d):", len(nested)))
	for _, d := range nested {
		printDeclaration(d, 1)
	}

	if len(r.Imports) > 0 {
		output.Plain(fmt.Sprintf("Imports (%d):", len(r.Imports)))
		for _, imp := range r.Imports {
			var names []string
			if imp.DefaultImport != "" {
				names = append(names, imp.DefaultImport)
			}
			if imp.NamespaceImport != "" {
				names = append(names, "* as "+imp.NamespaceImport)
			}
			if len(imp.NamedImports) > 0 {
				names = append(names, "{ "+strings.Join(imp.NamedImports, ", ")+" }")
			}
			typeOnly := ""
			if imp.IsTypeOnly {
				typeOnly = " (type)"
			}
			output.Plain(fmt.Sprintf("  %s%s ← %s", strings.Join(names, ", "), typeOnly, imp.ModuleSpecifier))
		}
	}

	if len(r.Exports) > 0 {
		output.Plain(fmt.Sprintf("Exports (%d):", len(r.Exports)))
		for _, e := range r.Exports {
			var tags []string
			if e.IsDefault {
				tags = append(tags, "default")
			}
			if e.IsTypeOnly {
				tags = append(tags, "type")
			}
			if e.IsReExport {
				tags = append(tags, "from "+e.SourceModule)
			}
			line := "  " + e.Name
			if len(tags) > 0 {
				line += " (" + strings.Join(tags, ", ") + ")"
			}
			output.Plain(line)
		}
	}

	m := r.Metrics
	output.Plain(fmt.Sprintf("Metrics: %d lines, %d functions, %d classes, complexity %d",
		m.LinesOfCode, m.FunctionCount, m.ClassCount, m.CyclomaticComplexity))
}

func printDeclaration(d source.NestedDeclaration, depth int) {
	exported := ""
	if d.IsExported {
		exported = "export "
	}
	output.Plain(fmt.Sprintf("%s%s%s %s  [%d-%d]",
		strings.Repeat("  ", depth), exported, d.Kind, d.Name, d.StartLine, d.EndLine))
	for _, c := range d.Children {
		printDeclaration(c, depth+1)
	}
}
