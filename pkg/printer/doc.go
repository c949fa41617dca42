// Package printer produces deterministic TypeScript text: a canonical
// formatter, license headers, JSDoc blocks, and import/export statements.
//
// None of the functions need a declaration tree. The transformer renders the
// statements it inserts through GenerateImportStatement and
// GenerateExportStatement, and the scaffolding templates reach the same
// helpers through the generator's template functions.
//
//	stmt := printer.GenerateImportStatement(printer.ImportOptions{
//	    ModuleSpecifier: "zod",
//	    NamedImports:    []string{"z"},
//	})
//	// import { z } from 'zod';
package printer
