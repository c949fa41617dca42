// Package transformer applies ordered batches of structural edits to
// TypeScript source.
//
// Each operation re-parses the current text and rewrites only the byte
// ranges it targets, so code it does not touch is preserved exactly.
// Operations are independent: one that fails (a missing class, an
// unsupported kind) is recorded in Result.FailedOperations and the rest of
// the batch still runs. Transform itself returns an error only when an
// operation is missing a required field.
//
//	res, err := transformer.Transform(src, []transformer.Operation{
//	    transformer.AddImport{ModuleSpecifier: "zod", NamedImports: []string{"z"}},
//	    transformer.AddProperty{TargetClass: "User", Name: "email", Type: "string"},
//	})
//	if err != nil {
//	    return err
//	}
//	if !res.Success {
//	    for _, f := range res.FailedOperations {
//	        fmt.Println(f.Index, f.Message)
//	    }
//	}
package transformer
