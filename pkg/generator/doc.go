// Package generator writes generated files: template rendering with
// TypeScript-aware helpers, validated file operations, conflict resolution
// against files already on disk, Myers diffs, and transactional writes.
//
// # Rendering
//
//	r := generator.NewRenderer()
//	out, err := r.RenderString("component", `{{ importDefault "React" "react" }}
//	export function {{ pascalCase .Name }}() {}`, data)
//
// # Executing
//
// Operations are validated as a batch before anything is written:
//
//	resolver, _ := generator.NewResolver(force, skip, diff)
//	res, err := generator.Execute(ctx, ops, generator.ExecuteOptions{Resolver: resolver})
//
// # Transactions
//
//	tx := generator.NewTransaction()
//	tx.AddFile("src/a.ts", a, 0o644)
//	tx.AddFile("src/b.ts", b, 0o644)
//	if err := tx.Commit(); err != nil {
//	    // files already written were restored
//	}
package generator
