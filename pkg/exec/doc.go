// Package exec runs external commands, chiefly the post-generate hooks
// configured in codegen.yaml, such as formatters and linters.
//
//	executor := exec.NewExecutor(nil)
//	err := executor.RunHooks(ctx, []string{"npx prettier --write {files}"}, files)
//
// A hook is a command line. The token {files} expands to the generated file
// paths as separate arguments; no shell is involved, so quoting follows the
// simple rules of SplitCommand.
package exec
