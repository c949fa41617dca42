package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/generator"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/transformer"
)

// TransformCmd creates the 'transform' command.
func TransformCmd() *cobra.Command {
	var opsPath string
	var write, diff, allowPartial, dryRun bool

	cmd := &cobra.Command{
		Use:   "transform <file> --ops <operations.yaml>",
		Short: "Apply structured edits to a file",
		Long: `Apply a list of operations to a TypeScript file. The list is YAML or JSON,
either a bare list or a document with an "operations" key:

  operations:
    - type: add-import
      moduleSpecifier: zod
      namedImports: [z]
    - type: add-method
      targetClass: UserService
      name: findAll
      returnType: Promise<User[]>
      async: true
    - type: rename
      oldName: getUser
      newName: fetchUser

Without --write the transformed source is printed. Unless --allow-partial
is set, nothing is written when any operation fails.

Examples:
  codegen transform src/user.ts --ops ops.yaml
  codegen transform src/user.ts --ops ops.yaml --diff
  codegen transform src/user.ts --ops ops.yaml --write`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			ops, err := transformer.LoadOperations(opsPath)
			if err != nil {
				return err
			}

			op := &transformer.FileOp{Path: path, Operations: ops, AllowPartial: allowPartial}
			ctx := cmdContext(cmd)
			if err := op.Validate(ctx, false); err != nil {
				return err
			}
			output.Verbose(op.Describe())

			original, err := readFile(path)
			if err != nil {
				return err
			}
			res, err := op.Plan(ctx)
			if err != nil {
				return err
			}
			logger.Debug("transformed", logger.F("path", path),
				logger.F("applied", res.AppliedOperations),
				logger.F("failed", len(res.FailedOperations)))

			if ok, err := structured(cmd, res); ok {
				if err != nil {
					return err
				}
				return failures(res, allowPartial)
			}

			for _, f := range res.FailedOperations {
				output.Warn(fmt.Sprintf("operation %d (%s): %s", f.Index, f.Kind, f.Message))
			}

			switch {
			case write:
				if _, err := generator.Execute(ctx, []generator.Operation{op}, generator.ExecuteOptions{
					DryRun: dryRun,
					Writer: cmd.OutOrStdout(),
				}); err != nil {
					return err
				}
			case diff:
				d := generator.GenerateDiff("a/"+path, "b/"+path, []byte(original), []byte(res.Source),
					&generator.DiffOptions{Color: colorize(cmd)})
				if d == "" {
					output.Info("No changes")
				} else {
					io.WriteString(cmd.OutOrStdout(), d)
				}
			default:
				io.WriteString(cmd.OutOrStdout(), res.Source)
			}
			return failures(res, allowPartial)
		},
	}

	cmd.Flags().StringVar(&opsPath, "ops", "", "Operations file (YAML or JSON)")
	cmd.Flags().BoolVar(&write, "write", false, "Write the result back to the file")
	cmd.Flags().BoolVar(&diff, "diff", false, "Print a unified diff instead of the result")
	cmd.Flags().BoolVar(&allowPartial, "allow-partial", false, "Keep successful edits when some operations fail")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "With --write, report what would be written")
	_ = cmd.MarkFlagRequired("ops")
	cmd.MarkFlagsMutuallyExclusive("write", "diff")

	return cmd
}

// failures turns failed operations into the command's error unless partial
// results were allowed.
func failures(res *transformer.Result, allowPartial bool) error {
	if res.Success || allowPartial {
		return nil
	}
	total := res.AppliedOperations + len(res.FailedOperations)
	return fmt.Errorf("%d of %d operations failed", len(res.FailedOperations), total)
}
