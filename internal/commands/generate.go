package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/internal/scaffold"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/exec"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/generator"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/project"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/transformer"
)

// GenerateCmd creates and returns the 'generate' command for scaffolding
func GenerateCmd() *cobra.Command {
	var force, skip, diff, dryRun, noHooks bool
	var dir, fields, module string

	cmd := &cobra.Command{
		Use:   "generate <component|route|model|test> [name]",
		Short: "Scaffold components, routes, models and tests",
		Long: `Generate TypeScript files from built-in templates.

Available types:
  component  - React function component with a props interface and index barrel
  route      - API route module with GET and POST handlers
  model      - Model interface, class and factory function
  test       - Test suite skeleton (vitest or jest) for a module

Output directories, quote style, test framework and post-generate hooks come
from codegen.yaml. Templates can be overridden with generate.template_dir.

Existing files are never overwritten silently: you are asked what to do, or
use --force, --skip or --diff.

Examples:
  codegen generate component UserCard --fields "name: string, avatar?: string"
  codegen generate route users
  codegen generate model Post --fields "title: string, body: string, published?: boolean"
  codegen generate test --module src/utils/format.ts
  codegen generate model Post --dry-run`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			var name string
			if len(args) > 1 {
				name = args[1]
			}
			if name == "" && !(kind == scaffold.KindTest && module != "") {
				return fmt.Errorf("generate %s needs a name", kind)
			}

			resolver, err := generator.NewResolver(force, skip, diff)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			root := "."
			if cfg.File != "" {
				root = filepath.Dir(cfg.File)
			} else if found, err := project.FindRoot("."); err == nil {
				root = found
			}
			info, err := project.Detect(root)
			if err != nil {
				return err
			}
			output.Verbose(fmt.Sprintf("Project root %s (framework %q)", info.Root, info.Framework))

			opts := scaffold.Options{Name: name, Fields: transformer.ParseParameters(fields)}
			if dir != "" {
				if opts.Dir, err = filepath.Abs(dir); err != nil {
					return err
				}
			}
			if module != "" {
				if opts.Module, err = filepath.Abs(module); err != nil {
					return err
				}
			}

			output.Verbose(fmt.Sprintf("Generating %s: %s (dry-run=%v, force=%v)", kind, name, dryRun, force))
			ops, err := scaffold.New(cfg, info).Generate(kind, opts)
			if err != nil {
				return err
			}

			ctx := cmdContext(cmd)
			res, err := generator.Execute(ctx, ops, generator.ExecuteOptions{
				DryRun:   dryRun,
				Force:    force,
				Writer:   cmd.OutOrStdout(),
				Resolver: resolver,
			})
			if err != nil {
				return err
			}
			if dryRun {
				return nil
			}

			if len(res.Written) > 0 && len(cfg.Generate.PostHooks) > 0 && !noHooks {
				runner := exec.NewExecutor(&exec.Options{
					Stdout:  cmd.OutOrStdout(),
					Stderr:  cmd.ErrOrStderr(),
					Dir:     info.Root,
					Spinner: true,
				})
				output.Verbose("Running hooks: " + strings.Join(cfg.Generate.PostHooks, "; "))
				if err := runner.RunHooks(ctx, cfg.Generate.PostHooks, res.Written); err != nil {
					return err
				}
			}

			output.Success(fmt.Sprintf("Generated %d file(s)", len(res.Written)))
			if n := len(res.Skipped) + len(res.Unchanged); n > 0 {
				output.Info(fmt.Sprintf("%d file(s) left as they were", n))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files without prompting")
	cmd.Flags().BoolVar(&skip, "skip", false, "Skip existing files without prompting")
	cmd.Flags().BoolVar(&diff, "diff", false, "Show diffs for existing files before prompting")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview without writing files")
	cmd.Flags().BoolVar(&noHooks, "no-hooks", false, "Do not run generate.post_hooks")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (overrides codegen.yaml)")
	cmd.Flags().StringVar(&fields, "fields", "", `Props or properties, e.g. "name: string, age?: number"`)
	cmd.Flags().StringVar(&module, "module", "", "Source module a test suite covers")

	return cmd
}
