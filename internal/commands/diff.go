package commands

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/analyzer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/generator"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
)

// DiffCmd creates the 'diff' command.
func DiffCmd() *cobra.Command {
	var lines bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Compare the declarations of two versions of a file",
		Long: `Compare the top-level declarations of two files by kind and name.

A declaration present in both is reported as modified when its line span
changed by more than two lines. Use --lines to also print a unified diff.

Examples:
  codegen diff old/user.ts src/user.ts
  codegen diff a.ts b.ts --lines`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := readFile(args[0])
			if err != nil {
				return err
			}
			after, err := readFile(args[1])
			if err != nil {
				return err
			}

			d := analyzer.CompareStructure(before, after)
			if ok, err := structured(cmd, d); ok {
				return err
			}

			if d.Empty() {
				output.Success("No structural changes")
			}
			for _, key := range d.Added {
				output.Plain("+ " + key)
			}
			for _, key := range d.Removed {
				output.Plain("- " + key)
			}
			for _, key := range d.Modified {
				output.Plain("~ " + key)
			}

			if lines {
				text := generator.GenerateDiff(args[0], args[1], []byte(before), []byte(after),
					&generator.DiffOptions{Color: colorize(cmd)})
				io.WriteString(cmd.OutOrStdout(), text)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&lines, "lines", false, "Also print a unified line diff")
	return cmd
}
