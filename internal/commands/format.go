package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/filesystem"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/printer"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/syntax"
)

// FormatCmd creates the 'format' command.
func FormatCmd() *cobra.Command {
	var write, check bool
	var license string

	cmd := &cobra.Command{
		Use:   "format <file|dir>...",
		Short: "Re-indent TypeScript files",
		Long: `Format TypeScript files: two-space indentation by bracket depth, trailing
whitespace removed, runs of blank lines collapsed and a final newline.

A license header (from --license or format.license in codegen.yaml) is added
to files that do not already start with a comment.

Examples:
  codegen format src/user.ts
  codegen format src --write
  codegen format src --check`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("license") {
				license = cfg.Format.License
			}

			files, err := filesystem.Expand(args, filesystem.SourceOptions{IncludeTests: true})
			if err != nil {
				return err
			}

			var unformatted []string
			for _, path := range files {
				text, err := readFile(path)
				if err != nil {
					return err
				}
				formatted := printer.FormatDialect(text, syntax.DialectFor(path))
				if license != "" {
					formatted = printer.AddLicenseHeader(formatted, license)
				}
				changed := formatted != text

				switch {
				case check:
					if changed {
						unformatted = append(unformatted, path)
						output.Warn(path)
					}
				case write:
					if !changed {
						output.Verbose("Unchanged " + path)
						continue
					}
					if err := writeFile(path, formatted); err != nil {
						return err
					}
					output.Success("Formatted " + path)
				default:
					if len(files) > 1 {
						output.Header(path)
					}
					io.WriteString(cmd.OutOrStdout(), formatted)
				}
			}

			if len(unformatted) > 0 {
				return fmt.Errorf("%d file(s) need formatting", len(unformatted))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&write, "write", false, "Write formatted output back to the files")
	cmd.Flags().BoolVar(&check, "check", false, "List files that are not formatted and fail if any")
	cmd.Flags().StringVar(&license, "license", "", "License header text to add")
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}
