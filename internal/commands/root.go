package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
)

// Version is the CLI version, overridden at build time with -ldflags.
var Version = "0.1.0"

// Output formats accepted by --output.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RootCmd creates and returns the root command for the codegen CLI
func RootCmd() *cobra.Command {
	var verbose bool
	var configPath, format string

	cmd := &cobra.Command{
		Use:   "codegen",
		Short: "Parse, transform, analyze and generate TypeScript",
		Long: `codegen works on TypeScript source structurally.

It can:
• Parse files into declarations, imports, exports and metrics
• Apply structured edits (imports, exports, members, renames)
• Analyze quality and compare the structure of two versions
• Format code and scaffold components, routes, models and tests`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case FormatText, FormatJSON, FormatYAML:
			default:
				return fmt.Errorf("invalid --output %q: must be text, json or yaml", format)
			}
			output.SetVerbose(verbose)
			output.SetWriter(cmd.OutOrStdout())

			level := logger.LevelWarn
			if verbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.NewLogger(level, cmd.ErrOrStderr()))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to codegen.yaml (default: ./codegen.yaml if present)")
	cmd.PersistentFlags().StringVarP(&format, "output", "o", FormatText, "Output format: text, json or yaml")

	return cmd
}

// VersionCmd prints the version.
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "codegen v%s\n", Version)
		},
	}
}
