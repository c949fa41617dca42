package main

import (
	"os"

	"github.com/dcyfr/dcyfr-ai-code-gen/internal/commands"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
)

func main() {
	rootCmd := commands.RootCmd()

	rootCmd.AddCommand(commands.ParseCmd())
	rootCmd.AddCommand(commands.AnalyzeCmd())
	rootCmd.AddCommand(commands.TransformCmd())
	rootCmd.AddCommand(commands.DiffCmd())
	rootCmd.AddCommand(commands.FormatCmd())
	rootCmd.AddCommand(commands.GenerateCmd())
	rootCmd.AddCommand(commands.ReviewCmd())
	rootCmd.AddCommand(commands.InitCmd())
	rootCmd.AddCommand(commands.VersionCmd())

	if err := rootCmd.Execute(); err != nil {
		output.Error(err.Error())
		os.Exit(1)
	}
}
