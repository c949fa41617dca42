package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/config"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/logger"
	"github.com/dcyfr/dcyfr-ai-code-gen/pkg/output"
)

func outputFormat(cmd *cobra.Command) string {
	f, _ := cmd.Flags().GetString("output")
	if f == "" {
		return FormatText
	}
	return f
}

// structured writes v as JSON or YAML when one of those was requested and
// reports whether it did.
func structured(cmd *cobra.Command, v any) (bool, error) {
	w := cmd.OutOrStdout()
	switch outputFormat(cmd) {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	}
	return false, nil
}

// loadConfig reads --config (or ./codegen.yaml) and applies its log level
// unless --verbose already raised it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); !verbose {
		if level, err := logger.ParseLevel(cfg.Log.Level); err == nil {
			logger.Default().SetLevel(level)
		}
	}
	if cfg.File != "" {
		output.Verbose(fmt.Sprintf("Using config %s", cfg.File))
	}
	return cfg, nil
}

func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// writeFile replaces path's contents, keeping its permissions.
func writeFile(path, content string) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// colorize reports whether stdout is a terminal that can show styled diffs.
func colorize(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
